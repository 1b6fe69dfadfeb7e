package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl/home"
	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/retention"
	"github.com/queuectl/queuectl/supervisor"
)

func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run or control the worker process pool",
	}
	cmd.AddCommand(newWorkerStartCmd())
	cmd.AddCommand(newWorkerStopCmd())
	return cmd
}

func newWorkerStartCmd() *cobra.Command {
	var count int
	var daemon bool

	c := &cobra.Command{
		Use:   "start",
		Short: "Start the worker process pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			if daemon {
				return startDaemon(count)
			}
			return runSupervisorForeground(cmd.Context(), count)
		},
	}
	c.Flags().IntVar(&count, "count", defaultWorkerCount(), "number of worker processes")
	c.Flags().BoolVar(&daemon, "daemon", false, "detach and run in the background")
	return c
}

func runSupervisorForeground(ctx context.Context, count int) error {
	log := newLogger()
	sup := supervisor.New(supervisor.Config{
		Count: count,
		NewCommand: func(index int) *exec.Cmd {
			self, _ := os.Executable()
			return exec.Command(self, "internal", "worker-run", "--index", strconv.Itoa(index))
		},
		Log: log,
	})

	store, err := openStore(ctx)
	if err != nil {
		return systemError("worker start: %w", err)
	}
	sweepers := []*retention.Sweeper{
		retention.New(store, retention.Config{Status: job.Completed, Interval: retention.DefaultInterval, Age: retention.DefaultCompletedAge}, log),
		retention.New(store, retention.Config{Status: job.Dead, Interval: retention.DefaultInterval, Age: retention.DefaultDeadAge}, log),
	}
	for _, sw := range sweepers {
		if err := sw.Start(ctx); err != nil {
			return systemError("worker start: retention sweeper: %w", err)
		}
	}
	defer func() {
		for _, sw := range sweepers {
			if err := sw.Stop(5 * time.Second); err != nil {
				log.Error("retention sweeper stop failed", "err", err)
			}
		}
	}()

	if err := sup.Run(ctx); err != nil {
		return systemError("worker start: %w", err)
	}
	return nil
}

// startDaemon re-execs "queuectl worker start --count N" detached from
// the current terminal, capturing stdout/stderr to files under the
// home directory and recording the daemon's pid, mirroring worker.py's
// run_daemon.
func startDaemon(count int) error {
	self, err := os.Executable()
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	outPath, err := home.DaemonOutFile()
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	errPath, err := home.DaemonErrFile()
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	errFile, err := os.Create(errPath)
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}

	cmd := exec.Command(self, "worker", "start", "--count", strconv.Itoa(count))
	cmd.Stdout = outFile
	cmd.Stderr = errFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return systemError("worker start --daemon: %w", err)
	}

	pidPath, err := home.PIDFile()
	if err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(cmd.Process.Pid)), 0o644); err != nil {
		return systemError("worker start --daemon: %w", err)
	}
	fmt.Printf("daemon started, pid %d\n", cmd.Process.Pid)
	return nil
}

func newWorkerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemonized worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidPath, err := home.PIDFile()
			if err != nil {
				return systemError("worker stop: %w", err)
			}
			data, err := os.ReadFile(pidPath)
			if err != nil {
				return userError("worker stop: no daemon pid file found: %w", err)
			}
			pid, err := strconv.Atoi(string(data))
			if err != nil {
				return userError("worker stop: malformed pid file: %w", err)
			}
			proc, err := os.FindProcess(pid)
			if err != nil {
				return systemError("worker stop: %w", err)
			}
			if err := proc.Signal(syscall.SIGTERM); err != nil {
				return systemError("worker stop: %w", err)
			}
			fmt.Printf("sent SIGTERM to pid %d\n", pid)
			return nil
		},
	}
}
