package metrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/queuectl/queuectl"
)

// Server wraps an http.Server exposing GET /metrics over a
// queuectl.Observer. It is read-only: net/http's default
// one-goroutine-per-request model is sufficient without additional
// locking, since Counts only reads.
type Server struct {
	http *http.Server
	log  *slog.Logger
}

// New builds a Server listening on addr, backed by observer.
func New(addr string, observer queuectl.Observer, log *slog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{log: log}
	mux.HandleFunc("/metrics", s.handleMetrics(observer))
	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) handleMetrics(observer queuectl.Observer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		counts, err := observer.Counts(r.Context())
		if err != nil {
			s.log.Error("metrics: counts failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		resp := make(map[string]int64, len(counts))
		for status, n := range counts {
			resp[status.String()] = n
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			s.log.Error("metrics: encode failed", "err", err)
		}
	}
}

// ListenAndServe blocks serving metrics until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	}
}

