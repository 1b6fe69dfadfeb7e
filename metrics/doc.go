// Package metrics serves a single read-only JSON endpoint reporting
// job counts by state, per spec.md §6.
//
// Built on net/http's ServeMux: no example repository in this pack
// offers a lighter-weight single-endpoint HTTP library, and the
// RPC-gateway stacks elsewhere in the pack are disproportionate to one
// read-only counts endpoint (see DESIGN.md).
package metrics
