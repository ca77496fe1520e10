// Package component defines the lifecycle contract for long-running
// parts of the daemon (HTTP server, SSE hub, backend health monitor)
// and a registry that starts them in order and stops them in reverse.
package component
