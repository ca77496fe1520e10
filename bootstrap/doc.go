// Package bootstrap runs the daemon lifecycle: start registered
// components in order, run readiness hooks, block on a shutdown signal,
// then stop everything in reverse within a graceful timeout.
package bootstrap
