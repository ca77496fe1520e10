// Package server provides the HTTP gateway for the lyric sync daemon:
// a Gin engine carrying the session API plus standard middleware
// (recovery, request ID, CORS, body-size limit, request logging) and
// operational endpoints (/health, /alive, /ready, /info, /metrics).
//
// Additional http.Handler mounts share the same port through the root
// ServeMux, wrapped with h2c so HTTP/2 works without TLS.
package server
