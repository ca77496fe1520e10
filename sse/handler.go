package sse

import (
	"fmt"
	"net/http"
	"time"

	"github.com/skillsenselab/lyricsync/logger"
)

const keepAliveInterval = 30 * time.Second

// Serve handles one SSE connection, streaming hub events to the client
// until the request context is cancelled or the hub closes the client.
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, sessionID, connID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// SSE connections are long-lived; the server's write timeout must
	// not apply to them.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("sse could not disable write deadline", map[string]interface{}{
			"error": err.Error(),
		})
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(ClientID(sessionID, connID), sessionID)
	hub.Register(client)
	defer hub.Unregister(client)

	_, _ = fmt.Fprintf(w, "event: connected\ndata: {\"session_id\":%q}\n\n", sessionID)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-client.Events():
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-keepAlive.C:
			// Comment lines keep proxies from closing the stream.
			_, _ = fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}
