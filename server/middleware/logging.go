package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/lyricsync/logger"
)

// GinRequestLogger returns a Gin middleware that logs every request
// with method, path, status and latency. Probe endpoints are skipped to
// keep the log readable, as are long-lived event streams.
func GinRequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": latency.String(),
			"client":  c.ClientIP(),
		}
		if id := c.Writer.Header().Get("X-Request-Id"); id != "" {
			fields[logger.FieldRequestID] = id
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		switch {
		case status >= 500:
			logger.Error("request completed", fields)
		case status >= 400:
			logger.Warn("request completed", fields)
		default:
			logger.Debug("request completed", fields)
		}
	}
}

func quietPath(path string) bool {
	switch path {
	case "/health", "/alive", "/ready", "/metrics":
		return true
	}
	return false
}
