package http

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crop-doctor/internal/metrics"
)

// requestLogger пишет каждый запрос в slog и в гистограмму длительности.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()

		metrics.ObserveRequest(path, c.Request.Method, strconv.Itoa(status), elapsed.Seconds())

		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", elapsed,
		)
	}
}
