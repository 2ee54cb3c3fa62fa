package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives one call per completed API request
type RequestRecorder interface {
	RecordRequest(latency time.Duration, failed bool)
}

// StatsMiddleware tracks the latency and failures of API requests. Health
// checks and CORS preflights are not counted.
func StatsMiddleware(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method == http.MethodOptions || !strings.HasPrefix(path, "/api/") || path == "/api/health" {
			return
		}
		recorder.RecordRequest(time.Since(start), c.Writer.Status() >= http.StatusInternalServerError)
	}
}
