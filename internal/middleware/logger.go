package middleware

import (
	"strconv"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger records one debug line and the request metrics per request.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()
		ctx.Next()
		latency := time.Since(startTime)
		status := ctx.Writer.Status()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if m != nil {
			m.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(latency.Seconds())
		}

		log.Debug().
			Int("status", status).
			Dur("latency", latency).
			Str("ip", ctx.ClientIP()).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Msg("")
	}
}
