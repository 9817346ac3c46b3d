package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger puts a request-scoped logger into the request context and
// logs every completed request.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		lg := base.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			lg = lg.With("trace_id", sc.TraceID().String())
		}
		c.Request = c.Request.WithContext(logger.Into(c.Request.Context(), lg))

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"latency", time.Since(start),
			"bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			lg.Error("request completed", attrs...)
		case status >= 400:
			lg.Warn("request completed", attrs...)
		default:
			lg.Info("request completed", attrs...)
		}
	}
}
