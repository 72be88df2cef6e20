package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const (
	contextKeyRequestID = "request_id"
	contextKeyLogger    = "request_logger"
)

// RequestLogger assigns every request an id, exposes a request-scoped logger
// and writes one access log line when the request completes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		c.Set(contextKeyRequestID, reqID)
		c.Header(RequestIDHeader, reqID)

		reqLog := log.With(zap.String("request_id", reqID))
		c.Set(contextKeyLogger, reqLog)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLog.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("http_request", fields...)
		default:
			reqLog.Info("http_request", fields...)
		}
	}
}

// requestLogger returns the logger bound to the request, or a no-op logger
// when RequestLogger is not installed.
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(contextKeyLogger); ok {
		if log, ok := l.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

// RequestID returns the id RequestLogger assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// SetupRequired rejects requests with 409 until the admin credential has been
// configured.
func SetupRequired(gate interface {
	IsSetupComplete(ctx context.Context) bool
}) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.IsSetupComplete(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
				Error: "setup has not been completed",
				Code:  CodeSetupRequired,
			})
			return
		}
		c.Next()
	}
}
