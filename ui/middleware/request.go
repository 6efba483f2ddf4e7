package middleware

import (
	"net/http"
	"time"

	"structdetect/domain/core"
	"structdetect/internal"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderRequestID carries the request identifier in both directions
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the gin context key holding the request identifier
	ContextKeyRequestID = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = core.NewRequestID().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the identifier set by RequestID, if any
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// RequestLogger logs one line per request through the application logger
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		reqLogger := logger.With("request_id", GetRequestID(c), "status", status)
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

		switch {
		case status >= 500:
			reqLogger.Error("[HTTP] %s %s %d %.2fms %s", c.Request.Method, path, status, elapsed, c.Errors.String())
		case status >= 400:
			reqLogger.Warn("[HTTP] %s %s %d %.2fms", c.Request.Method, path, status, elapsed)
		default:
			reqLogger.Info("[HTTP] %s %s %d %.2fms", c.Request.Method, path, status, elapsed)
		}
	}
}

// BodyLimit caps request bodies; reads past the limit fail with *http.MaxBytesError
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
