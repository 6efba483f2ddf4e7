package ui

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"structdetect/internal/errors"
	"structdetect/ui/middleware"

	"github.com/gin-gonic/gin"
)

// isHTMX reports whether the request came from an HTMX swap
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// bindError maps a request decoding failure to an application error
func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.WithCode(errors.CodePayloadTooLarge, err)
	}
	return errors.WithCode(errors.CodeInvalidInput, err)
}

// respondError writes a JSON error body with the status matching the error code
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{
		"error":      err.Error(),
		"code":       errors.GetCode(err),
		"request_id": middleware.GetRequestID(c),
	})
}

// queryInt parses an integer query parameter, falling back on bad input
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
