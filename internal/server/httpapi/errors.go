package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softhub/internal/common"
)

// errorResponse maps a service error to a status and a caller-safe message.
// Validation messages are ours and go out as is; storage detail never does.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrConfiguration):
		return http.StatusInternalServerError, "Server configuration error: upload token is not configured"
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid or missing upload token"
	case errors.Is(err, common.ErrSizeLimit):
		return http.StatusBadRequest, "File too large"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, strings.TrimSuffix(err.Error(), ": "+common.ErrValidation.Error())
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "File not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
