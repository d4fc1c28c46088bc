package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softhub/internal/common"
)

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// requireUploadToken is the cheap first phase of an upload: the server
// secret and the caller's token are checked before the body is read.
func (s *HTTPServer) requireUploadToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.software.Authorize(c.Request.Context(), c.GetHeader(common.UploadTokenHeaderName)); err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Next()
	}
}
