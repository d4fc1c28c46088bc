package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) setupRouter() *gin.Engine {
	r := gin.New()
	// match on the raw path so an encoded "/" stays inside one segment and
	// reaches filename validation instead of the frontend fallback
	r.UseRawPath = true
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api.POST("/software/upload", s.requireUploadToken(), s.uploadHandler)
	api.GET("/software", s.listHandler)
	api.GET("/software/download/:serverFilename", s.downloadHandler)

	// anything else belongs to the single-page frontend
	r.NoRoute(s.frontendHandler)

	return r
}
