package httpapi

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const frontendEntry = "index.html"

// frontendHandler serves the built frontend: an existing asset when the
// path names one, the entry HTML for everything else.
func (s *HTTPServer) frontendHandler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		return
	}

	// path.Clean on a rooted path cannot climb above the root.
	rel := path.Clean("/" + c.Request.URL.Path)
	if rel != "/" {
		asset := filepath.Join(s.frontendDir, filepath.FromSlash(rel))
		if isFile(asset) {
			c.File(asset)
			return
		}
	}

	entry := filepath.Join(s.frontendDir, frontendEntry)
	if !isFile(entry) {
		c.String(http.StatusNotFound, "Frontend entry not found at %s", entry)
		return
	}
	c.File(entry)
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
