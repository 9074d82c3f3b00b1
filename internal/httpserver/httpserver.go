// Package httpserver assembles the gin router.
package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thuuthuyy/wine-scanner-v2/internal/handle"
)

// NewRouter wires middleware and routes. withScans toggles the history
// endpoint.
func NewRouter(h *handle.Handle, withScans bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/extract_text/", h.ExtractText)
	r.POST("/search_wine/", h.SearchWine)
	if withScans {
		r.GET("/scans/recent", h.RecentScans)
	}
	return r
}
