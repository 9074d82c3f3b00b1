package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RecentScans handles GET /scans/recent. Registered only when scan history
// is enabled.
func (h *Handle) RecentScans(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	scans, err := h.scans.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.WithError(err).Error("scan history query failed")
		detail(c, http.StatusInternalServerError, "Internal error!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": scans})
}
