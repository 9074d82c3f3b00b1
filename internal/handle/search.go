package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
)

type wineDetails struct {
	Producer     string `json:"Producer"`
	WineType     string `json:"Wine Type"`
	Region       string `json:"Region"`
	Vintage      string `json:"Vintage"`
	Price        string `json:"Price"`
	FoodPairings string `json:"Food Pairings"`
	URL          string `json:"URL"`
}

type rankedResult struct {
	Name    string      `json:"Name"`
	Details wineDetails `json:"Details"`
}

// SearchWine handles POST /search_wine/.
func (h *Handle) SearchWine(c *gin.Context) {
	var q search.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		detail(c, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), q)
	if err != nil {
		var berr *search.BackendError
		if errors.As(err, &berr) {
			h.log.WithError(err).Error("search backend failure")
			detail(c, http.StatusBadGateway, "Search backend unavailable!")
			return
		}
		h.log.WithError(err).Error("search failed")
		detail(c, http.StatusInternalServerError, "Internal error!")
		return
	}

	switch res.Kind {
	case search.KindRanked:
		results := make([]rankedResult, 0, len(res.Ranked))
		for _, cand := range res.Ranked {
			r := cand.Record
			results = append(results, rankedResult{
				Name: r.Name,
				Details: wineDetails{
					Producer:     r.Winery,
					WineType:     r.WineType,
					Region:       r.Region,
					Vintage:      r.Vintage,
					Price:        r.Price,
					FoodPairings: r.FoodPairings,
					URL:          r.URL,
				},
			})
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	case search.KindFuzzy:
		c.JSON(http.StatusOK, gin.H{
			"name":    res.Match.Name,
			"score":   res.Match.Score,
			"details": res.Match.Record.Payload(),
		})
	default:
		detail(c, http.StatusNotFound, "No matching wine found!")
	}
}
