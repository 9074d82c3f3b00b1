// Package catalog models the wine catalog: the record schema shared by the
// loader and the search path, stable point IDs, and the in-memory snapshot
// backing the fuzzy fallback.
package catalog

import (
	"crypto/md5"
	"math/big"
)

// Record is one catalog entry. Field names mirror the ingestion JSON.
type Record struct {
	WineID         string `json:"wine_id"`
	Name           string `json:"name"`
	Winery         string `json:"winery"`
	Grapes         string `json:"grapes"`
	Vintage        string `json:"vintage"`
	Price          string `json:"price"`
	Rating         string `json:"rating"`
	WineType       string `json:"wine_type"`
	Country        string `json:"country"`
	Region         string `json:"region"`
	WineStyle      string `json:"wine_style"`
	AlcoholContent string `json:"alcohol_content"`
	FoodPairings   string `json:"food_pairings"`
	Level          string `json:"level"`
	Tannin         string `json:"tannin"`
	Sweetness      string `json:"sweetness"`
	Acidity        string `json:"acidity"`
	Allergens      string `json:"allergens"`
	BottleClosure  string `json:"bottle_closure"`
	Description    string `json:"wine_description"`
	URL            string `json:"url"`
}

var pointIDSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)

// PointID derives the stable store ID for a record from its source URL:
// md5(url) reduced to a 12-decimal-digit space. Re-uploading the same URL
// therefore overwrites the same point.
func PointID(url string) uint64 {
	sum := md5.Sum([]byte(url))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, pointIDSpace).Uint64()
}

// Payload flattens the record into the store payload.
func (r Record) Payload() map[string]any {
	return map[string]any{
		"wine_id":          r.WineID,
		"name":             r.Name,
		"winery":           r.Winery,
		"grapes":           r.Grapes,
		"vintage":          r.Vintage,
		"price":            r.Price,
		"rating":           r.Rating,
		"wine_type":        r.WineType,
		"country":          r.Country,
		"region":           r.Region,
		"wine_style":       r.WineStyle,
		"alcohol_content":  r.AlcoholContent,
		"food_pairings":    r.FoodPairings,
		"level":            r.Level,
		"tannin":           r.Tannin,
		"sweetness":        r.Sweetness,
		"acidity":          r.Acidity,
		"allergens":        r.Allergens,
		"bottle_closure":   r.BottleClosure,
		"wine_description": r.Description,
		"url":              r.URL,
	}
}

// FromPayload rebuilds a record from a store payload.
func FromPayload(p map[string]string) Record {
	return Record{
		WineID:         p["wine_id"],
		Name:           p["name"],
		Winery:         p["winery"],
		Grapes:         p["grapes"],
		Vintage:        p["vintage"],
		Price:          p["price"],
		Rating:         p["rating"],
		WineType:       p["wine_type"],
		Country:        p["country"],
		Region:         p["region"],
		WineStyle:      p["wine_style"],
		AlcoholContent: p["alcohol_content"],
		FoodPairings:   p["food_pairings"],
		Level:          p["level"],
		Tannin:         p["tannin"],
		Sweetness:      p["sweetness"],
		Acidity:        p["acidity"],
		Allergens:      p["allergens"],
		BottleClosure:  p["bottle_closure"],
		Description:    p["wine_description"],
		URL:            p["url"],
	}
}
