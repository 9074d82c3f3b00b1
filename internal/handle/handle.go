// Package handle implements the HTTP endpoints. Stage failures map to
// categorized status codes and messages; internal detail stays in the logs.
package handle

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/pipeline"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
	"github.com/thuuthuyy/wine-scanner-v2/internal/store"
)

// TextExtractor runs the recognition pipeline for one image URL.
type TextExtractor interface {
	Recognize(ctx context.Context, imageURL string) (pipeline.Result, error)
}

// WineResolver resolves a wine query against the catalog.
type WineResolver interface {
	Resolve(ctx context.Context, q search.Query) (search.Resolution, error)
}

type Handle struct {
	extractor TextExtractor
	resolver  WineResolver
	scans     *store.ScanRepo // nil when history is disabled
	log       *logrus.Entry
}

func New(extractor TextExtractor, resolver WineResolver, scans *store.ScanRepo) *Handle {
	return &Handle{
		extractor: extractor,
		resolver:  resolver,
		scans:     scans,
		log:       logrus.WithField("component", "http"),
	}
}

func detail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"detail": msg})
}
