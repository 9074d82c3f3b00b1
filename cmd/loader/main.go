// Loader ingests a wine catalog JSON file into the vector store. Records
// without a URL are skipped; the rest are embedded by name and upserted in
// batches keyed by a hash of their URL, so re-runs overwrite in place.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
	"github.com/thuuthuyy/wine-scanner-v2/internal/config"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search/embed"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search/qdrant"
)

const batchSize = 1000

func main() {
	var jsonPath string
	flag.StringVar(&jsonPath, "file", "wine_details.json", "path to the catalog JSON file")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		logrus.WithError(err).Fatal("read catalog file")
	}
	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logrus.WithError(err).Fatal("parse catalog file")
	}

	encoder, err := embed.New(ctx, embed.Config{
		APIKey:  cfg.EmbeddingAPIKey,
		BaseURL: cfg.EmbeddingBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		logrus.WithError(err).Fatal("encoder")
	}

	vectors, err := qdrant.New(qdrant.Config{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
	})
	if err != nil {
		logrus.WithError(err).Fatal("qdrant")
	}
	if err := vectors.EnsureCollection(ctx, uint64(cfg.EmbeddingDim)); err != nil {
		logrus.WithError(err).Fatal("ensure collection")
	}

	uploaded := 0
	for _, batch := range catalog.Batches(records, batchSize) {
		names := make([]string, len(batch))
		for i, r := range batch {
			names[i] = r.Name
		}
		vecs, err := encoder.Encode(ctx, names)
		if err != nil {
			logrus.WithError(err).Fatal("encode batch")
		}

		points := make([]search.Point, len(batch))
		for i, r := range batch {
			points[i] = search.Point{
				ID:     catalog.PointID(r.URL),
				Vector: vecs[i],
				Record: r,
			}
		}
		if err := vectors.Upsert(ctx, points); err != nil {
			logrus.WithError(err).Fatal("upsert batch")
		}

		uploaded += len(points)
		logrus.WithFields(logrus.Fields{
			"uploaded": uploaded,
			"total":    len(records),
		}).Info("batch uploaded")
	}

	logrus.Info("upload completed")
}
