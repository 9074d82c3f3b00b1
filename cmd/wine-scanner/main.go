package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/artifact"
	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
	"github.com/thuuthuyy/wine-scanner-v2/internal/config"
	"github.com/thuuthuyy/wine-scanner-v2/internal/handle"
	"github.com/thuuthuyy/wine-scanner-v2/internal/httpserver"
	"github.com/thuuthuyy/wine-scanner-v2/internal/pipeline"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search/embed"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search/qdrant"
	"github.com/thuuthuyy/wine-scanner-v2/internal/store"
	"github.com/thuuthuyy/wine-scanner-v2/internal/vision"
	"github.com/thuuthuyy/wine-scanner-v2/internal/vision/detect"
	"github.com/thuuthuyy/wine-scanner-v2/internal/vision/gemini"
	"github.com/thuuthuyy/wine-scanner-v2/internal/vision/recognize"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	}

	ctx := context.Background()

	// --- artifact scratch ---
	scratch, err := artifact.New(cfg.ScratchDir)
	if err != nil {
		logrus.WithError(err).Fatal("scratch dir")
	}

	// --- vision engines ---
	engines := vision.NewEngines(
		recognize.New(cfg.RecognizerURL),
		gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	)
	recognizer, err := engines.Get(cfg.RecognizerEngine)
	if err != nil {
		logrus.WithError(err).Fatal("recognizer engine")
	}
	pipe := pipeline.New(scratch, detect.New(cfg.DetectorURL), recognizer)

	// --- search backends ---
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

	snapshot := catalog.NewSnapshot(vectors, 1000)
	if err := snapshot.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("initial snapshot load failed, fuzzy fallback starts empty")
	}
	go snapshot.Run(ctx, cfg.SnapshotRefresh)

	resolver := search.NewResolver(encoder, vectors, snapshot)

	// --- optional scan history ---
	var scans *store.ScanRepo
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Fatal("sql.Open")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			cancel()
			logrus.WithError(err).Fatal("db.Ping")
		}
		cancel()

		scans = store.NewScanRepo(db)
		if err := scans.Init(ctx); err != nil {
			logrus.WithError(err).Fatal("scan table init")
		}
		logrus.Info("scan history enabled")
	}

	h := handle.New(pipe, resolver, scans)
	router := httpserver.NewRouter(h, scans != nil)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{
		"addr":   addr,
		"engine": cfg.RecognizerEngine,
	}).Info("wine-scanner listening")
	if err := router.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
