package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Port       string
	ScratchDir string

	DetectorURL      string
	RecognizerURL    string
	RecognizerEngine string

	GeminiAPIKey string
	GeminiModel  string

	QdrantHost   string
	QdrantPort   int
	QdrantAPIKey string
	Collection   string

	EmbeddingAPIKey  string
	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingDim     int

	SnapshotRefresh time.Duration

	DatabaseURL string

	TelegramBotToken string
	APIBaseURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		logrus.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logrus.Fatalf("env %s: not an integer: %q", k, v)
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logrus.Fatalf("env %s: bad duration: %q", k, v)
		}
		return d
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8000"),
		ScratchDir: getEnv("SCRATCH_DIR", "/tmp/wine-scanner"),

		DetectorURL:      getEnv("DETECTOR_URL", "http://127.0.0.1:7001"),
		RecognizerURL:    getEnv("RECOGNIZER_URL", "http://127.0.0.1:7002"),
		RecognizerEngine: getEnv("RECOGNIZER_ENGINE", "worker"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		QdrantHost:   getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:   getEnvInt("QDRANT_PORT", 6334),
		QdrantAPIKey: getEnv("QDRANT_API_KEY", ""),
		Collection:   getEnv("QDRANT_COLLECTION", "wine_collection"),

		EmbeddingAPIKey:  mustEnv("EMBEDDING_API_KEY"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDim:     getEnvInt("EMBEDDING_DIM", 384),

		SnapshotRefresh: getEnvDuration("SNAPSHOT_REFRESH", 5*time.Minute),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		APIBaseURL:       getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
	}
}

// LoadBot reads only what the Telegram front-end needs.
func LoadBot() *Config {
	return &Config{
		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
	}
}
