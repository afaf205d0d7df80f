package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Similarity provider: "embedding" calls an OpenAI-compatible
	// /embeddings endpoint, "lexical" is the offline token-overlap scorer.
	SimilarityProvider string
	EmbeddingsURL      string
	EmbeddingsAPIKey   string
	EmbeddingsModel    string
	EmbeddingsTimeout  time.Duration

	// Section segmentation
	MaxHeadingWords   int
	UppercaseRatio    float64
	BaseThreshold     float64
	OverrideThreshold float64
	VocabularyPath    string // optional YAML override of the built-in vocabulary

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Job board credentials
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	JoobleAPIKey  string

	// Matching
	MatchTopN int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("RESUMATCH_API_KEY"),

		SimilarityProvider: envOr("SIMILARITY_PROVIDER", "lexical"),
		EmbeddingsURL:      os.Getenv("EMBEDDINGS_URL"),
		EmbeddingsAPIKey:   os.Getenv("EMBEDDINGS_API_KEY"),
		EmbeddingsModel:    envOr("EMBEDDINGS_MODEL", "text-embedding-3-small"),
		EmbeddingsTimeout:  envDuration("EMBEDDINGS_TIMEOUT", 30*time.Second),

		MaxHeadingWords:   envInt("MAX_HEADING_WORDS", 5),
		UppercaseRatio:    envFloat("UPPERCASE_RATIO", 0.7),
		BaseThreshold:     envFloat("BASE_THRESHOLD", 0.65),
		OverrideThreshold: envFloat("OVERRIDE_THRESHOLD", 0.75),
		VocabularyPath:    os.Getenv("VOCABULARY_PATH"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		AdzunaAppID:   os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:  os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry: envOr("ADZUNA_COUNTRY", "us"),
		JoobleAPIKey:  os.Getenv("JOOBLE_API_KEY"),

		MatchTopN: envInt("MATCH_TOP_N", 5),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MatchTopN <= 0 {
		cfg.MatchTopN = 5
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RESUMATCH_API_KEY is required")
	}
	switch c.SimilarityProvider {
	case "lexical":
	case "embedding":
		if c.EmbeddingsURL == "" {
			return fmt.Errorf("EMBEDDINGS_URL is required when SIMILARITY_PROVIDER=embedding")
		}
	default:
		return fmt.Errorf("unknown SIMILARITY_PROVIDER %q", c.SimilarityProvider)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
