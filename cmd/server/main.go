package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resumatch/resumatch/internal/api"
	"github.com/resumatch/resumatch/internal/config"
	"github.com/resumatch/resumatch/internal/pipeline"
	"github.com/resumatch/resumatch/internal/section"
	"github.com/resumatch/resumatch/internal/similarity"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Section vocabulary: built-in unless a YAML override is configured.
	vocab := section.DefaultVocabulary()
	if cfg.VocabularyPath != "" {
		v, err := section.LoadVocabulary(cfg.VocabularyPath)
		if err != nil {
			log.Error("loading vocabulary", "path", cfg.VocabularyPath, "error", err)
			os.Exit(1)
		}
		vocab = v
	}

	// Similarity provider.
	var provider section.Provider
	var embedding *similarity.Embedding
	switch cfg.SimilarityProvider {
	case "embedding":
		embedding = similarity.NewEmbedding(cfg.EmbeddingsURL, cfg.EmbeddingsAPIKey, cfg.EmbeddingsModel, cfg.EmbeddingsTimeout)
		// Warm the synonym vectors so per-line scoring only embeds the
		// document side.
		warmCtx, warmCancel := context.WithTimeout(ctx, 2*time.Minute)
		if err := embedding.Precompute(warmCtx, vocab.Synonyms()); err != nil {
			log.Warn("precomputing synonym vectors", "error", err)
		}
		warmCancel()
		provider = embedding
	default:
		provider = similarity.Lexical{}
	}

	segmenter, err := section.NewSegmenter(provider, section.Config{
		Heuristic: section.HeuristicConfig{
			MaxHeadingWords: cfg.MaxHeadingWords,
			UppercaseRatio:  cfg.UppercaseRatio,
		},
		BaseThreshold:     cfg.BaseThreshold,
		OverrideThreshold: cfg.OverrideThreshold,
		Vocabulary:        vocab,
	})
	if err != nil {
		log.Error("invalid segmenter configuration", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(segmenter, pipeline.Options{
		WorkerCount:  cfg.WorkerCount,
		MaxQueueSize: cfg.MaxQueueSize,
		JobTTL:       cfg.JobTTL,
		PDFFallback:  cfg.PDFFallbackPdftotext,
	}, log)
	orch.Start()

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if embedding != nil {
			embedding.Close()
		}
	}()

	log.Info("starting resumatch", "port", cfg.Port, "similarity_provider", cfg.SimilarityProvider)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
