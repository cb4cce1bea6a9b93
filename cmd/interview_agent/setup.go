package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/engine"
	"github.com/jonathan/interview-coach/internal/index"
	"github.com/jonathan/interview-coach/internal/ingest"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/logger"
	"github.com/jonathan/interview-coach/internal/match"
	"github.com/jonathan/interview-coach/internal/question"
	"github.com/jonathan/interview-coach/internal/store"
)

// loadConfig merges the optional config file with environment variables and
// defaults, then validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles the engine from configuration. With no API key the
// engine runs offline: template questions, default narratives, no retrieval.
// The returned cleanup releases the LLM client and store.
func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*engine.Engine, func(), error) {
	var (
		client   llm.Client
		qBackend question.Backend
		embedder index.Provider
		backend  match.AssessmentBackend
	)
	if cfg.APIKey != "" {
		raw, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = llm.NewBoundedClient(raw, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
		qBackend = question.NewGeminiBackend(client)
		embedder = client
		backend = match.NewGeminiBackend(client)
	} else {
		log.Warn("no API key configured, running offline with template questions")
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			if client != nil {
				_ = client.Close()
			}
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		st = pg
	} else {
		st = store.NewMemory()
	}

	analyzer := match.NewAnalyzer(backend, log.Named("match"))
	eng := engine.New(analyzer, qBackend, embedder, st, log, engine.Options{
		TotalQuestions:    cfg.TotalQuestions,
		TechnicalFocusPct: cfg.TechnicalFocusPct,
		RandomSeed:        cfg.RandomSeed,
	})

	cleanup := func() {
		st.Close()
		if client != nil {
			_ = client.Close()
		}
	}
	return eng, cleanup, nil
}

// loadInputs reads the resume from its file and the job description from a
// file or URL per the configuration.
func loadInputs(ctx context.Context, cfg *config.Config) (resume, job string, err error) {
	if cfg.Resume == "" {
		return "", "", fmt.Errorf("a resume file is required (--resume or config)")
	}
	resume, err = ingest.ReadDocument(cfg.Resume)
	if err != nil {
		return "", "", err
	}

	switch {
	case cfg.Job != "":
		job, err = ingest.ReadDocument(cfg.Job)
	case cfg.JobURL != "":
		job, err = ingest.NewFetcher(0).FetchJobPosting(ctx, cfg.JobURL)
	default:
		err = fmt.Errorf("a job description is required (--job or --job-url)")
	}
	if err != nil {
		return "", "", err
	}
	return resume, job, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogJSON, cfg.Debug)
}
