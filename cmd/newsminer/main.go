// Package main wires together the news feature miner service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/acquire"
	"github.com/himanshu-yaduvanshi/article-automation/internal/api"
	"github.com/himanshu-yaduvanshi/article-automation/internal/clock/system"
	"github.com/himanshu-yaduvanshi/article-automation/internal/config"
	"github.com/himanshu-yaduvanshi/article-automation/internal/ledger"
	"github.com/himanshu-yaduvanshi/article-automation/internal/llm"
	"github.com/himanshu-yaduvanshi/article-automation/internal/logging"
	"github.com/himanshu-yaduvanshi/article-automation/internal/metrics"
	"github.com/himanshu-yaduvanshi/article-automation/internal/normalize"
	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := ledger.New(cfg.Ledger.Path, logger)
	if err := store.Load(); err != nil {
		logger.Fatal("output ledger not loadable", zap.Error(err))
	}

	acquirer := acquire.New(acquire.Config{
		UserAgent:         cfg.Acquire.UserAgent,
		HeadlessEnabled:   cfg.Acquire.HeadlessEnabled,
		NavigationTimeout: cfg.Acquire.NavTimeout(),
		SettleDelay:       cfg.Acquire.SettleDelay(),
		HTTPTimeout:       cfg.Acquire.HTTPTimeout(),
	}, logger)

	generator, err := buildGenerator(cfg.LLM)
	if err != nil {
		logger.Fatal("llm backend init failed", zap.Error(err))
	}
	extractor := llm.NewFeatureExtractor(generator, logger)
	normalizer := normalize.New(logger)
	clock := system.New()

	runner := pipeline.NewRunner(acquirer, extractor, normalizer, store, clock, logger)
	server := api.NewServer(runner, store, clock, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("miner listening",
			zap.Int("port", cfg.Server.Port),
			zap.String("provider", cfg.LLM.Provider),
			zap.String("ledger", cfg.Ledger.Path),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildGenerator(cfg config.LLMConfig) (llm.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout(),
			MaxRetries: cfg.MaxRetries,
		}), nil
	case config.ProviderGemini:
		return llm.NewGemini(llm.GeminiConfig{
			Endpoint: cfg.Endpoint,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
			Timeout:  cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
