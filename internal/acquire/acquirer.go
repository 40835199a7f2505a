// Package acquire fetches a web page's readable text, trying a
// rendering-capable headless strategy first and falling back to a
// plain HTTP strategy when rendering yields nothing usable.
package acquire

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/metrics"
	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

// defaultUserAgent mimics a desktop browser; some article hosts refuse
// obvious bot agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config controls acquisition behavior.
type Config struct {
	UserAgent         string
	HeadlessEnabled   bool
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	HTTPTimeout       time.Duration
}

// Strategy fetches a single URL and reduces it to readable text.
type Strategy interface {
	Fetch(ctx context.Context, url string) (*pipeline.Document, error)
}

// Acquirer implements pipeline.Acquirer over a primary and a fallback
// Strategy tried in fixed priority order.
type Acquirer struct {
	primary  Strategy
	fallback Strategy
	logger   *zap.Logger
}

// New wires the headless and static strategies from configuration.
// With headless disabled the static strategy covers both slots.
func New(cfg Config, logger *zap.Logger) *Acquirer {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	var primary Strategy
	if cfg.HeadlessEnabled {
		primary = NewHeadless(cfg.UserAgent, cfg.NavigationTimeout, cfg.SettleDelay)
	}
	return NewWithStrategies(primary, NewStatic(cfg.UserAgent, cfg.HTTPTimeout), logger)
}

// NewWithStrategies builds an Acquirer from explicit strategies.
func NewWithStrategies(primary, fallback Strategy, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Acquire runs the primary strategy and, when it errors or produces a
// blank document, returns whatever the fallback yields instead, even
// another failure. A non-nil-but-empty primary result is never handed
// to the caller.
func (a *Acquirer) Acquire(ctx context.Context, url string) (*pipeline.Document, error) {
	if a.primary != nil {
		doc, err := a.primary.Fetch(ctx, url)
		if err == nil && doc != nil && strings.TrimSpace(doc.Text) != "" {
			return doc, nil
		}
		if err != nil {
			a.logger.Warn("headless acquisition failed, trying static fallback",
				zap.String("url", url), zap.Error(err))
		} else {
			a.logger.Warn("headless acquisition returned no text, trying static fallback",
				zap.String("url", url))
		}
		metrics.AcquireFallback()
	}

	doc, err := a.fallback.Fetch(ctx, url)
	if err != nil {
		a.logger.Error("static acquisition failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return doc, nil
}
