package acquire

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

// HeadlessStrategy renders pages in headless Chrome before reducing
// them to text, which captures JavaScript-driven articles the plain
// HTTP strategy cannot see. Every call provisions its own browser and
// tears it down unconditionally; instances are never reused across
// tasks.
type HeadlessStrategy struct {
	userAgent   string
	navTimeout  time.Duration
	settleDelay time.Duration
}

// NewHeadless builds a HeadlessStrategy.
func NewHeadless(userAgent string, navTimeout, settleDelay time.Duration) *HeadlessStrategy {
	if navTimeout <= 0 {
		navTimeout = 45 * time.Second
	}
	if settleDelay <= 0 {
		settleDelay = 500 * time.Millisecond
	}
	return &HeadlessStrategy{
		userAgent:   userAgent,
		navTimeout:  navTimeout,
		settleDelay: settleDelay,
	}
}

// Fetch navigates with a headless browser and returns the readable
// text of the fully rendered DOM.
func (s *HeadlessStrategy) Fetch(ctx context.Context, url string) (*pipeline.Document, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, cancel := context.WithTimeout(taskCtx, s.navTimeout)
	defer cancel()

	var html string
	actions := []chromedp.Action{
		s.networkSetupAction(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return nil, fmt.Errorf("chromedp run: %w", err)
	}

	return readable(strings.NewReader(html), url)
}

func (s *HeadlessStrategy) networkSetupAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if err := network.Enable().Do(ctx); err != nil {
			return fmt.Errorf("enable network domain: %w", err)
		}
		if s.userAgent != "" {
			if err := emulation.SetUserAgentOverride(s.userAgent).Do(ctx); err != nil {
				return fmt.Errorf("set user-agent: %w", err)
			}
		}
		return nil
	})
}
