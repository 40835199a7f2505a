package acquire

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

// StaticStrategy fetches pages with a plain HTTP GET through a Colly
// collector wearing a browser-like user agent. It recovers simple
// static pages when the headless stack fails to initialize or renders
// nothing.
type StaticStrategy struct {
	userAgent     string
	timeout       time.Duration
	baseCollector *colly.Collector
}

// NewStatic builds a StaticStrategy.
func NewStatic(userAgent string, timeout time.Duration) *StaticStrategy {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	c.WithTransport(newHTTPTransport())

	return &StaticStrategy{
		userAgent:     userAgent,
		timeout:       timeout,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP GET and reduces the body to readable text.
func (s *StaticStrategy) Fetch(ctx context.Context, url string) (*pipeline.Document, error) {
	collector := s.baseCollector.Clone()
	collector.IgnoreRobotsTxt = true
	if s.userAgent != "" {
		collector.UserAgent = s.userAgent
	}
	collector.SetRequestTimeout(s.timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := s.visit(ctx, collector, url, &fetchErr); err != nil {
		return nil, err
	}
	return readable(bytes.NewReader(body), url)
}

func (s *StaticStrategy) visit(ctx context.Context, collector *colly.Collector, url string, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("static fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("static visit failed: %w", err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("static response failed: %w", *fetchErr)
		}
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
