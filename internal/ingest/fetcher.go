package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/model"
)

const maxFetchAttempts = 3

// Overridable for fast tests
var fetchSleepFunc = time.Sleep

// Fetcher retrieves articles from URLs, honoring robots.txt when
// configured.
type Fetcher struct {
	httpClient *http.Client
	robots     *RobotsChecker
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a fetcher from HTTP configuration
func NewFetcher(cfg config.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// FetchArticle retrieves a URL, extracts the readable text, and
// returns it as a normalized article. Fetch metadata (final URL after
// redirects, title, selected response headers) lands in the article's
// metadata map.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*model.Article, error) {
	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		if crawlDelay > 0 {
			select {
			case <-time.After(crawlDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	ex, err := ExtractArticle(string(body))
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	meta := map[string]string{
		"source_type": "url",
		"source_url":  resp.Request.URL.String(),
		"status_code": strconv.Itoa(resp.StatusCode),
	}
	if ex.Title != "" {
		meta["title"] = ex.Title
	}
	for _, key := range []string{"Content-Type", "Last-Modified", "ETag"} {
		if val := resp.Header.Get(key); val != "" {
			meta[key] = val
		}
	}

	article := &model.Article{RawText: ex.Text, Metadata: meta}
	stampHash(article)
	return article, nil
}

// FetchWithRetry fetches with backoff on transient failures. 429 and
// 5xx responses and connection errors are retried; everything else
// fails immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*model.Article, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		article, err := f.FetchArticle(ctx, rawURL)
		if err == nil {
			return article, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < maxFetchAttempts {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
		}
	}
	return nil, lastErr
}

func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, code := range []string{"429", "500", "502", "503", "504"} {
		if strings.Contains(msg, "unexpected status: "+code) {
			return true
		}
	}
	if strings.HasPrefix(msg, "fetch: ") {
		return true
	}
	return false
}
