package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alvmarrod/wikipath/internal/config"
	"golang.org/x/time/rate"
)

// FetchError reports a failed page download for a single article.
// The searcher recovers from it by treating the article as childless.
type FetchError struct {
	Article string
	URL     string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q from %s: %v", e.Article, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher downloads article pages one blocking GET at a time, spacing
// requests according to the configured hourly budget.
type Fetcher struct {
	client      *http.Client
	limiter     *rate.Limiter
	urlTemplate string
	token       string
}

// NewFetcher creates a fetcher for the resolved search configuration.
// The limiter starts with one available slot, so the first request is
// never delayed.
func NewFetcher(cfg *config.Search) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		limiter:     rate.NewLimiter(rate.Every(cfg.RequestWait()), 1),
		urlTemplate: cfg.URLTemplate,
		token:       cfg.Token,
	}
}

// Fetch retrieves the page body for one article identifier. Any failure
// (transport, non-2xx status, unreadable body) is returned as a
// *FetchError; no retries are attempted.
func (f *Fetcher) Fetch(ctx context.Context, article string) (string, error) {
	targetURL := fmt.Sprintf(f.urlTemplate, url.PathEscape(article))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", &FetchError{Article: article, URL: targetURL, Err: err}
	}

	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", &FetchError{Article: article, URL: targetURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Article: article, URL: targetURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &FetchError{
			Article: article,
			URL:     targetURL,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Article: article, URL: targetURL, Err: err}
	}

	return string(body), nil
}
