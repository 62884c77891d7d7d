package search

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

var bingExcluded = []string{"bing.com", "microsoft.com", "facebook.com", "twitter.com"}

// BingProvider scrapes Bing's HTML results page.
type BingProvider struct {
	client  *http.Client
	baseURL string
}

// BingOption configures a BingProvider.
type BingOption func(*BingProvider)

// WithBingBaseURL overrides the engine base URL (for testing).
func WithBingBaseURL(url string) BingOption {
	return func(b *BingProvider) {
		b.baseURL = url
	}
}

// NewBing creates a BingProvider with the given per-call timeout.
func NewBing(timeout time.Duration, opts ...BingOption) *BingProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	b := &BingProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://www.bing.com",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BingProvider) Name() string { return "bing" }

// Search returns up to maxResults result URLs for the query.
func (b *BingProvider) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", b.baseURL, encodeQuery(query))
	return searchHTML(ctx, b.client, searchURL, b.Name(), bingExcluded, maxResults)
}
