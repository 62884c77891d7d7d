package search

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// googleExcluded filters engine-internal and social links out of Google
// result pages.
var googleExcluded = []string{"google.com", "gstatic.com", "facebook.com", "twitter.com"}

// GoogleProvider scrapes Google's HTML results page.
type GoogleProvider struct {
	client  *http.Client
	baseURL string
}

// GoogleOption configures a GoogleProvider.
type GoogleOption func(*GoogleProvider)

// WithGoogleBaseURL overrides the engine base URL (for testing).
func WithGoogleBaseURL(url string) GoogleOption {
	return func(g *GoogleProvider) {
		g.baseURL = url
	}
}

// NewGoogle creates a GoogleProvider with the given per-call timeout.
func NewGoogle(timeout time.Duration, opts ...GoogleOption) *GoogleProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	g := &GoogleProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://www.google.com",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GoogleProvider) Name() string { return "google" }

// Search returns up to maxResults result URLs for the query.
func (g *GoogleProvider) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", g.baseURL, encodeQuery(query))
	return searchHTML(ctx, g.client, searchURL, g.Name(), googleExcluded, maxResults)
}
