// Package fetch retrieves candidate URLs as plain text for extraction.
package fetch

import "context"

// Page is the text content of one fetched URL.
type Page struct {
	URL        string
	Title      string
	Text       string
	StatusCode int
}

// Fetcher retrieves a single URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	Name() string
}
