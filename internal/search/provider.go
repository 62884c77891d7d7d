// Package search discovers candidate URLs for a record via pluggable web
// search engines.
package search

import "context"

// Provider returns candidate result URLs for a query, best first. A single
// provider does not guarantee deduplication; cross-provider dedup happens
// in Multi.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
	Name() string
}
