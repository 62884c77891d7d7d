package search

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

// Multi fans a query out to several providers in order, pausing between
// engines, and unions the results deduplicated by URL in first-seen order.
// A failing provider degrades to its partial or empty results; Multi itself
// fails only on context cancellation.
type Multi struct {
	providers []Provider
	limiter   *rate.Limiter
	pause     resilience.Jitter
}

// NewMulti creates a Multi over the given providers. ratePerSec bounds
// search calls across all workers; zero or negative disables the limiter.
func NewMulti(providers []Provider, ratePerSec float64, pause resilience.Jitter) *Multi {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return &Multi{
		providers: providers,
		limiter:   limiter,
		pause:     pause,
	}
}

// Search queries each provider and returns the deduplicated union of their
// result URLs, capped per provider at maxResults.
func (m *Multi) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	var urls []string
	seen := make(map[string]struct{})

	for i, p := range m.providers {
		if i > 0 {
			if err := m.pause.Sleep(ctx); err != nil {
				return urls, err
			}
		}
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return urls, err
			}
		}

		results, err := p.Search(ctx, query, maxResults)
		if err != nil {
			zap.L().Warn("search: provider failed",
				zap.String("provider", p.Name()),
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, u := range results {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	return urls, nil
}
