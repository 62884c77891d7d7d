package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/pkg/jina"
)

// JinaProvider searches via the Jina AI Search API. Unlike the HTML
// providers it returns structured results, so no scraping is involved.
type JinaProvider struct {
	client jina.Client
}

// NewJina creates a JinaProvider backed by the given client.
func NewJina(client jina.Client) *JinaProvider {
	return &JinaProvider{client: client}
}

func (j *JinaProvider) Name() string { return "jina" }

// Search returns up to maxResults result URLs for the query.
func (j *JinaProvider) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	resp, err := j.client.Search(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "jina: search")
	}

	var urls []string
	for _, r := range resp.Data {
		if r.URL == "" {
			continue
		}
		urls = append(urls, r.URL)
		if len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}
