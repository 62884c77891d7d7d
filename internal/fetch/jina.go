package fetch

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/pkg/jina"
)

// JinaFetcher retrieves pages through the Jina AI Reader, which handles
// JavaScript-rendered sites the local fetcher cannot.
type JinaFetcher struct {
	client jina.Client
}

// NewJinaFetcher creates a JinaFetcher backed by the given client.
func NewJinaFetcher(client jina.Client) *JinaFetcher {
	return &JinaFetcher{client: client}
}

func (j *JinaFetcher) Name() string { return "jina" }

// Fetch reads a URL via the Jina Reader API.
func (j *JinaFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	resp, err := j.client.Read(ctx, targetURL)
	if err != nil {
		return nil, eris.Wrap(err, "jina: read")
	}
	if resp.Data.Content == "" {
		return nil, eris.Errorf("jina: empty content for %s", targetURL)
	}
	return &Page{
		URL:        targetURL,
		Title:      resp.Data.Title,
		Text:       resp.Data.Content,
		StatusCode: 200,
	}, nil
}
