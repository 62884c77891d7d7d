package search

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/fetch"
)

// hrefRe pulls absolute links out of a search result page. Engine result
// layouts shift constantly; matching raw hrefs and filtering is far more
// durable than chasing container class names.
var hrefRe = regexp.MustCompile(`href="(https?://[^"]+)"`)

// searchHTML fetches an engine's result page with browser-style headers and
// extracts outbound result URLs, skipping links whose host matches any of
// the excluded markers.
func searchHTML(ctx context.Context, client *http.Client, searchURL, engine string, excluded []string, maxResults int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "%s: create request", engine)
	}
	req.Header.Set("User-Agent", fetch.RandomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "%s: search request", engine)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("%s: search status %d", engine, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, eris.Wrapf(err, "%s: read body", engine)
	}

	var urls []string
	seen := make(map[string]struct{})
	for _, m := range hrefRe.FindAllStringSubmatch(string(body), -1) {
		href := m[1]
		if isExcluded(href, excluded) {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
		if len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}

func isExcluded(href string, excluded []string) bool {
	lower := strings.ToLower(href)
	for _, marker := range excluded {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func encodeQuery(query string) string {
	return url.QueryEscape(query)
}
