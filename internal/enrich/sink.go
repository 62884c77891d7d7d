package enrich

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Sink persists raw fetched page text for offline inspection. It is a
// debug side channel; failures never affect enrichment.
type Sink interface {
	Save(name, url, body string) error
}

// DirSink writes one file per (record, URL) pair under a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a DirSink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Save writes the page body to a sanitized filename derived from the record
// name and URL.
func (s *DirSink) Save(name, url, body string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "sink: create debug dir")
	}

	if len(url) > 30 {
		url = url[:30]
	}
	filename := sanitize(name) + "_" + sanitize(url) + ".txt"

	if err := os.WriteFile(filepath.Join(s.dir, filename), []byte(body), 0o644); err != nil {
		return eris.Wrap(err, "sink: write page")
	}
	return nil
}

// sanitize replaces everything outside [a-zA-Z0-9] with underscores so the
// pair maps to a safe filename.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
