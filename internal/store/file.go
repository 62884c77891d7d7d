// Package store persists enrichment output and run history.
package store

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/model"
)

// FilePersister writes dataset snapshots to a JSON file. Writes go through
// a temp file and rename so a crash mid-write never leaves a truncated
// checkpoint behind.
type FilePersister struct {
	path string
}

// NewFilePersister creates a FilePersister targeting path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the output file path.
func (f *FilePersister) Path() string { return f.path }

// Persist writes the dataset as indented JSON, replacing any previous
// checkpoint.
func (f *FilePersister) Persist(_ context.Context, ds *model.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal dataset")
	}
	data = append(data, '\n')

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "store: write checkpoint")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return eris.Wrap(err, "store: replace checkpoint")
	}
	return nil
}
