package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/store"
)

func TestFormatRuns(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	var buf strings.Builder
	formatRuns(&buf, []store.Run{
		{
			ID:          "run-1",
			Status:      "complete",
			Stats:       model.RunStats{Processed: 10, Enriched: 4, Errors: 1},
			Checkpoints: 6,
			StartedAt:   started,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "2026-08-01 12:30:00")
	assert.Contains(t, out, "complete")
}
