package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "outreach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteRunLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	id, err := st.StartRun(ctx, "data.json")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "running", runs[0].Status)
	assert.Equal(t, "data.json", runs[0].InputPath)
	assert.Nil(t, runs[0].FinishedAt)

	stats := model.RunStats{Processed: 10, Enriched: 4, Errors: 1, EmailsFound: 7, PhonesFound: 3}
	require.NoError(t, st.FinishRun(ctx, id, stats, 6))

	runs, err = st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "complete", runs[0].Status)
	assert.Equal(t, stats, runs[0].Stats)
	assert.Equal(t, int64(6), runs[0].Checkpoints)
	require.NotNil(t, runs[0].FinishedAt)
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newTestStore(t)

	first, err := st.StartRun(ctx, "first.json")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := st.StartRun(ctx, "second.json")
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)

	limited, err := st.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second, limited[0].ID)
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}
