package enrich

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

// lastPersister keeps only the most recent snapshot.
type lastPersister struct {
	mu sync.Mutex
	ds *model.Dataset
}

func (p *lastPersister) Persist(_ context.Context, ds *model.Dataset) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ds = ds
	return nil
}

func (p *lastPersister) last() *model.Dataset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ds
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	t.Run("empty input is a no-op", func(t *testing.T) {
		t.Parallel()
		p := &memPersister{}
		w := NewWriter(p)

		enrich := func(_ context.Context, rec model.Record, index, _ int) Outcome {
			t.Error("enrich must not run for an empty input")
			return Outcome{Index: index, Record: rec}
		}

		out, stats := New(enrich, 4, w).Run(context.Background(), nil)

		assert.Empty(t, out)
		assert.Equal(t, model.RunStats{}, stats)
		assert.Equal(t, int64(0), w.Written())
		assert.Empty(t, p.recorded())
	})

	t.Run("aggregates outcomes in input order", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{
			{Name: "a"}, {Name: "b", Email: "kept@example.com"}, {Name: "c"},
		}

		enrich := func(_ context.Context, rec model.Record, index, total int) Outcome {
			assert.Equal(t, 3, total)
			updated := rec.Clone()
			oc := Outcome{Index: index, Record: updated}
			if updated.Email == "" {
				updated.Email = updated.Name + "@found.example"
				oc.Record = updated
				oc.Changes = []string{"Added email: " + updated.Email}
				oc.EmailsFound = 2
			}
			return oc
		}

		p := &memPersister{}
		w := NewWriter(p)
		out, stats := New(enrich, 2, w).Run(context.Background(), records)

		require.Len(t, out, 3)
		assert.Equal(t, "a@found.example", out[0].Email)
		assert.Equal(t, "kept@example.com", out[1].Email)
		assert.Equal(t, "c@found.example", out[2].Email)

		assert.Equal(t, 3, stats.Processed)
		assert.Equal(t, 2, stats.Enriched)
		assert.Equal(t, 0, stats.Errors)
		assert.Equal(t, 4, stats.EmailsFound)
	})

	t.Run("input records are not mutated", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{{Name: "a"}}

		enrich := func(_ context.Context, rec model.Record, index, _ int) Outcome {
			updated := rec.Clone()
			updated.Email = "new@example.com"
			return Outcome{Index: index, Record: updated, Changes: []string{"Added email"}}
		}

		out, _ := New(enrich, 1, nil).Run(context.Background(), records)

		assert.Equal(t, "new@example.com", out[0].Email)
		assert.Empty(t, records[0].Email)
	})

	t.Run("panicking task counts as error not processed", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{{Name: "a"}, {Name: "boom"}, {Name: "c"}}

		enrich := func(_ context.Context, rec model.Record, index, _ int) Outcome {
			if rec.Name == "boom" {
				panic("unexpected nil")
			}
			return Outcome{Index: index, Record: rec.Clone()}
		}

		out, stats := New(enrich, 2, nil).Run(context.Background(), records)

		assert.Equal(t, 2, stats.Processed)
		assert.Equal(t, 1, stats.Errors)
		assert.Equal(t, 0, stats.Enriched)
		// The failed record keeps its pre-run contents.
		assert.Equal(t, "boom", out[1].Name)
	})

	t.Run("final checkpoint matches the returned collection", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{{Name: "a"}, {Name: "b"}}

		enrich := func(_ context.Context, rec model.Record, index, _ int) Outcome {
			updated := rec.Clone()
			updated.Website = "https://" + updated.Name + ".example"
			return Outcome{Index: index, Record: updated, Changes: []string{"Added website"}}
		}

		p := &lastPersister{}
		w := NewWriter(p)
		out, _ := New(enrich, 2, w).Run(context.Background(), records)

		require.NotNil(t, p.last())
		assert.Equal(t, out, p.last().Therapists)
		assert.GreaterOrEqual(t, w.Written(), int64(1))
	})
}
