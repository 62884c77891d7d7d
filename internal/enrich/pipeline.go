package enrich

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/outreach-cli/internal/model"
)

// EnrichFunc enriches a single record. Satisfied by (*Task).Enrich.
type EnrichFunc func(ctx context.Context, rec model.Record, index, total int) Outcome

// Pipeline runs enrichment over a full record set under bounded
// concurrency, aggregating results in input order and driving periodic
// checkpoint persistence as tasks complete.
type Pipeline struct {
	enrich      EnrichFunc
	concurrency int
	writer      *Writer
}

// New creates a Pipeline. writer may be nil to disable checkpointing.
func New(enrich EnrichFunc, concurrency int, writer *Writer) *Pipeline {
	if concurrency <= 0 {
		concurrency = 100
	}
	return &Pipeline{
		enrich:      enrich,
		concurrency: concurrency,
		writer:      writer,
	}
}

// Run enriches every record and returns the updated collection plus run
// statistics. Each task owns exactly one index; the shared collection and
// counters are only touched under the pipeline lock. Run returns after all
// tasks finish and the checkpoint writer has drained.
func (p *Pipeline) Run(ctx context.Context, records []model.Record) ([]model.Record, model.RunStats) {
	var stats model.RunStats

	if p.writer != nil {
		defer p.writer.Close()
	}

	if len(records) == 0 {
		zap.L().Info("enrich: nothing to process")
		return []model.Record{}, stats
	}

	zap.L().Info("enrich: starting run",
		zap.Int("records", len(records)),
		zap.Int("concurrency", p.concurrency),
	)

	out := make([]model.Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}

	var mu sync.Mutex
	total := len(records)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			oc, err := p.safeEnrich(gctx, rec, i, total)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				stats.Errors++
				zap.L().Error("enrich: task failed",
					zap.String("name", rec.Name),
					zap.Int("index", i),
					zap.Error(err),
				)
				return nil // one bad record must not stop the pool
			}

			out[oc.Index] = oc.Record
			stats.Processed++
			if len(oc.Changes) > 0 {
				stats.Enriched++
			}
			stats.EmailsFound += oc.EmailsFound
			stats.PhonesFound += oc.PhonesFound

			// Snapshot and submit under the same lock so checkpoint
			// submission order matches completion order.
			if p.writer != nil {
				p.writer.Submit(snapshot(out))
			}
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("enrich: run complete",
		zap.Int("processed", stats.Processed),
		zap.Int("enriched", stats.Enriched),
		zap.Int("errors", stats.Errors),
	)

	return out, stats
}

// safeEnrich converts a task panic into a counted error instead of taking
// down the whole run.
func (p *Pipeline) safeEnrich(ctx context.Context, rec model.Record, index, total int) (oc Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("enrich: task panic: %v", r)
		}
	}()
	oc = p.enrich(ctx, rec, index, total)
	return oc, nil
}

func snapshot(records []model.Record) *model.Dataset {
	ds := &model.Dataset{Therapists: make([]model.Record, len(records))}
	for i, r := range records {
		ds.Therapists[i] = r.Clone()
	}
	return ds
}
