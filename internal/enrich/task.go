package enrich

import (
	"context"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/extract"
	"github.com/sells-group/outreach-cli/internal/fetch"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/internal/score"
)

// Searcher returns candidate URLs for a query. Satisfied by search.Multi.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Outcome is the result of enriching one record.
type Outcome struct {
	Index       int
	Record      model.Record
	Changes     []string
	EmailsFound int
	PhonesFound int
}

// Task enriches a single record: search, fetch, extract, score, merge.
// Every step degrades gracefully; a failure at any point means "no new
// data", never an aborted record.
type Task struct {
	searcher   Searcher
	fetcher    fetch.Fetcher
	scorer     *score.Scorer
	maxResults int
	fetchPause resilience.Jitter
	sink       Sink
	keepAnnex  bool
}

// NewTask creates an enrichment task runner.
func NewTask(searcher Searcher, fetcher fetch.Fetcher, scorer *score.Scorer, maxResults int) *Task {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Task{
		searcher:   searcher,
		fetcher:    fetcher,
		scorer:     scorer,
		maxResults: maxResults,
	}
}

// WithFetchPause sets the randomized pause between per-URL fetches.
func (t *Task) WithFetchPause(j resilience.Jitter) *Task {
	t.fetchPause = j
	return t
}

// WithSink enables raw page capture for debugging.
func (t *Task) WithSink(s Sink) *Task {
	t.sink = s
	return t
}

// WithAnnex retains the raw candidate sets on the output record.
func (t *Task) WithAnnex(keep bool) *Task {
	t.keepAnnex = keep
	return t
}

// Enrich runs the full search -> fetch -> extract -> score -> merge flow
// for one record. The input record is never mutated; the returned record is
// a copy with any winning candidates merged into absent fields.
func (t *Task) Enrich(ctx context.Context, rec model.Record, index, total int) Outcome {
	log := zap.L().With(
		zap.String("name", rec.Name),
		zap.Int("index", index),
		zap.Int("total", total),
	)

	updated := rec.Clone()
	out := Outcome{Index: index, Record: updated}

	results := t.gather(ctx, rec, log)
	out.EmailsFound = len(results.Emails())
	out.PhonesFound = len(results.Phones())

	if t.keepAnnex && !results.Empty() {
		out.Record.DebugSearchResults = results.Snapshot()
	}

	out.Changes = t.merge(&out.Record, rec, results)

	if len(out.Changes) > 0 {
		log.Info("record enriched", zap.Strings("changes", out.Changes))
	} else {
		log.Info("no new information found")
	}

	return out
}

// gather searches for the record and accumulates candidates from every
// reachable result page. A provider failure yields an empty set; a fetch
// failure skips only that URL.
func (t *Task) gather(ctx context.Context, rec model.Record, log *zap.Logger) *model.ResultSet {
	results := model.NewResultSet()

	urls, err := t.searcher.Search(ctx, buildQuery(rec), t.maxResults)
	if err != nil {
		log.Warn("search failed", zap.Error(err))
		return results
	}
	log.Debug("search complete", zap.Int("urls", len(urls)))

	for _, u := range urls {
		if err := t.fetchPause.Sleep(ctx); err != nil {
			break
		}

		// The result URL is itself a website candidate whether or not the
		// page is reachable.
		results.AddWebsite(u)

		page, err := t.fetcher.Fetch(ctx, u)
		if err != nil {
			log.Debug("fetch failed, skipping url", zap.String("url", u), zap.Error(err))
			continue
		}

		sig := extract.Extract(page.Text)
		results.AddEmails(sig.Emails...)
		results.AddPhones(sig.Phones...)

		if t.sink != nil {
			if err := t.sink.Save(rec.Name, u, page.Text); err != nil {
				log.Debug("debug page save failed", zap.String("url", u), zap.Error(err))
			}
		}
	}

	return results
}

// merge selects the best candidate for each absent field and writes it into
// updated. Scoring runs against the original input record so earlier merges
// cannot influence later ones. Existing fields are never overwritten.
func (t *Task) merge(updated *model.Record, orig model.Record, results *model.ResultSet) []string {
	var changes []string

	if updated.Email == "" {
		if v, ok := t.scorer.Select(results.Emails(), orig, score.KindEmail); ok {
			updated.Email = v
			changes = append(changes, "Added email: "+v)
		}
	}

	if updated.Phone == "" {
		if v, ok := t.scorer.Select(results.Phones(), orig, score.KindPhone); ok {
			updated.Phone = v
			changes = append(changes, "Added phone: "+displayPhone(v))
		}
	}

	if updated.Website == "" {
		if v, ok := t.scorer.Select(results.Websites(), orig, score.KindWebsite); ok {
			updated.Website = v
			changes = append(changes, "Added website: "+v)
		}
	}

	return changes
}

func buildQuery(rec model.Record) string {
	q := rec.Name + " therapist contact information"
	if rec.Location != "" {
		q += " " + rec.Location
	}
	return q
}

// displayPhone renders a phone candidate in national format for the change
// log, falling back to the raw string when it does not parse. The merged
// field keeps the raw value.
func displayPhone(raw string) string {
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}
