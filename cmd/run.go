package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/fetch"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/internal/score"
	"github.com/sells-group/outreach-cli/internal/search"
	"github.com/sells-group/outreach-cli/internal/store"
	"github.com/sells-group/outreach-cli/pkg/jina"
)

var (
	runInput   string
	runOutput  string
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enrich every record in the input dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if runTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runTimeout)
			defer cancel()
		}

		ds, err := readDataset(runInput)
		if err != nil {
			return err
		}
		zap.L().Info("dataset loaded",
			zap.String("input", runInput),
			zap.Int("records", len(ds.Therapists)),
		)

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runID, err := st.StartRun(ctx, runInput)
		if err != nil {
			return err
		}

		task := buildTask()
		persister := store.NewFilePersister(runOutput)
		writer := enrich.NewWriter(persister)

		pipeline := enrich.New(task.Enrich, cfg.Pool.Concurrency, writer)
		out, stats := pipeline.Run(ctx, ds.Therapists)
		ds.Therapists = out

		// The writer has drained by now; one final authoritative write
		// covers runs whose last checkpoint failed.
		if len(ds.Therapists) > 0 {
			if err := persister.Persist(ctx, ds); err != nil {
				zap.L().Warn("final output write failed", zap.Error(err))
			}
		}

		if err := st.FinishRun(ctx, runID, stats, writer.Written()); err != nil {
			zap.L().Warn("record run history failed", zap.Error(err))
		}

		zap.L().Info("run complete",
			zap.String("run_id", runID),
			zap.String("output", runOutput),
			zap.Int("processed", stats.Processed),
			zap.Int("enriched", stats.Enriched),
			zap.Int("errors", stats.Errors),
			zap.Int64("checkpoints", writer.Written()),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "data.json", "input dataset path")
	runCmd.Flags().StringVar(&runOutput, "output", "enriched_data.json", "output dataset path")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "overall run deadline (0 = none)")
	rootCmd.AddCommand(runCmd)
}

// readDataset loads the input file. A missing or malformed file is a
// reported error, never a crash.
func readDataset(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read input %s", path)
	}
	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, eris.Wrapf(err, "parse input %s", path)
	}
	return &ds, nil
}

// buildTask wires the search providers, fetch chain, scorer, and debug
// sinks from configuration.
func buildTask() *enrich.Task {
	searchTimeout := time.Duration(cfg.Search.TimeoutSecs) * time.Second
	fetchTimeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second

	var jinaClient jina.Client
	if cfg.Jina.Key != "" {
		jinaClient = jina.NewClient(cfg.Jina.Key,
			jina.WithBaseURL(cfg.Jina.BaseURL),
			jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL),
		)
	}

	var providers []search.Provider
	for _, engine := range cfg.Search.Engines {
		switch engine {
		case "google":
			providers = append(providers, search.NewGoogle(searchTimeout))
		case "bing":
			providers = append(providers, search.NewBing(searchTimeout))
		case "jina":
			if jinaClient != nil {
				providers = append(providers, search.NewJina(jinaClient))
			} else {
				zap.L().Warn("jina engine configured without an API key, skipping")
			}
		default:
			zap.L().Warn("unknown search engine, skipping", zap.String("engine", engine))
		}
	}

	enginePause := resilience.JitterMillis(cfg.Search.EngineDelayMin, cfg.Search.EngineDelayMax)
	multi := search.NewMulti(providers, cfg.Search.RateLimit, enginePause)

	fetchers := []fetch.Fetcher{fetch.NewLocalFetcher(fetchTimeout)}
	if jinaClient != nil {
		fetchers = append(fetchers, fetch.NewJinaFetcher(jinaClient))
	}
	chain := fetch.NewChain(fetchers...)

	task := enrich.NewTask(multi, chain, score.New(cfg.Score), cfg.Search.MaxResults).
		WithFetchPause(resilience.JitterMillis(cfg.Fetch.DelayMin, cfg.Fetch.DelayMax)).
		WithAnnex(cfg.Debug.Annex)

	if cfg.Debug.Dir != "" {
		task = task.WithSink(enrich.NewDirSink(cfg.Debug.Dir))
	}

	return task
}
