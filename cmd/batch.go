package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pitchside/matchcenter-cli/internal/fetcher"
)

var (
	batchFile  string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract and normalize matches listed in a CSV file",
	Long:  "Reads a CSV of match IDs (and optionally page URLs), then runs the extraction pipeline for each match with bounded concurrency and cooldown pacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		items, err := readBatchFile(batchFile, cfg.Fetch.BaseURL)
		if err != nil {
			return err
		}
		if batchLimit > 0 && batchLimit < len(items) {
			items = items[:batchLimit]
		}
		if len(items) == 0 {
			return eris.Errorf("cmd: no matches found in %s", batchFile)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer func() { _ = st.Close() }()
		}

		f := newHTTPFetcher()
		succeeded, failed := processBatch(ctx, items, batchOptions{
			MaxConcurrent: cfg.Batch.MaxConcurrentMatches,
			CooldownEvery: cfg.Batch.CooldownEvery,
			Cooldown:      time.Duration(cfg.Batch.CooldownSecs) * time.Second,
		}, func(ctx context.Context, item batchItem) error {
			_, err := processMatch(ctx, f, item.Source, st)
			return err
		})

		zap.L().Info("batch finished",
			zap.Int("total", len(items)),
			zap.Int64("succeeded", succeeded),
			zap.Int64("failed", failed))
		fmt.Fprintf(os.Stdout, "processed %d matches: %d succeeded, %d failed\n",
			len(items), succeeded, failed)
		if failed > 0 {
			return eris.Errorf("cmd: %d of %d matches failed", failed, len(items))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV listing matches to process")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "process at most N matches (0 = all)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// batchItem is one match to process: its ID and the page location to fetch.
type batchItem struct {
	MatchID int
	Source  string
}

type batchOptions struct {
	MaxConcurrent int
	CooldownEvery int
	Cooldown      time.Duration
}

// readBatchFile parses the batch CSV. Each row needs a match_id; a page URL
// may be given explicitly (both the British and American column spellings are
// accepted) and otherwise is resolved against baseURL.
func readBatchFile(path, baseURL string) ([]batchItem, error) {
	table, err := fetcher.ReadCSVFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "cmd: read batch file %s", path)
	}

	items := make([]batchItem, 0, len(table.Rows))
	for i, row := range table.Rows {
		raw := table.Field(row, "match_id")
		if raw == "" {
			zap.L().Warn("batch row missing match_id", zap.Int("row", i+1))
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "cmd: batch row %d: match_id %q", i+1, raw)
		}
		source := table.FirstField(row, "match_centre_url", "match_center_url")
		if source == "" {
			source = fetcher.MatchURL(baseURL, id)
		}
		items = append(items, batchItem{MatchID: id, Source: source})
	}
	return items, nil
}

// processBatch runs fn for every item with at most opts.MaxConcurrent in
// flight. Individual failures are counted, logged, and do not abort the rest
// of the batch; only context cancellation stops it early.
func processBatch(ctx context.Context, items []batchItem, opts batchOptions, fn func(context.Context, batchItem) error) (succeeded, failed int64) {
	var ok, bad, done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	if opts.MaxConcurrent > 0 {
		g.SetLimit(opts.MaxConcurrent)
	}

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(ctx, item); err != nil {
				bad.Add(1)
				zap.L().Error("match failed",
					zap.Int("match_id", item.MatchID),
					zap.Error(err))
			} else {
				ok.Add(1)
			}

			if n := done.Add(1); opts.CooldownEvery > 0 && opts.Cooldown > 0 && n%int64(opts.CooldownEvery) == 0 {
				zap.L().Info("cooldown", zap.Int64("processed", n), zap.Duration("for", opts.Cooldown))
				select {
				case <-time.After(opts.Cooldown):
				case <-ctx.Done():
				}
			}
			return nil // individual failures don't abort the batch
		})
	}

	_ = g.Wait()
	return ok.Load(), bad.Load()
}
