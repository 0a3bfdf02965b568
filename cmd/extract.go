package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/engine"
	"github.com/pitchside/matchcenter-cli/internal/fetcher"
	"github.com/pitchside/matchcenter-cli/internal/identity"
	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/sink"
	"github.com/pitchside/matchcenter-cli/internal/store"
)

var (
	extractHTML    string
	extractURL     string
	extractMatchID int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and normalize a single match",
	Long:  "Fetches a match page (or reads a saved one), extracts the embedded match-centre payload, normalizes it into flat tables, and writes JSON/CSV artifacts plus a manifest.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		source, f, err := resolveSource()
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		if st != nil {
			defer func() { _ = st.Close() }()
		}

		man, err := processMatch(ctx, f, source, st)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(man)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractHTML, "html", "", "path to a saved match page")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "match page URL")
	extractCmd.Flags().IntVar(&extractMatchID, "match-id", 0, "match ID (resolved against fetch.base_url)")
	rootCmd.AddCommand(extractCmd)
}

// resolveSource picks the fetcher and the location it should read, preferring
// a saved page over the network.
func resolveSource() (string, fetcher.Fetcher, error) {
	switch {
	case extractHTML != "":
		return extractHTML, fetcher.LocalFetcher{}, nil
	case extractURL != "":
		return extractURL, newHTTPFetcher(), nil
	case extractMatchID != 0:
		return fetcher.MatchURL(cfg.Fetch.BaseURL, extractMatchID), newHTTPFetcher(), nil
	default:
		return "", nil, eris.New("cmd: one of --html, --url or --match-id is required")
	}
}

func newHTTPFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries:        cfg.Fetch.MaxRetries,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	})
}

// openStore builds the configured store and runs migrations. A blank driver
// means persistence is disabled and a nil store is returned.
func openStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	switch cfg.Store.Driver {
	case "":
		return nil, nil
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "cmd: open sqlite store")
		}
		st = s
	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
		if err != nil {
			return nil, eris.Wrap(err, "cmd: open postgres store")
		}
		st = s
	default:
		return nil, eris.Errorf("cmd: unknown store driver %q", cfg.Store.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "cmd: migrate store")
	}
	return st, nil
}

// processMatch runs the full pipeline for one match page: fetch, extract,
// normalize, write artifacts, and persist when a store is configured.
func processMatch(ctx context.Context, f fetcher.Fetcher, source string, st store.Store) (*model.Manifest, error) {
	html, err := f.FetchMatchPage(ctx, source)
	if err != nil {
		return nil, eris.Wrapf(err, "cmd: fetch %s", source)
	}

	ts, err := engine.Run(html)
	if err != nil {
		return nil, eris.Wrapf(err, "cmd: normalize %s", source)
	}

	logTeamStyles(ts)

	man, err := sink.WriteAll(ts, cfg.Output.Root)
	if err != nil {
		return nil, err
	}

	if cfg.Output.XLSX {
		path := filepath.Join(man.OutputDir, "tables.xlsx")
		if err := sink.WriteXLSX(ts, path); err != nil {
			return nil, err
		}
	}

	if st != nil {
		if err := st.SaveTables(ctx, ts); err != nil {
			return nil, eris.Wrapf(err, "cmd: persist match %d", ts.MatchID)
		}
	}

	zap.L().Info("match processed",
		zap.Int("match_id", ts.MatchID),
		zap.String("output_dir", man.OutputDir))
	return man, nil
}

// logTeamStyles surfaces branding for both sides when an identity registry is
// configured. Unknown teams resolve to default colors; a missing registry
// file only warns.
func logTeamStyles(ts *model.TableSet) {
	if cfg.Identity.Path == "" {
		return
	}
	reg, err := identity.Load(cfg.Identity.Path)
	if err != nil {
		zap.L().Warn("identity registry unavailable", zap.Error(err))
		return
	}
	for _, side := range []struct {
		id   *int
		name string
	}{
		{ts.Match.HomeTeamID, strOr(ts.Match.HomeName, "Home")},
		{ts.Match.AwayTeamID, strOr(ts.Match.AwayName, "Away")},
	} {
		id := 0
		if side.id != nil {
			id = *side.id
		}
		style := reg.Style(id, side.name)
		zap.L().Debug("team style",
			zap.String("team", style.Name),
			zap.String("primary", style.Primary),
			zap.String("secondary", style.Secondary))
	}
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
