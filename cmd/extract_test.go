package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchcenter-cli/internal/config"
	"github.com/pitchside/matchcenter-cli/internal/fetcher"
	"github.com/pitchside/matchcenter-cli/internal/model"
)

const savedMatchPage = `<html><body><script>
require.config.params["args"] = {
	matchId: 303,
	matchCentreData: {
		"competitionName": "Premier League",
		"seasonName": "2025/2026",
		"startTime": "2026-02-14T15:00:00",
		"home": {
			"teamId": 13, "name": "Arsenal",
			"players": [{"playerId": 1, "name": "Winger", "isFirstEleven": true, "shirtNo": 7}]
		},
		"away": {
			"teamId": 14, "name": "Chelsea",
			"players": [{"playerId": 2, "name": "Anchor", "isFirstEleven": true, "shirtNo": 6}]
		},
		"events": [
			{"eventId": 10, "minute": 3, "second": 0, "expandedMinute": 3, "teamId": 13,
			 "playerId": 1, "period": {"value": 1, "displayName": "FirstHalf"},
			 "type": {"value": 1, "displayName": "Pass"},
			 "outcomeType": {"value": 1, "displayName": "Successful"}}
		]
	}
};
</script></body></html>`

// testConfig swaps the package-level config for the duration of a test.
func testConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestProcessMatchWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "match.html")
	require.NoError(t, os.WriteFile(page, []byte(savedMatchPage), 0o644))

	outRoot := filepath.Join(dir, "out")
	testConfig(t, &config.Config{
		Output: config.OutputConfig{Root: outRoot, XLSX: true},
	})

	man, err := processMatch(context.Background(), fetcher.LocalFetcher{}, page, nil)
	require.NoError(t, err)

	assert.Equal(t, 303, man.MatchID)
	assert.NotEmpty(t, man.RunID)
	assert.Equal(t, 2, man.Tables[model.TablePlayers].Rows)
	assert.Equal(t, 1, man.Tables[model.TableEvents].Rows)

	_, err = os.Stat(filepath.Join(man.OutputDir, "normalized", "payload.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(man.OutputDir, "normalized", "manifest.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(man.OutputDir, "tables.xlsx"))
	assert.NoError(t, err)
}

func TestProcessMatchFetchError(t *testing.T) {
	testConfig(t, &config.Config{Output: config.OutputConfig{Root: t.TempDir()}})

	_, err := processMatch(context.Background(), fetcher.LocalFetcher{}, "/does/not/exist.html", nil)
	assert.Error(t, err)
}

func TestResolveSourcePrecedence(t *testing.T) {
	testConfig(t, &config.Config{
		Fetch: config.FetchConfig{BaseURL: "https://example.com"},
	})

	tests := []struct {
		name    string
		html    string
		url     string
		matchID int
		want    string
		local   bool
		wantErr bool
	}{
		{name: "saved page wins", html: "saved.html", url: "https://x", want: "saved.html", local: true},
		{name: "explicit url", url: "https://example.com/m/9", want: "https://example.com/m/9"},
		{name: "match id resolves against base", matchID: 9, want: "https://example.com/Matches/9/Live/Match-Centre"},
		{name: "nothing given", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractHTML, extractURL, extractMatchID = tt.html, tt.url, tt.matchID
			t.Cleanup(func() { extractHTML, extractURL, extractMatchID = "", "", 0 })

			source, f, err := resolveSource()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, source)
			_, isLocal := f.(fetcher.LocalFetcher)
			assert.Equal(t, tt.local, isLocal)
		})
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		testConfig(t, &config.Config{})
		st, err := openStore(context.Background())
		require.NoError(t, err)
		assert.Nil(t, st)
	})

	t.Run("sqlite", func(t *testing.T) {
		testConfig(t, &config.Config{Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "matches.db"),
		}})
		st, err := openStore(context.Background())
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.NoError(t, st.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		testConfig(t, &config.Config{Store: config.StoreConfig{Driver: "oracle"}})
		_, err := openStore(context.Background())
		assert.Error(t, err)
	})
}
