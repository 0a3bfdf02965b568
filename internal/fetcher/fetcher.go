// Package fetcher acquires raw match-page markup. The engine never fetches
// anything itself; these are the only external collaborators.
package fetcher

import (
	"context"
	"fmt"
)

// DefaultBaseURL is the match-centre page root.
const DefaultBaseURL = "https://www.whoscored.com"

// Fetcher returns the raw markup of one match page.
type Fetcher interface {
	FetchMatchPage(ctx context.Context, url string) (string, error)
}

// MatchURL builds the canonical match-centre URL for a match id.
func MatchURL(baseURL string, matchID int) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/Matches/%d/Live/Match-Centre", baseURL, matchID)
}
