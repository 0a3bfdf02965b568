// Package model defines the relational row types produced by one
// normalization run: the match header, player appearances, atomic events,
// the derived event categories, and the reconstructed timelines.
package model

// Match is the single match-header row for a run. Built once by the
// normalizer and immutable afterward.
type Match struct {
	MatchID    int      `json:"match_id"`
	HomeTeamID *int     `json:"home_team_id"`
	HomeName   *string  `json:"home_name"`
	AwayTeamID *int     `json:"away_team_id"`
	AwayName   *string  `json:"away_name"`
	Venue      *string  `json:"venue"`
	Attendance *int     `json:"attendance"`
	Referee    *string  `json:"referee"`
	StartTime  *string  `json:"start_time"`
	Elapsed    *string  `json:"elapsed"`
	Score      *string  `json:"score"`
	HTScore    *string  `json:"ht_score"`
	FTScore    *string  `json:"ft_score"`
	StatusCode *int     `json:"status_code"`
}

// PlayerAppearance is one player on one team's squad list for one match.
// Player id is unique within (match, team).
type PlayerAppearance struct {
	MatchID         int      `json:"match_id"`
	TeamSide        string   `json:"team_side"`
	TeamID          *int     `json:"team_id"`
	TeamName        *string  `json:"team_name"`
	PlayerID        *int     `json:"player_id"`
	PlayerName      *string  `json:"player_name"`
	IsFirstEleven   bool     `json:"isFirstEleven"`
	Position        *string  `json:"position"`
	ShirtNo         *int     `json:"shirtNo"`
	Height          *float64 `json:"height"`
	Weight          *float64 `json:"weight"`
	Age             *int     `json:"age"`
	Rating          *float64 `json:"rating"`
	IsManOfTheMatch bool     `json:"isManOfTheMatch"`
}

// TeamSide values for PlayerAppearance and the timeline tables.
const (
	SideHome = "home"
	SideAway = "away"
)
