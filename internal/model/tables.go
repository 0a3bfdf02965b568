package model

// Canonical table names, in write order.
const (
	TableMatch            = "match_meta"
	TablePlayers          = "players"
	TableEvents           = "events"
	TableShots            = "events_shots"
	TablePasses           = "events_passes"
	TableDefensive        = "events_defensive"
	TableKeeperActions    = "events_gk_actions"
	TableFormations       = "formations_timeline"
	TablePositions        = "player_positions_timeline"
	TableScoreTimeline    = "score_timeline"
	TableFormationsScored = "formations_timeline_scored"
)

// TableNames lists every output table in its stable write order.
var TableNames = []string{
	TableMatch,
	TablePlayers,
	TableEvents,
	TableShots,
	TablePasses,
	TableDefensive,
	TableKeeperActions,
	TableFormations,
	TablePositions,
	TableScoreTimeline,
	TableFormationsScored,
}

// TableSet is the complete output of one normalization run: eleven flat
// tables plus the verbatim extracted literals for auditability. Outputs of
// each pipeline stage are immutable inputs to the next; a TableSet is never
// mutated after the engine returns it.
type TableSet struct {
	MatchID int

	Match            Match
	Players          []PlayerAppearance
	Events           []Event
	Shots            []Shot
	Passes           []Pass
	Defensive        []DefensiveAction
	KeeperActions    []KeeperAction
	Formations       []FormationSegment
	Positions        []PositionSlot
	ScoreTimeline    []ScorePoint
	FormationsScored []ScoredSegment

	// Extraction context carried for persistence and integrity hashing.
	RawPayload            string            // primary literal, verbatim
	RawEventTypes         string            // event-type dictionary literal, "" if absent
	RawScoreTimeline      string            // embedded score timeline array, "" if absent
	RawFormationsTimeline string            // embedded formations timeline array, "" if absent
	CompetitionName       string
	SeasonName            string
	FormationNames        map[string]string // formation id -> name, nil if absent
}

// Rows returns the named table as a []any of row structs, preserving row
// order. Unknown names yield nil.
func (ts *TableSet) Rows(name string) []any {
	switch name {
	case TableMatch:
		return []any{ts.Match}
	case TablePlayers:
		return anySlice(ts.Players)
	case TableEvents:
		return anySlice(ts.Events)
	case TableShots:
		return anySlice(ts.Shots)
	case TablePasses:
		return anySlice(ts.Passes)
	case TableDefensive:
		return anySlice(ts.Defensive)
	case TableKeeperActions:
		return anySlice(ts.KeeperActions)
	case TableFormations:
		return anySlice(ts.Formations)
	case TablePositions:
		return anySlice(ts.Positions)
	case TableScoreTimeline:
		return anySlice(ts.ScoreTimeline)
	case TableFormationsScored:
		return anySlice(ts.FormationsScored)
	}
	return nil
}

func anySlice[T any](rows []T) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
