package model

// FormationSegment is one contiguous interval during which a team fielded
// one named formation within one match period. End is either the next
// segment's start or one past the last expanded minute seen in the event
// stream when the segment is still open at data end.
type FormationSegment struct {
	MatchID       int     `json:"match_id"`
	TeamSide      string  `json:"team_side"`
	TeamID        *int    `json:"team_id"`
	TeamName      *string `json:"team_name"`
	FormationName *string `json:"formation_name"`
	Period        int     `json:"period"`
	StartExpanded int     `json:"start_expanded"`
	EndExpanded   int     `json:"end_expanded"`
	Duration      int     `json:"duration_expanded"`
}

// PositionSlot maps one formation slot (1..11) of a segment to the player
// occupying it. Coordinates are nullable when the source omits them or the
// slot index falls outside the positions array.
type PositionSlot struct {
	MatchID       int      `json:"match_id"`
	TeamSide      string   `json:"team_side"`
	TeamID        *int     `json:"team_id"`
	Period        int      `json:"period"`
	StartMinute   int      `json:"start_minute"`
	EndMinute     int      `json:"end_minute"`
	FormationName *string  `json:"formation_name"`
	Slot          int      `json:"slot"`
	PlayerID      int      `json:"player_id"`
	JerseyNumber  *int     `json:"jersey_number"`
	X             *float64 `json:"x"`
	Y             *float64 `json:"y"`
}

// ScorePoint is the running score immediately after one goal, ordered by
// expanded minute. ScorerTeamID is the team credited with scoring; for an
// own goal the opposing side's counter is the one incremented.
type ScorePoint struct {
	MatchID        int  `json:"match_id"`
	ExpandedMinute *int `json:"expandedMinute"`
	ScorerTeamID   *int `json:"scorer_teamId"`
	OwnGoal        bool `json:"own_goal"`
	ScoreHome      int  `json:"score_home"`
	ScoreAway      int  `json:"score_away"`
}

// Leader tags for ScoredSegment.
const (
	LeaderHome = "home"
	LeaderAway = "away"
	LeaderDraw = "draw"
)

// ScoredSegment is a FormationSegment with the score state in force at its
// start minute attached via a backward as-of merge.
type ScoredSegment struct {
	FormationSegment
	ScoreHome     int    `json:"score_home"`
	ScoreAway     int    `json:"score_away"`
	LeaderAtStart string `json:"leader_at_start"`
}
