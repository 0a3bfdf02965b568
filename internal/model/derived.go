package model

// Shot outcome labels. Exactly one is assigned per shot; Unknown is the
// defined default when neither tags nor outcome text decide it.
const (
	ShotOutcomeGoal    = "Goal"
	ShotOutcomeBlocked = "Blocked"
	ShotOutcomeSaved   = "Saved"
	ShotOutcomePost    = "Post"
	ShotOutcomeMissed  = "Missed"
	ShotOutcomeUnknown = "Unknown"
)

// Shot is one shot attempt derived from an atomic event.
type Shot struct {
	MatchID            int        `json:"match_id"`
	EventID            *int       `json:"eventId"`
	Minute             *int       `json:"minute"`
	Second             *int       `json:"second"`
	ExpandedMinute     *int       `json:"expandedMinute"`
	Period             *int       `json:"period"`
	TeamID             *int       `json:"teamId"`
	PlayerID           *int       `json:"playerId"`
	X                  *float64   `json:"x"`
	Y                  *float64   `json:"y"`
	EndX               *float64   `json:"endX"`
	EndY               *float64   `json:"endY"`
	TypeName           string     `json:"typeName"`
	ShotOutcome        string     `json:"shot_outcome"`
	RelatedPassEventID *int       `json:"related_pass_eventId"`
	GoalMouthY         *float64   `json:"goal_mouth_y"`
	GoalMouthZ         *float64   `json:"goal_mouth_z"`
	Length             *float64   `json:"q_length"`
	Angle              *float64   `json:"q_angle"`
	Qualifiers         Qualifiers `json:"qualifiers"`
}

// RelatedShot is the compact shot reference carried on a pass row.
type RelatedShot struct {
	ShotEventID *int   `json:"shot_eventId"`
	ShotOutcome string `json:"shot_outcome"`
	TypeName    string `json:"typeName"`
	Minute      *int   `json:"minute"`
	Second      *int   `json:"second"`
}

// Pass is one pass event enriched with cross-event shot linkage.
// IsAssist is derived from RelatedShots; HasAssistQualifier records what
// the source qualifiers directly assert. The two may legitimately
// disagree and both are retained for cross-validation.
type Pass struct {
	MatchID            int           `json:"match_id"`
	EventID            *int          `json:"eventId"`
	Minute             *int          `json:"minute"`
	Second             *int          `json:"second"`
	ExpandedMinute     *int          `json:"expandedMinute"`
	Period             *int          `json:"period"`
	TeamID             *int          `json:"teamId"`
	PlayerID           *int          `json:"playerId"`
	X                  *float64      `json:"x"`
	Y                  *float64      `json:"y"`
	EndX               *float64      `json:"endX"`
	EndY               *float64      `json:"endY"`
	TypeName           string        `json:"typeName"`
	OutcomeName        string        `json:"outcomeName"`
	PassOutcome        string        `json:"pass_outcome"`
	IsKeyPass          bool          `json:"is_key_pass"`
	IsAssist           bool          `json:"is_assist"`
	IsCross            bool          `json:"is_cross"`
	IsThroughBall      bool          `json:"is_throughball"`
	Length             *float64      `json:"q_length"`
	Angle              *float64      `json:"q_angle"`
	RelatedShots       []RelatedShot `json:"related_shots"`
	HasAssistQualifier bool          `json:"has_assist_qualifier"`
	Qualifiers         Qualifiers    `json:"qualifiers"`
}

// DefensiveAction is one defensive event (tackle, interception, clearance,
// blocked shot, aerial duel, recovery, challenge). Pure passthrough.
type DefensiveAction struct {
	MatchID        int        `json:"match_id"`
	EventID        *int       `json:"eventId"`
	Minute         *int       `json:"minute"`
	Second         *int       `json:"second"`
	ExpandedMinute *int       `json:"expandedMinute"`
	Period         *int       `json:"period"`
	TeamID         *int       `json:"teamId"`
	PlayerID       *int       `json:"playerId"`
	X              *float64   `json:"x"`
	Y              *float64   `json:"y"`
	TypeName       string     `json:"typeName"`
	OutcomeName    string     `json:"outcomeName"`
	Qualifiers     Qualifiers `json:"qualifiers"`
}

// KeeperAction is one explicitly goalkeeper-tagged event. Saved shots
// recorded as shot events live in the shots table, not here.
type KeeperAction struct {
	MatchID        int        `json:"match_id"`
	EventID        *int       `json:"eventId"`
	Minute         *int       `json:"minute"`
	Second         *int       `json:"second"`
	ExpandedMinute *int       `json:"expandedMinute"`
	Period         *int       `json:"period"`
	TeamID         *int       `json:"teamId"`
	PlayerID       *int       `json:"playerId"`
	X              *float64   `json:"x"`
	Y              *float64   `json:"y"`
	TypeName       string     `json:"typeName"`
	OutcomeName    string     `json:"outcomeName"`
	GKGoalMouthY   *float64   `json:"gk_goal_mouth_y"`
	GKGoalMouthZ   *float64   `json:"gk_goal_mouth_z"`
	Qualifiers     Qualifiers `json:"qualifiers"`
}
