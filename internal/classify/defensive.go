package classify

import "github.com/pitchside/matchcenter-cli/internal/model"

var defensiveTypes = map[string]struct{}{
	"Tackle": {}, "Interception": {}, "Clearance": {}, "BlockedShot": {},
	"Aerial": {}, "BallRecovery": {}, "Challenge": {},
}

// DefensiveActions filters events to the defensive type set. Pure
// passthrough, no enrichment.
func DefensiveActions(events []model.Event) []model.DefensiveAction {
	var actions []model.DefensiveAction
	for _, ev := range events {
		if _, ok := defensiveTypes[ev.TypeName]; !ok {
			continue
		}
		actions = append(actions, model.DefensiveAction{
			MatchID:        ev.MatchID,
			EventID:        ev.EventID,
			Minute:         ev.Minute,
			Second:         ev.Second,
			ExpandedMinute: ev.ExpandedMinute,
			Period:         ev.Period,
			TeamID:         ev.TeamID,
			PlayerID:       ev.PlayerID,
			X:              ev.X,
			Y:              ev.Y,
			TypeName:       ev.TypeName,
			OutcomeName:    ev.OutcomeName,
			Qualifiers:     ev.Qualifiers,
		})
	}
	return actions
}
