package classify

import (
	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

var keeperTypes = map[string]struct{}{
	"Save": {}, "Claim": {}, "KeeperPickup": {}, "Punch": {},
	"Smother": {}, "KeeperSweeper": {},
}

// KeeperActions filters events to explicitly goalkeeper-tagged actions.
// Shots saved by the keeper are recorded upstream as SavedShot events and
// belong to the shots table; they are deliberately not duplicated here.
func KeeperActions(events []model.Event) []model.KeeperAction {
	var actions []model.KeeperAction
	for _, ev := range events {
		if _, ok := keeperTypes[ev.TypeName]; !ok {
			continue
		}
		actions = append(actions, model.KeeperAction{
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
			GKGoalMouthY:   tree.CoerceFloat(ev.Qualifiers.Get("GoalMouthY")),
			GKGoalMouthZ:   tree.CoerceFloat(ev.Qualifiers.Get("GoalMouthZ")),
			Qualifiers:     ev.Qualifiers,
		})
	}
	return actions
}
