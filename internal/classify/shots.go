// Package classify derives the four event-category tables (shots, passes,
// defensive actions, goalkeeper actions) from the atomic-event table.
// Every derivation is a pure filter/map; malformed qualifier values degrade
// to null instead of aborting the run.
package classify

import (
	"strings"

	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

// shotTypes are the type tags under which the upstream feed records shot
// attempts. The same real-world action lands under different tags depending
// on outcome, so classification can't rely on a single tag.
var shotTypes = map[string]struct{}{
	"Shot": {}, "Goal": {}, "MissedShots": {}, "SavedShot": {},
	"ShotOnPost": {}, "BlockedShot": {}, "OwnGoal": {},
}

// assistAliases are the qualifier tags any of which may carry the id of the
// pass that originated a shot.
var assistAliases = []string{
	"KeyPass", "Assist", "GoalAssist", "IntentionalGoalAssist",
	"IntentionalAssist", "AssistPassId",
}

// Shots filters the atomic events down to shot attempts and assigns each
// exactly one shot outcome.
func Shots(events []model.Event) []model.Shot {
	var shots []model.Shot
	for _, ev := range events {
		if !isShot(ev) {
			continue
		}
		shots = append(shots, model.Shot{
			MatchID:            ev.MatchID,
			EventID:            ev.EventID,
			Minute:             ev.Minute,
			Second:             ev.Second,
			ExpandedMinute:     ev.ExpandedMinute,
			Period:             ev.Period,
			TeamID:             ev.TeamID,
			PlayerID:           ev.PlayerID,
			X:                  ev.X,
			Y:                  ev.Y,
			EndX:               ev.EndX,
			EndY:               ev.EndY,
			TypeName:           ev.TypeName,
			ShotOutcome:        shotOutcome(ev),
			RelatedPassEventID: tree.CoerceInt(ev.Qualifiers.GetAny(assistAliases...)),
			GoalMouthY:         tree.CoerceFloat(ev.Qualifiers.Get("GoalMouthY")),
			GoalMouthZ:         tree.CoerceFloat(ev.Qualifiers.Get("GoalMouthZ")),
			Length:             tree.CoerceFloat(ev.Qualifiers.Get("Length")),
			Angle:              tree.CoerceFloat(ev.Qualifiers.Get("Angle")),
			Qualifiers:         ev.Qualifiers,
		})
	}
	return shots
}

// isShot: a shot type tag, goal-mouth coordinates, or a ShotType qualifier
// all mark the event as a shot attempt.
func isShot(ev model.Event) bool {
	if _, ok := shotTypes[ev.TypeName]; ok {
		return true
	}
	if ev.Qualifiers.Get("GoalMouthY") != nil || ev.Qualifiers.Get("GoalMouthZ") != nil {
		return true
	}
	return ev.Qualifiers.Has("ShotType")
}

// shotOutcome decides the single outcome label by first match. The order
// matters: a goal that was also deflected must stay a Goal.
func shotOutcome(ev model.Event) string {
	out := ev.OutcomeName
	switch {
	case ev.TypeName == "Goal" || ev.Qualifiers.Has("Goal"):
		return model.ShotOutcomeGoal
	case ev.TypeName == "BlockedShot" || ev.Qualifiers.Has("BlockedPass"):
		return model.ShotOutcomeBlocked
	case ev.TypeName == "SavedShot" || strings.Contains(out, "Saved"):
		return model.ShotOutcomeSaved
	case ev.TypeName == "ShotOnPost" || ev.Qualifiers.Has("HitWoodWork"):
		return model.ShotOutcomePost
	case ev.TypeName == "MissedShots" || strings.Contains(out, "Off Target") || strings.Contains(out, "Missed"):
		return model.ShotOutcomeMissed
	case out != "":
		return out
	case ev.TypeName != "":
		return ev.TypeName
	}
	return model.ShotOutcomeUnknown
}
