package classify

import (
	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

// directAssistTags are the qualifier tags by which the source itself
// asserts an assist on a pass. Kept separate from the shot-linkage
// derivation so the two signals can be cross-validated downstream.
var directAssistTags = []string{"Assist", "GoalAssist", "IntentionalGoalAssist"}

type shotKey struct {
	teamID      int
	passEventID int
}

// Passes selects all events typed exactly "Pass" and enriches each with
// the shots it originated, via an index over the shots table keyed by
// (team id, originating-pass event id).
func Passes(events []model.Event, shots []model.Shot) []model.Pass {
	index := make(map[shotKey][]model.RelatedShot)
	for _, s := range shots {
		if s.TeamID == nil || s.RelatedPassEventID == nil {
			continue
		}
		k := shotKey{teamID: *s.TeamID, passEventID: *s.RelatedPassEventID}
		index[k] = append(index[k], model.RelatedShot{
			ShotEventID: s.EventID,
			ShotOutcome: s.ShotOutcome,
			TypeName:    s.TypeName,
			Minute:      s.Minute,
			Second:      s.Second,
		})
	}

	var passes []model.Pass
	for _, ev := range events {
		if ev.TypeName != "Pass" {
			continue
		}

		outcome := ev.OutcomeName
		if outcome == "" {
			outcome = "Unknown"
		}

		var related []model.RelatedShot
		if ev.TeamID != nil && ev.EventID != nil {
			related = index[shotKey{teamID: *ev.TeamID, passEventID: *ev.EventID}]
		}

		isAssist := false
		for _, rs := range related {
			if rs.ShotOutcome == model.ShotOutcomeGoal {
				isAssist = true
				break
			}
		}

		passes = append(passes, model.Pass{
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
			OutcomeName:        ev.OutcomeName,
			PassOutcome:        outcome,
			IsKeyPass:          len(related) > 0,
			IsAssist:           isAssist,
			IsCross:            ev.Qualifiers.Has("Cross"),
			IsThroughBall:      ev.Qualifiers.HasAny("ThroughBall", "ChippedThroughBall"),
			Length:             tree.CoerceFloat(ev.Qualifiers.Get("Length")),
			Angle:              tree.CoerceFloat(ev.Qualifiers.Get("Angle")),
			RelatedShots:       related,
			HasAssistQualifier: ev.Qualifiers.HasAny(directAssistTags...),
			Qualifiers:         ev.Qualifiers,
		})
	}
	return passes
}
