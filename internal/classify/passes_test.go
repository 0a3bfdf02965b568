package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

func TestPassAssistLinkage(t *testing.T) {
	// A pass at minute 9 whose event id matches the goal's originating-pass
	// qualifier must come out as key pass and assist.
	pass := model.Event{
		MatchID: 1, EventID: intp(900), Minute: intp(9), ExpandedMinute: intp(9),
		TeamID: intp(65), TypeName: "Pass", OutcomeName: "Successful",
	}
	goal := model.Event{
		MatchID: 1, EventID: intp(901), Minute: intp(10), ExpandedMinute: intp(10),
		TeamID: intp(65), TypeName: "Goal",
		Qualifiers: model.Qualifiers{q("GoalAssist", "900")},
	}

	shots := Shots([]model.Event{goal})
	passes := Passes([]model.Event{pass, goal}, shots)

	require.Len(t, passes, 1)
	p := passes[0]
	assert.True(t, p.IsKeyPass)
	assert.True(t, p.IsAssist)
	require.Len(t, p.RelatedShots, 1)
	assert.Equal(t, 901, *p.RelatedShots[0].ShotEventID)
	assert.Equal(t, model.ShotOutcomeGoal, p.RelatedShots[0].ShotOutcome)
}

func TestPassLinkageRequiresSameTeam(t *testing.T) {
	pass := model.Event{EventID: intp(10), TeamID: intp(65), TypeName: "Pass"}
	shot := model.Event{
		EventID: intp(11), TeamID: intp(52), TypeName: "SavedShot",
		Qualifiers: model.Qualifiers{q("KeyPass", "10")},
	}

	passes := Passes([]model.Event{pass, shot}, Shots([]model.Event{shot}))
	require.Len(t, passes, 1)
	assert.False(t, passes[0].IsKeyPass)
	assert.Empty(t, passes[0].RelatedShots)
}

func TestPassKeyPassWithoutGoalIsNotAssist(t *testing.T) {
	pass := model.Event{EventID: intp(20), TeamID: intp(65), TypeName: "Pass"}
	shot := model.Event{
		EventID: intp(21), TeamID: intp(65), TypeName: "SavedShot",
		Qualifiers: model.Qualifiers{q("KeyPass", "20")},
	}

	passes := Passes([]model.Event{pass, shot}, Shots([]model.Event{shot}))
	require.Len(t, passes, 1)
	assert.True(t, passes[0].IsKeyPass)
	assert.False(t, passes[0].IsAssist)
}

// Every pass flagged as assist must have at least one related shot whose
// outcome is Goal.
func TestAssistConsistency(t *testing.T) {
	events := []model.Event{
		{EventID: intp(1), TeamID: intp(65), TypeName: "Pass"},
		{EventID: intp(2), TeamID: intp(65), TypeName: "Pass"},
		{EventID: intp(3), TeamID: intp(65), TypeName: "Goal", Qualifiers: model.Qualifiers{q("Assist", "1")}},
		{EventID: intp(4), TeamID: intp(65), TypeName: "MissedShots", Qualifiers: model.Qualifiers{q("KeyPass", "2")}},
	}
	passes := Passes(events, Shots(events))

	for _, p := range passes {
		if !p.IsAssist {
			continue
		}
		found := false
		for _, rs := range p.RelatedShots {
			if rs.ShotOutcome == model.ShotOutcomeGoal {
				found = true
			}
		}
		assert.True(t, found, "assist pass %d has no goal among related shots", *p.EventID)
	}
}

func TestPassFlagsAndFallbacks(t *testing.T) {
	events := []model.Event{
		{
			EventID: intp(1), TeamID: intp(65), TypeName: "Pass",
			Qualifiers: model.Qualifiers{q("Cross"), q("Length", "32.4"), q("Angle", "1.1")},
		},
		{
			EventID: intp(2), TeamID: intp(65), TypeName: "Pass",
			Qualifiers: model.Qualifiers{q("ChippedThroughBall")},
		},
		{EventID: intp(3), TeamID: intp(65), TypeName: "Pass"},
	}

	passes := Passes(events, nil)
	require.Len(t, passes, 3)

	assert.True(t, passes[0].IsCross)
	assert.False(t, passes[0].IsThroughBall)
	assert.Equal(t, 32.4, *passes[0].Length)
	assert.Equal(t, 1.1, *passes[0].Angle)

	assert.True(t, passes[1].IsThroughBall)

	// Missing outcome falls back to Unknown.
	assert.Equal(t, "Unknown", passes[2].PassOutcome)
	assert.Nil(t, passes[2].Length)
}

func TestPassAssistQualifierIsIndependent(t *testing.T) {
	// The source asserts an assist but no shot links back: the raw flag is
	// kept true while the derived flag stays false. Both are retained.
	pass := model.Event{
		EventID: intp(5), TeamID: intp(65), TypeName: "Pass",
		Qualifiers: model.Qualifiers{q("IntentionalGoalAssist")},
	}
	passes := Passes([]model.Event{pass}, nil)
	require.Len(t, passes, 1)
	assert.True(t, passes[0].HasAssistQualifier)
	assert.False(t, passes[0].IsAssist)
}
