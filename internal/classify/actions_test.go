package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

func TestDefensiveActions(t *testing.T) {
	events := []model.Event{
		ev(1, "Tackle"),
		ev(2, "Pass"),
		ev(3, "Interception"),
		ev(4, "Clearance"),
		ev(5, "BlockedShot"),
		ev(6, "Aerial"),
		ev(7, "BallRecovery"),
		ev(8, "Challenge"),
		ev(9, "Save"),
	}

	actions := DefensiveActions(events)
	require.Len(t, actions, 7)
	assert.Equal(t, "Tackle", actions[0].TypeName)
	assert.Equal(t, "Challenge", actions[6].TypeName)
}

func TestKeeperActions(t *testing.T) {
	events := []model.Event{
		ev(1, "Save", q("GoalMouthY", "52.1"), q("GoalMouthZ", "8.0")),
		ev(2, "Claim"),
		ev(3, "KeeperPickup"),
		ev(4, "Punch"),
		ev(5, "Smother"),
		ev(6, "KeeperSweeper"),
		ev(7, "SavedShot"), // a shot event, not an explicit keeper action
		ev(8, "Pass"),
	}

	actions := KeeperActions(events)
	require.Len(t, actions, 6)

	assert.Equal(t, 52.1, *actions[0].GKGoalMouthY)
	assert.Equal(t, 8.0, *actions[0].GKGoalMouthZ)
	assert.Nil(t, actions[1].GKGoalMouthY)
}

func TestKeeperMalformedGoalMouthDegradesToNull(t *testing.T) {
	actions := KeeperActions([]model.Event{ev(1, "Save", q("GoalMouthY", "high"))})
	require.Len(t, actions, 1)
	assert.Nil(t, actions[0].GKGoalMouthY)
}
