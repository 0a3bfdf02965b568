package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchcenter-cli/internal/payload"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

func payloadFrom(t *testing.T, mcd string, matchID *int) *payload.Payload {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(mcd), &v))
	return &payload.Payload{MatchID: matchID, MatchCentre: tree.Of(v), RawMatchCentre: mcd}
}

func intp(i int) *int { return &i }

func TestBuildMatch(t *testing.T) {
	p := payloadFrom(t, `{
		"home":{"teamId":65,"name":"Barcelona"},
		"away":{"teamId":52,"name":"Real Madrid"},
		"venueName":"  Camp Nou ",
		"attendance":88966,
		"referee":{"name":"Mateu Lahoz"},
		"startTime":"2026-03-01T21:00:00",
		"status":{"value":6,"displayStatus":"FT"},
		"score":"2 : 1","htScore":"1 : 0","ftScore":"2 : 1"
	}`, intp(1913916))

	m, err := BuildMatch(p)
	require.NoError(t, err)

	assert.Equal(t, 1913916, m.MatchID)
	assert.Equal(t, 65, *m.HomeTeamID)
	assert.Equal(t, "Real Madrid", *m.AwayName)
	assert.Equal(t, "Camp Nou", *m.Venue)
	assert.Equal(t, 88966, *m.Attendance)
	assert.Equal(t, "Mateu Lahoz", *m.Referee)
	assert.Equal(t, "FT", *m.Elapsed)
	assert.Equal(t, 6, *m.StatusCode)
	assert.Equal(t, "2 : 1", *m.FTScore)
}

func TestBuildMatchRefereeAsString(t *testing.T) {
	p := payloadFrom(t, `{"referee":"J. Smith"}`, intp(1))
	m, err := BuildMatch(p)
	require.NoError(t, err)
	assert.Equal(t, "J. Smith", *m.Referee)
}

func TestBuildMatchMissingFieldsAreNull(t *testing.T) {
	p := payloadFrom(t, `{"matchId":42}`, nil)
	m, err := BuildMatch(p)
	require.NoError(t, err)
	assert.Equal(t, 42, m.MatchID)
	assert.Nil(t, m.HomeTeamID)
	assert.Nil(t, m.Venue)
	assert.Nil(t, m.Attendance)
}

func TestBuildMatchNoIDFails(t *testing.T) {
	p := payloadFrom(t, `{"home":{"teamId":1}}`, nil)
	_, err := BuildMatch(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompletePayload))
}

func TestBuildPlayers(t *testing.T) {
	p := payloadFrom(t, `{
		"home":{"teamId":65,"name":"Barcelona","players":[
			{"playerId":101,"name":"Ter Stegen","isFirstEleven":true,"position":"GK","shirtNo":1,
			 "height":187,"weight":85,"age":33,
			 "stats":{"ratings":{"10":6.1,"45":6.8,"90":7.43}},
			 "isManOfTheMatch":false},
			{"playerId":102,"name":"Sub Keeper","stats":{"ratings":{}}}
		]},
		"away":{"teamId":52,"name":"Real Madrid","players":[
			{"playerId":201,"name":"Courtois","isFirstEleven":true,"stats":{}}
		]}
	}`, intp(9))

	rows := BuildPlayers(p, 9)
	require.Len(t, rows, 3)

	// Home squad first, source order preserved.
	assert.Equal(t, "home", rows[0].TeamSide)
	assert.Equal(t, "home", rows[1].TeamSide)
	assert.Equal(t, "away", rows[2].TeamSide)

	first := rows[0]
	assert.Equal(t, 9, first.MatchID)
	assert.Equal(t, 101, *first.PlayerID)
	assert.True(t, first.IsFirstEleven)
	assert.Equal(t, 1, *first.ShirtNo)
	// Rating comes from the largest timestamp key (90), not an average.
	require.NotNil(t, first.Rating)
	assert.Equal(t, 7.43, *first.Rating)

	// Empty or absent ratings map yields nil, never zero.
	assert.Nil(t, rows[1].Rating)
	assert.Nil(t, rows[2].Rating)
}

func TestFinalRatingKeyOrderIsNumeric(t *testing.T) {
	// "100" > "99" numerically even though it sorts lower lexically.
	p := payloadFrom(t, `{
		"home":{"teamId":1,"players":[
			{"playerId":1,"stats":{"ratings":{"99":6.0,"100":8.2}}}
		]},
		"away":{}
	}`, intp(1))
	rows := BuildPlayers(p, 1)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Rating)
	assert.Equal(t, 8.2, *rows[0].Rating)
}

func TestBuildEvents(t *testing.T) {
	p := payloadFrom(t, `{"events":[
		{"eventId":11,"minute":3,"second":14,"expandedMinute":3,
		 "period":{"value":1,"displayName":"FirstHalf"},
		 "teamId":65,"playerId":101,"x":34.5,"y":50.1,"endX":60.0,"endY":44.2,
		 "type":{"value":1,"displayName":"Pass"},
		 "outcomeType":{"value":1,"displayName":"Successful"},
		 "qualifiers":[
			{"type":{"value":2,"displayName":"Cross"}},
			{"type":{"value":140,"displayName":"PassEndX"},"value":"60.0"}
		 ]},
		{"id":12,"minute":4,"type":{"value":13,"displayName":"MissedShots"}}
	]}`, intp(5))

	rows := BuildEvents(p, 5)
	require.Len(t, rows, 2)

	ev := rows[0]
	assert.Equal(t, 11, *ev.EventID)
	assert.Equal(t, 1, *ev.Period)
	assert.Equal(t, "Pass", ev.TypeName)
	assert.Equal(t, "Successful", ev.OutcomeName)
	assert.Equal(t, 34.5, *ev.X)
	require.Len(t, ev.Qualifiers, 2)
	assert.True(t, ev.Qualifiers.Has("Cross"))
	assert.Equal(t, "60.0", ev.Qualifiers.Get("PassEndX"))

	// Falls back to "id" when "eventId" is absent; nullable fields stay nil.
	assert.Equal(t, 12, *rows[1].EventID)
	assert.Nil(t, rows[1].TeamID)
	assert.Empty(t, rows[1].OutcomeName)
	assert.Nil(t, rows[1].Qualifiers)
}

func TestMatchIDFallsBackToTree(t *testing.T) {
	p := payloadFrom(t, `{"matchId":314}`, nil)
	id, err := MatchID(p)
	require.NoError(t, err)
	assert.Equal(t, 314, id)
}
