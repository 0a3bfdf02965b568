// Package normalize flattens the generic match-centre value tree into the
// three base tables: match header, player appearances, and atomic events.
// Every lookup is null-safe; the only fatal condition is a payload with no
// match identifier at all.
package normalize

import (
	"errors"
	"math"

	"github.com/rotisserie/eris"

	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/payload"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

// ErrIncompletePayload means the payload carried no match identifier, so no
// relationally consistent tables can be produced from it.
var ErrIncompletePayload = errors.New("incomplete payload: match id missing")

// MatchID resolves the run's match identifier from the extraction metadata
// or the match-centre tree itself.
func MatchID(p *payload.Payload) (int, error) {
	if p.MatchID != nil {
		return *p.MatchID, nil
	}
	if id := p.MatchCentre.Field("matchId").IntPtr(); id != nil {
		return *id, nil
	}
	return 0, eris.Wrap(ErrIncompletePayload, "normalize")
}

// BuildMatch produces the single match-header row.
func BuildMatch(p *payload.Payload) (model.Match, error) {
	id, err := MatchID(p)
	if err != nil {
		return model.Match{}, err
	}

	mcd := p.MatchCentre
	home := mcd.Field("home")
	away := mcd.Field("away")
	status := mcd.Field("status")

	m := model.Match{
		MatchID:    id,
		HomeTeamID: home.Field("teamId").IntPtr(),
		HomeName:   home.Field("name").StrPtr(),
		AwayTeamID: away.Field("teamId").IntPtr(),
		AwayName:   away.Field("name").StrPtr(),
		Venue:      mcd.Field("venueName").StrPtr(),
		Attendance: mcd.Field("attendance").IntPtr(),
		Referee:    refereeName(mcd.Field("referee")),
		StartTime:  mcd.Field("startTime").StrPtr(),
		Score:      mcd.Field("score").StrPtr(),
		HTScore:    mcd.Field("htScore").StrPtr(),
		FTScore:    mcd.Field("ftScore").StrPtr(),
	}

	if s := status.Field("displayStatus").StrPtr(); s != nil {
		m.Elapsed = s
	} else {
		m.Elapsed = mcd.Field("elapsed").StrPtr()
	}
	if v := status.Field("value").IntPtr(); v != nil {
		m.StatusCode = v
	} else {
		m.StatusCode = mcd.Field("statusCode").IntPtr()
	}

	return m, nil
}

// refereeName handles both encodings seen in the wild: an object with a
// name field, or a bare string.
func refereeName(ref tree.Value) *string {
	if n := ref.Field("name").StrPtr(); n != nil {
		return n
	}
	return ref.StrPtr()
}

// BuildPlayers unions the home and away squads, home first, preserving
// squad order within each side.
func BuildPlayers(p *payload.Payload, matchID int) []model.PlayerAppearance {
	var rows []model.PlayerAppearance
	for _, side := range []string{model.SideHome, model.SideAway} {
		team := p.MatchCentre.Field(side)
		teamID := team.Field("teamId").IntPtr()
		teamName := team.Field("name").StrPtr()
		for _, pl := range team.Field("players").Slice() {
			rows = append(rows, model.PlayerAppearance{
				MatchID:         matchID,
				TeamSide:        side,
				TeamID:          teamID,
				TeamName:        teamName,
				PlayerID:        pl.Field("playerId").IntPtr(),
				PlayerName:      pl.Field("name").StrPtr(),
				IsFirstEleven:   pl.Field("isFirstEleven").Bool(),
				Position:        pl.Field("position").StrPtr(),
				ShirtNo:         pl.Field("shirtNo").IntPtr(),
				Height:          pl.Field("height").FloatPtr(),
				Weight:          pl.Field("weight").FloatPtr(),
				Age:             pl.Field("age").IntPtr(),
				Rating:          finalRating(pl.Field("stats").Field("ratings")),
				IsManOfTheMatch: pl.Field("isManOfTheMatch").Bool(),
			})
		}
	}
	return rows
}

// finalRating picks the rating keyed by the numerically largest timestamp
// key. An empty or malformed mapping yields nil, never zero: a missing
// rating and a 0.0 rating mean different things downstream.
func finalRating(ratings tree.Value) *float64 {
	m := ratings.Map()
	if len(m) == 0 {
		return nil
	}
	bestKey := ""
	bestN := 0
	for k := range m {
		n := tree.CoerceInt(k)
		if n == nil {
			continue
		}
		if bestKey == "" || *n > bestN {
			bestKey, bestN = k, *n
		}
	}
	if bestKey == "" {
		return nil
	}
	f := tree.CoerceFloat(m[bestKey])
	if f == nil {
		return nil
	}
	r := math.Round(*f*100) / 100
	return &r
}

// BuildEvents produces one atomic-event row per source event, preserving
// source order.
func BuildEvents(p *payload.Payload, matchID int) []model.Event {
	src := p.MatchCentre.Field("events").Slice()
	rows := make([]model.Event, 0, len(src))
	for _, ev := range src {
		typ := ev.Field("type")
		out := ev.Field("outcomeType")

		eventID := ev.Field("eventId").IntPtr()
		if eventID == nil {
			eventID = ev.Field("id").IntPtr()
		}

		rows = append(rows, model.Event{
			MatchID:        matchID,
			EventID:        eventID,
			Minute:         ev.Field("minute").IntPtr(),
			Second:         ev.Field("second").IntPtr(),
			ExpandedMinute: ev.Field("expandedMinute").IntPtr(),
			Period:         ev.Field("period").Field("value").IntPtr(),
			TeamID:         ev.Field("teamId").IntPtr(),
			PlayerID:       ev.Field("playerId").IntPtr(),
			X:              ev.Field("x").FloatPtr(),
			Y:              ev.Field("y").FloatPtr(),
			EndX:           ev.Field("endX").FloatPtr(),
			EndY:           ev.Field("endY").FloatPtr(),
			TypeValue:      typ.Field("value").IntPtr(),
			TypeName:       typ.Field("displayName").Str(),
			OutcomeValue:   out.Field("value").IntPtr(),
			OutcomeName:    out.Field("displayName").Str(),
			RelatedEventID: ev.Field("relatedEventId").IntPtr(),
			Qualifiers:     buildQualifiers(ev.Field("qualifiers")),
		})
	}
	return rows
}

// buildQualifiers converts the raw qualifier list into the ordered
// tag+value sequence. Entries without a recognizable tag name are dropped.
func buildQualifiers(qs tree.Value) model.Qualifiers {
	src := qs.Slice()
	if len(src) == 0 {
		return nil
	}
	out := make(model.Qualifiers, 0, len(src))
	for _, q := range src {
		name := q.Field("type").Field("displayName").Str()
		if name == "" {
			continue
		}
		out = append(out, model.Qualifier{Name: name, Value: q.Field("value").Raw()})
	}
	return out
}
