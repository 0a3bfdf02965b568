// Package engine orchestrates one normalization run: extract the embedded
// match-centre literal, normalize it into the flat tables, classify and
// enrich events, and reconstruct the timelines. The engine is pure and
// synchronous: one raw-markup string in, one TableSet out, never mutated
// after return. Callers parallelize across matches, never within one.
package engine

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/classify"
	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/normalize"
	"github.com/pitchside/matchcenter-cli/internal/payload"
	"github.com/pitchside/matchcenter-cli/internal/timeline"
)

// Run executes the full pipeline over one match page's markup.
func Run(html string) (*model.TableSet, error) {
	p, err := payload.Parse(html)
	if err != nil {
		return nil, eris.Wrap(err, "engine: extract payload")
	}
	return Normalize(p)
}

// Normalize runs the post-extraction stages over an already-parsed payload.
// Split from Run so tests and replay tooling can feed a payload directly.
func Normalize(p *payload.Payload) (*model.TableSet, error) {
	matchID, err := normalize.MatchID(p)
	if err != nil {
		return nil, eris.Wrap(err, "engine: resolve match id")
	}

	match, err := normalize.BuildMatch(p)
	if err != nil {
		return nil, eris.Wrap(err, "engine: build match row")
	}
	players := normalize.BuildPlayers(p, matchID)
	events := normalize.BuildEvents(p, matchID)

	shots := classify.Shots(events)
	passes := classify.Passes(events, shots)
	defensive := classify.DefensiveActions(events)
	keeper := classify.KeeperActions(events)

	names := formationNames(p)

	horizon := timeline.Horizon(events)
	formations, positions := timeline.BuildFormations(p, matchID, players, horizon, names)
	score := timeline.BuildScoreTimeline(shots, matchID, match.HomeTeamID, match.AwayTeamID)
	scored := timeline.AttachScore(formations, score)

	ts := &model.TableSet{
		MatchID:          matchID,
		Match:            match,
		Players:          players,
		Events:           events,
		Shots:            shots,
		Passes:           passes,
		Defensive:        defensive,
		KeeperActions:    keeper,
		Formations:       formations,
		Positions:        positions,
		ScoreTimeline:    score,
		FormationsScored: scored,

		RawPayload:            p.RawMatchCentre,
		RawEventTypes:         p.RawEventTypes,
		RawScoreTimeline:      p.RawScoreTimeline,
		RawFormationsTimeline: p.RawFormationsTimeline,
		CompetitionName:       competitionName(p),
		SeasonName:            seasonName(p),
		FormationNames:        names,
	}

	zap.L().Info("engine: run complete",
		zap.Int("match_id", matchID),
		zap.Int("events", len(events)),
		zap.Int("shots", len(shots)),
		zap.Int("passes", len(passes)),
		zap.Int("formation_segments", len(formations)),
	)
	return ts, nil
}

func competitionName(p *payload.Payload) string {
	if s := p.MatchCentre.FirstField("competitionName", "tournamentName").StrPtr(); s != nil {
		return *s
	}
	return "Competition"
}

func seasonName(p *payload.Payload) string {
	if s := p.MatchCentre.Field("seasonName").StrPtr(); s != nil {
		return *s
	}
	return "Season"
}

// formationNames flattens the formation id dictionary when the page
// carried one. Nil when absent.
func formationNames(p *payload.Payload) map[string]string {
	src := p.FormationDict.Map()
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for id, name := range src {
		if s, ok := name.(string); ok {
			out[id] = s
		}
	}
	return out
}
