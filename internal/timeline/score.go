package timeline

import (
	"math"
	"sort"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

// BuildScoreTimeline walks the goal events in expanded-minute order and
// emits the running score after each one. An own goal credits the opposing
// side's counter; a goal whose team id matches neither side leaves both
// counters unchanged but still emits a point so the anomaly is visible
// downstream.
func BuildScoreTimeline(shots []model.Shot, matchID int, homeTeamID, awayTeamID *int) []model.ScorePoint {
	goals := make([]model.Shot, 0, 8)
	for _, s := range shots {
		if s.ShotOutcome == model.ShotOutcomeGoal {
			goals = append(goals, s)
		}
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return expandedOrLast(goals[i].ExpandedMinute) < expandedOrLast(goals[j].ExpandedMinute)
	})

	points := make([]model.ScorePoint, 0, len(goals))
	home, away := 0, 0
	for _, g := range goals {
		own := g.Qualifiers.Has("OwnGoal")
		credited := g.TeamID
		if own && g.TeamID != nil {
			credited = opposing(g.TeamID, homeTeamID, awayTeamID)
		}
		switch {
		case credited != nil && homeTeamID != nil && *credited == *homeTeamID:
			home++
		case credited != nil && awayTeamID != nil && *credited == *awayTeamID:
			away++
		}
		points = append(points, model.ScorePoint{
			MatchID:        matchID,
			ExpandedMinute: g.ExpandedMinute,
			ScorerTeamID:   g.TeamID,
			OwnGoal:        own,
			ScoreHome:      home,
			ScoreAway:      away,
		})
	}
	return points
}

// AttachScore performs a backward as-of merge: each formation segment picks
// up the score state from the latest score point at or before its start
// minute. Segments with no preceding point carry 0-0 and a draw.
func AttachScore(segments []model.FormationSegment, points []model.ScorePoint) []model.ScoredSegment {
	ordered := make([]model.ScorePoint, 0, len(points))
	for _, p := range points {
		if p.ExpandedMinute != nil {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return *ordered[i].ExpandedMinute < *ordered[j].ExpandedMinute
	})

	out := make([]model.ScoredSegment, 0, len(segments))
	for _, seg := range segments {
		home, away := 0, 0
		for _, p := range ordered {
			if *p.ExpandedMinute > seg.StartExpanded {
				break
			}
			home, away = p.ScoreHome, p.ScoreAway
		}
		out = append(out, model.ScoredSegment{
			FormationSegment: seg,
			ScoreHome:        home,
			ScoreAway:        away,
			LeaderAtStart:    leader(home, away),
		})
	}
	return out
}

func leader(home, away int) string {
	switch {
	case home > away:
		return model.LeaderHome
	case away > home:
		return model.LeaderAway
	default:
		return model.LeaderDraw
	}
}

// opposing maps a known team id to the other side's id; nil when the id
// matches neither side.
func opposing(teamID, homeTeamID, awayTeamID *int) *int {
	switch {
	case homeTeamID != nil && *teamID == *homeTeamID:
		return awayTeamID
	case awayTeamID != nil && *teamID == *awayTeamID:
		return homeTeamID
	}
	return nil
}

// expandedOrLast sorts goals with a missing expanded minute after all
// timed ones.
func expandedOrLast(m *int) int {
	if m == nil {
		return math.MaxInt
	}
	return *m
}
