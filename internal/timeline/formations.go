// Package timeline reconstructs the two time-ordered views of a match:
// per-team formation segments with slot-level player positions, and the
// running score with its as-of merge onto those segments.
package timeline

import (
	"sort"
	"strconv"

	"github.com/pitchside/matchcenter-cli/internal/model"
	"github.com/pitchside/matchcenter-cli/internal/payload"
	"github.com/pitchside/matchcenter-cli/internal/tree"
)

// recognizedPeriods are the period values kept when building segments:
// first half, second half, and the extra-time marker.
var recognizedPeriods = map[int]struct{}{1: {}, 2: {}, 16: {}}

// Horizon returns one past the maximum expanded minute seen across all
// events. It bounds segments that are still open at data end and is
// computed once per run.
func Horizon(events []model.Event) int {
	maxExp := 0
	for _, ev := range events {
		if ev.ExpandedMinute != nil && *ev.ExpandedMinute > maxExp {
			maxExp = *ev.ExpandedMinute
		}
	}
	return maxExp + 1
}

// BuildFormations reconstructs formation segments and per-slot player
// positions for both team sides. Jersey numbers are joined from the player
// appearance table; names is the formation id dictionary used to resolve a
// segment's formation name when the record carries only a formationId (nil
// is fine).
func BuildFormations(p *payload.Payload, matchID int, players []model.PlayerAppearance, horizon int, names map[string]string) ([]model.FormationSegment, []model.PositionSlot) {
	jerseyByPlayer := make(map[int]*int, len(players))
	for _, pl := range players {
		if pl.PlayerID != nil {
			jerseyByPlayer[*pl.PlayerID] = pl.ShirtNo
		}
	}

	var segments []model.FormationSegment
	var slots []model.PositionSlot

	for _, side := range []string{model.SideHome, model.SideAway} {
		team := p.MatchCentre.Field(side)
		teamID := team.Field("teamId").IntPtr()
		teamName := team.Field("name").StrPtr()

		forms := team.Field("formations").Slice()
		sort.SliceStable(forms, func(i, j int) bool {
			pi, pj := forms[i].Field("period").Int(0), forms[j].Field("period").Int(0)
			if pi != pj {
				return pi < pj
			}
			return forms[i].Field("startMinuteExpanded").Int(-1) < forms[j].Field("startMinuteExpanded").Int(-1)
		})

		kept := forms[:0]
		for _, f := range forms {
			if _, ok := recognizedPeriods[f.Field("period").Int(0)]; ok {
				kept = append(kept, f)
			}
		}

		for i, f := range kept {
			period := f.Field("period").Int(0)
			start := f.Field("startMinuteExpanded").Int(0)

			// End: the source's explicit end when it is usable, else the
			// next segment's start within the same period, else the run
			// horizon for a segment still open at data end.
			end := horizon
			if e := f.Field("endMinuteExpanded").IntPtr(); e != nil && *e > start {
				end = *e
			} else if i+1 < len(kept) && kept[i+1].Field("period").Int(0) == period {
				end = kept[i+1].Field("startMinuteExpanded").Int(horizon)
			}

			name := formationName(f, names)

			segments = append(segments, model.FormationSegment{
				MatchID:       matchID,
				TeamSide:      side,
				TeamID:        teamID,
				TeamName:      teamName,
				FormationName: name,
				Period:        period,
				StartExpanded: start,
				EndExpanded:   end,
				Duration:      end - start,
			})

			mapping := resolveSlots(f)
			positions := positionList(f)

			slotNums := make([]int, 0, len(mapping))
			for s := range mapping {
				slotNums = append(slotNums, s)
			}
			sort.Ints(slotNums)

			for _, s := range slotNums {
				pid := mapping[s]
				var x, y *float64
				if s >= 1 && s <= len(positions) {
					x, y = positions[s-1].x, positions[s-1].y
				}
				slots = append(slots, model.PositionSlot{
					MatchID:       matchID,
					TeamSide:      side,
					TeamID:        teamID,
					Period:        period,
					StartMinute:   start,
					EndMinute:     end,
					FormationName: name,
					Slot:          s,
					PlayerID:      pid,
					JerseyNumber:  jerseyByPlayer[pid],
					X:             x,
					Y:             y,
				})
			}
		}
	}

	return segments, slots
}

// formationName prefers the record's own formationName and falls back to
// the formation id dictionary keyed by formationId. Nil when neither
// resolves.
func formationName(f tree.Value, names map[string]string) *string {
	if s := f.Field("formationName").StrPtr(); s != nil {
		return s
	}
	if id := f.Field("formationId").IntPtr(); id != nil {
		if n, ok := names[strconv.Itoa(*id)]; ok {
			return &n
		}
	}
	return nil
}

// slotResolver attempts one source encoding of the slot→player relation,
// returning nil when that encoding is absent or yields nothing.
type slotResolver func(tree.Value) map[int]int

// slotResolvers is a strictly ordered fallback chain: the first resolver
// producing a non-empty mapping wins and later ones are never consulted.
// Partial results are never merged across resolvers — the encodings are
// mutually exclusive per document version, and merging could silently pair
// incompatible data.
var slotResolvers = []slotResolver{
	resolveParallelArrays,
	resolveSlotToPlayerMap,
	resolvePlayerToSlotMap,
	resolveSlotPairList,
}

func resolveSlots(f tree.Value) map[int]int {
	for _, r := range slotResolvers {
		if m := r(f); len(m) > 0 {
			return m
		}
	}
	return nil
}

// resolveParallelArrays handles two parallel arrays of slot numbers and
// player ids. A length mismatch yields nothing: partial pairing of
// misaligned arrays is worse than no pairing.
func resolveParallelArrays(f tree.Value) map[int]int {
	slotsArr := f.FirstField("formationSlots", "slots").Slice()
	pids := f.Field("playerIds").Slice()
	if len(slotsArr) == 0 || len(slotsArr) != len(pids) {
		return nil
	}
	m := make(map[int]int)
	for i, sv := range slotsArr {
		s := sv.IntPtr()
		pid := pids[i].IntPtr()
		if s == nil || *s <= 0 || pid == nil {
			continue
		}
		m[*s] = *pid
	}
	return m
}

// resolveSlotToPlayerMap handles a direct map from slot number to player id.
func resolveSlotToPlayerMap(f tree.Value) map[int]int {
	for _, key := range []string{"formationSlotToPlayerIdMap", "slotToPlayerIdMap"} {
		src := f.Field(key).Map()
		if len(src) == 0 {
			continue
		}
		m := make(map[int]int)
		for k, v := range src {
			s := tree.CoerceInt(k)
			pid := tree.CoerceInt(v)
			if s == nil || *s <= 0 || pid == nil {
				continue
			}
			m[*s] = *pid
		}
		if len(m) > 0 {
			return m
		}
	}
	return nil
}

// resolvePlayerToSlotMap handles the inverse map from player id to slot.
func resolvePlayerToSlotMap(f tree.Value) map[int]int {
	for _, key := range []string{"playerIdToFormationSlotMap", "playerToSlotMap"} {
		src := f.Field(key).Map()
		if len(src) == 0 {
			continue
		}
		m := make(map[int]int)
		for k, v := range src {
			pid := tree.CoerceInt(k)
			s := tree.CoerceInt(v)
			if s == nil || *s <= 0 || pid == nil {
				continue
			}
			m[*s] = *pid
		}
		if len(m) > 0 {
			return m
		}
	}
	return nil
}

// resolveSlotPairList handles a list of {slot, playerId} pair objects.
func resolveSlotPairList(f tree.Value) map[int]int {
	items := f.Field("slots").Slice()
	if len(items) == 0 {
		return nil
	}
	m := make(map[int]int)
	for _, it := range items {
		if it.Map() == nil {
			continue
		}
		s := it.Field("slot").IntPtr()
		pid := it.Field("playerId").IntPtr()
		if s == nil || *s <= 0 || pid == nil {
			continue
		}
		m[*s] = *pid
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

type position struct {
	x, y *float64
}

// positionList normalizes the slot-indexed coordinates array. Several
// field-name pairs for the horizontal/vertical axes appear across document
// versions.
func positionList(f tree.Value) []position {
	src := f.FirstField("formationPositions", "positions", "formationCoordinates").Slice()
	out := make([]position, len(src))
	for i, p := range src {
		if p.Map() == nil {
			continue
		}
		out[i] = position{
			x: p.FirstField("horizontal", "x", "centerX").FloatPtr(),
			y: p.FirstField("vertical", "y", "centerY").FloatPtr(),
		}
	}
	return out
}
