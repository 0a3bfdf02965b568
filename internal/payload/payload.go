// Package payload locates the embedded match-centre data literal inside raw
// match-page markup and parses it into a generic value tree. The literal is
// not self-contained data: it rides inside a script assignment and has to
// be cut out by escape-aware brace balancing before it can be decoded.
package payload

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/tree"
)

// Payload is the located and decoded match-centre data, plus the raw
// extracted substrings kept verbatim for persistence and hashing.
type Payload struct {
	MatchID     *int
	MatchCentre tree.Value

	// Secondary literals riding alongside the primary one. Their absence
	// is never an error.
	EventTypes    tree.Value
	FormationDict tree.Value

	// Raw extracted substrings, verbatim, for persistence and hashing.
	// The embedded timeline arrays are kept raw only: they are decoded
	// once as a validity gate and then persisted as found.
	RawMatchCentre        string
	RawEventTypes         string
	RawScoreTimeline      string
	RawFormationsTimeline string
}

var (
	argsMarkerRe      = regexp.MustCompile(`require\.config\.params\["args"\]\s*=\s*\{`)
	matchIDRe         = regexp.MustCompile(`matchId\s*:\s*(\d+)`)
	matchCentreRe     = regexp.MustCompile(`matchCentreData\s*:\s*\{`)
	eventTypeRe       = regexp.MustCompile(`matchCentreEventType(?:Json)?\s*:\s*\{`)
	formationDictRe   = regexp.MustCompile(`formationIdNameDictionary\s*:\s*\{`)
	legacyMarkerRe    = regexp.MustCompile(`var\s+matchCentreData\s*=\s*\{`)
	embeddedTimelines = []struct {
		key string
		re  *regexp.Regexp
	}{
		{"scoreTimelineJson", regexp.MustCompile(`scoreTimelineJson\s*:\s*\[`)},
		{"formationsTimelineJson", regexp.MustCompile(`formationsTimelineJson\s*:\s*\[`)},
	}
)

// Parse finds the match-centre literal in raw markup and decodes it. It
// tries the current document shape (require.config args object) first; the
// legacy inline assignment is the fallback whenever that yields no
// match-centre literal, including when an args object exists without one.
// If both strategies fail the whole extraction fails with
// ErrPayloadNotFound.
func Parse(html string) (*Payload, error) {
	candidates := scriptCandidates(html)

	var argsErr error
	for _, candidate := range candidates {
		if !argsMarkerRe.MatchString(candidate) {
			continue
		}
		p, err := parseArgs(candidate)
		if err == nil {
			return p, nil
		}
		argsErr = err
	}
	for _, candidate := range candidates {
		if loc := legacyMarkerRe.FindStringIndex(candidate); loc != nil {
			return parseLegacy(candidate, loc[1]-1)
		}
	}
	if argsErr != nil {
		return nil, argsErr
	}
	return nil, eris.Wrap(ErrPayloadNotFound, "no payload marker in document")
}

// scriptCandidates narrows the markup to script bodies so the balanced
// scan doesn't walk megabytes of page text. If the document does not parse
// as HTML the raw input itself is the only candidate.
func scriptCandidates(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		zap.L().Debug("payload: markup not parseable as html, scanning raw text", zap.Error(err))
		return []string{html}
	}
	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if t := s.Text(); t != "" {
			scripts = append(scripts, t)
		}
	})
	// The raw input is kept as a last candidate: some saved pages carry the
	// assignment outside any script element.
	return append(scripts, html)
}

// parseArgs extracts the primary and secondary literals from a script
// containing the args-object assignment.
func parseArgs(script string) (*Payload, error) {
	loc := argsMarkerRe.FindStringIndex(script)
	args, err := ExtractBalancedObject(script, loc[1]-1)
	if err != nil {
		return nil, eris.Wrap(err, "payload: args object")
	}

	p := &Payload{}

	if m := matchIDRe.FindStringSubmatch(args); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			p.MatchID = &id
		}
	}

	mcLoc := matchCentreRe.FindStringIndex(args)
	if mcLoc == nil {
		return nil, eris.Wrap(ErrPayloadNotFound, "payload: args object has no match-centre literal")
	}
	raw, err := ExtractBalancedObject(args, mcLoc[1]-1)
	if err != nil {
		return nil, eris.Wrap(err, "payload: match-centre literal")
	}
	mc, err := decodeTree(raw)
	if err != nil {
		return nil, eris.Wrapf(ErrPayloadNotFound, "payload: decode match-centre literal: %v", err)
	}
	p.MatchCentre = mc
	p.RawMatchCentre = raw

	// Secondary literals: decode failures are logged and dropped, never fatal.
	if loc := eventTypeRe.FindStringIndex(args); loc != nil {
		if raw, err := ExtractBalancedObject(args, loc[1]-1); err == nil {
			if v, err := decodeTree(raw); err == nil {
				p.EventTypes = v
				p.RawEventTypes = raw
			} else {
				zap.L().Warn("payload: event-type dictionary did not decode", zap.Error(err))
			}
		}
	}
	if loc := formationDictRe.FindStringIndex(args); loc != nil {
		if raw, err := ExtractBalancedObject(args, loc[1]-1); err == nil {
			if v, err := decodeTree(raw); err == nil {
				p.FormationDict = v
			}
		}
	}
	for _, tl := range embeddedTimelines {
		loc := tl.re.FindStringIndex(args)
		if loc == nil {
			continue
		}
		raw, err := ExtractBalancedArray(args, loc[1]-1)
		if err != nil {
			continue
		}
		if _, err := decodeTree(raw); err != nil {
			continue
		}
		switch tl.key {
		case "scoreTimelineJson":
			p.RawScoreTimeline = raw
		case "formationsTimelineJson":
			p.RawFormationsTimeline = raw
		}
	}

	return p, nil
}

// parseLegacy handles the older document shape with a bare inline
// `var matchCentreData = {...}` assignment and no args object.
func parseLegacy(script string, braceIdx int) (*Payload, error) {
	raw, err := ExtractBalancedObject(script, braceIdx)
	if err != nil {
		return nil, eris.Wrap(err, "payload: legacy match-centre literal")
	}
	mc, err := decodeTree(raw)
	if err != nil {
		return nil, eris.Wrapf(ErrPayloadNotFound, "payload: decode legacy literal: %v", err)
	}
	p := &Payload{MatchCentre: mc, RawMatchCentre: raw}
	if id := mc.Field("matchId").IntPtr(); id != nil {
		p.MatchID = id
	}
	return p, nil
}

func decodeTree(raw string) (tree.Value, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return tree.Value{}, err
	}
	return tree.Of(v), nil
}
