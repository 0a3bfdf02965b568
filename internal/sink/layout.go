// Package sink persists a completed TableSet: JSON and CSV pairs per table,
// an optional XLSX workbook, the verbatim raw payload, and a manifest with
// row counts and SHA-1 content hashes.
package sink

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

const maxSlugLen = 80

var slugStripRe = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// diacritics folding: decompose, drop combining marks, recompose.
var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug folds diacritics and reduces a display name to a filesystem-safe
// token. Empty input stays empty; callers supply their own fallbacks.
func Slug(s string) string {
	if folded, _, err := transform.String(slugFolder, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, `\`, "-")
	s = slugStripRe.ReplaceAllString(s, "")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// MatchDir returns the per-match output directory, relative to the output
// root: MatchCenter/<competition>/<season>/<date>_<home>_vs_<away>_<id>.
func MatchDir(ts *model.TableSet) string {
	home, away := "Home", "Away"
	if ts.Match.HomeName != nil {
		home = *ts.Match.HomeName
	}
	if ts.Match.AwayName != nil {
		away = *ts.Match.AwayName
	}
	date := ""
	if ts.Match.StartTime != nil && len(*ts.Match.StartTime) >= 10 {
		date = strings.ReplaceAll((*ts.Match.StartTime)[:10], "-", "")
	}
	matchSlug := fmt.Sprintf("%s_%s_vs_%s_%d", date, Slug(home), Slug(away), ts.MatchID)
	return filepath.Join("MatchCenter", Slug(ts.CompetitionName), Slug(ts.SeasonName), matchSlug)
}
