// Package identity resolves team branding (colors, logo, slug) from a
// team_identity.csv file. The registry is an explicit object loaded once
// and passed where needed; there is no package-level state.
package identity

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pitchside/matchcenter-cli/internal/fetcher"
)

// Default colors used when the identity file leaves them blank or the team
// is unknown.
const (
	DefaultPrimary   = "#2ecc71"
	DefaultSecondary = "#007bff"
)

// TeamStyle is the branding resolved for one team.
type TeamStyle struct {
	Name      string
	Slug      string
	Primary   string
	Secondary string
	Logo      *string
}

// Registry holds the loaded identity table, indexed by team id and by
// lowercased team name.
type Registry struct {
	byID   map[int]TeamStyle
	byName map[string]TeamStyle
}

// Load reads a team_identity.csv with columns team_id, team_name, slug,
// primary, secondary, logo_path.
func Load(path string) (*Registry, error) {
	table, err := fetcher.ReadCSVFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "identity: load")
	}

	r := &Registry{
		byID:   make(map[int]TeamStyle, len(table.Rows)),
		byName: make(map[string]TeamStyle, len(table.Rows)),
	}
	for _, row := range table.Rows {
		style := TeamStyle{
			Name:      table.Field(row, "team_name"),
			Slug:      table.Field(row, "slug"),
			Primary:   table.Field(row, "primary"),
			Secondary: table.Field(row, "secondary"),
		}
		if logo := table.Field(row, "logo_path"); logo != "" {
			style.Logo = &logo
		}
		if style.Primary == "" {
			style.Primary = DefaultPrimary
		}
		if style.Secondary == "" {
			style.Secondary = DefaultSecondary
		}

		if id, err := strconv.Atoi(table.Field(row, "team_id")); err == nil {
			r.byID[id] = style
		}
		if style.Name != "" {
			r.byName[strings.ToLower(style.Name)] = style
		}
	}
	return r, nil
}

// Style resolves a team by id, falling back to a case-insensitive name
// match, and finally to defaults carrying the fallback name.
func (r *Registry) Style(teamID int, fallbackName string) TeamStyle {
	if s, ok := r.byID[teamID]; ok {
		return s
	}
	if s, ok := r.byName[strings.ToLower(fallbackName)]; ok {
		return s
	}
	return TeamStyle{
		Name:      fallbackName,
		Primary:   DefaultPrimary,
		Secondary: DefaultSecondary,
	}
}

// Len reports how many teams were loaded by id.
func (r *Registry) Len() int {
	return len(r.byID)
}
