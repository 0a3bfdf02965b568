// Package store persists normalized match tables to a relational
// database. Two implementations exist: SQLite for single-file local runs
// and Postgres with COPY bulk loads for shared deployments. A re-run of
// the same match replaces its rows.
package store

import (
	"context"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

// Store is the persistence interface for one normalization run.
type Store interface {
	// SaveTables writes every table of the run, replacing any rows a
	// previous run of the same match left behind.
	SaveTables(ctx context.Context, ts *model.TableSet) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// tablePrototypes supplies one zero row per table so schema and column
// order can be derived even when a run leaves a table empty.
var tablePrototypes = map[string]any{
	model.TableMatch:            model.Match{},
	model.TablePlayers:          model.PlayerAppearance{},
	model.TableEvents:           model.Event{},
	model.TableShots:            model.Shot{},
	model.TablePasses:           model.Pass{},
	model.TableDefensive:        model.DefensiveAction{},
	model.TableKeeperActions:    model.KeeperAction{},
	model.TableFormations:       model.FormationSegment{},
	model.TablePositions:        model.PositionSlot{},
	model.TableScoreTimeline:    model.ScorePoint{},
	model.TableFormationsScored: model.ScoredSegment{},
}
