package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/db"
	"github.com/pitchside/matchcenter-cli/internal/model"
)

// PostgresStore implements Store using pgxpool, loading the events-scale
// tables via COPY.
type PostgresStore struct {
	pool   db.Pool
	schema string
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32  `yaml:"min_conns" mapstructure:"min_conns"`
	Schema   string `yaml:"schema" mapstructure:"schema"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	schema := ""
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
		schema = poolCfg.Schema
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, schema: schema}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool, schema string) *PostgresStore {
	return &PostgresStore{pool: pool, schema: schema}
}

var postgresTypes = map[colKind]string{
	colInt:   "BIGINT",
	colFloat: "DOUBLE PRECISION",
	colText:  "TEXT",
	colBool:  "BOOLEAN",
	colJSON:  "JSONB",
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if s.schema != "" {
		if _, err := s.pool.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", s.schema)); err != nil {
			return eris.Wrapf(err, "postgres: create schema %s", s.schema)
		}
	}
	for _, name := range model.TableNames {
		ddl := createTableSQL(s.qualified(name), columnsFor(tablePrototypes[name]), postgresTypes)
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return eris.Wrapf(err, "postgres: create table %s", name)
		}
		idx := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_match_id ON %s(match_id)",
			name, s.qualified(name))
		if _, err := s.pool.Exec(ctx, idx); err != nil {
			return eris.Wrapf(err, "postgres: index %s", name)
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// SaveTables replaces the match's rows table by table: DELETE by match id,
// then COPY the new rows.
func (s *PostgresStore) SaveTables(ctx context.Context, ts *model.TableSet) error {
	for _, name := range model.TableNames {
		if _, err := s.pool.Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE match_id = $1", s.qualified(name)), ts.MatchID); err != nil {
			return eris.Wrapf(err, "postgres: clear %s", name)
		}

		rows := ts.Rows(name)
		if len(rows) == 0 {
			continue
		}
		cols := columnsFor(rows[0])
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.name
		}
		vals := make([][]any, len(rows))
		for i, row := range rows {
			vals[i] = valuesFor(row)
		}

		var err error
		if s.schema != "" {
			_, err = db.CopyFromSchema(ctx, s.pool, s.schema, name, names, vals)
		} else {
			_, err = db.CopyFrom(ctx, s.pool, name, names, vals)
		}
		if err != nil {
			return eris.Wrapf(err, "postgres: load %s", name)
		}
	}
	zap.L().Debug("store: match saved", zap.String("backend", "postgres"), zap.Int("match_id", ts.MatchID))
	return nil
}

func (s *PostgresStore) qualified(name string) string {
	if s.schema == "" {
		return name
	}
	return strings.Join([]string{s.schema, name}, ".")
}
