package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "events", []string{"match_id", "event_id"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"events"}, []string{"match_id", "event_id", "type_name"}).WillReturnResult(3)

	rows := [][]any{
		{1913916, 900, "Pass"},
		{1913916, 901, "Goal"},
		{1913916, 902, "Tackle"},
	}
	n, err := CopyFrom(context.Background(), mock, "events", []string{"match_id", "event_id", "type_name"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"events"}, []string{"match_id"}).WillReturnError(fmt.Errorf("copy failed"))

	_, err = CopyFrom(context.Background(), mock, "events", []string{"match_id"}, [][]any{{1913916}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO events")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFromSchema_EmptyRows(t *testing.T) {
	n, err := CopyFromSchema(context.TODO(), nil, "match_data", "events", []string{"match_id"}, [][]any{})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFromSchema_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"match_data", "players"}, []string{"match_id", "player_id"}).WillReturnResult(2)

	rows := [][]any{{1913916, 101}, {1913916, 102}}
	n, err := CopyFromSchema(context.Background(), mock, "match_data", "players", []string{"match_id", "player_id"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFromSchema_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"match_data", "events"}, []string{"match_id"}).WillReturnError(fmt.Errorf("permission denied"))

	_, err = CopyFromSchema(context.Background(), mock, "match_data", "events", []string{"match_id"}, [][]any{{1913916}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO match_data.events")
	assert.NoError(t, mock.ExpectationsWereMet())
}
