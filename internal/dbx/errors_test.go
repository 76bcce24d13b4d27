package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"mysql duplicate", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), true},
		{"mysql other", &mysql.MySQLError{Number: 1452}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(context.DeadlineExceeded))
	assert.True(t, IsUnavailable(fmt.Errorf("db error: %w", context.Canceled)))
	assert.True(t, IsUnavailable(sql.ErrConnDone))
	assert.False(t, IsUnavailable(sql.ErrNoRows))
	assert.False(t, IsUnavailable(nil))
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"postgres": Postgres, "pgx": Postgres, "mysql": MySQL, "sqlite": SQLite, "sqlite3": SQLite,
	} {
		got, err := ParseDialect(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDialect("mongodb")
	assert.Error(t, err)

	assert.Equal(t, "postgres", Postgres.Goose())
	assert.Equal(t, "sqlite3", SQLite.Goose())
}
