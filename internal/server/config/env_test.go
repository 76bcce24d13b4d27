package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseEnv(t *testing.T) {
	c := defaults()
	err := parseEnv(c, mapEnv(map[string]string{
		"LIBRIS_DB_DRIVER":      "mysql",
		"LIBRIS_DATABASE_DSN":   "root@tcp(db)/libris",
		"LIBRIS_MAX_OPEN_CONNS": "7",
		"LIBRIS_LOAN_PERIOD":    "48h",
		"LIBRIS_RUN_MIGRATIONS": "false",
		"LIBRIS_CORS_ORIGINS":   "https://a.example,,https://b.example",
		"LIBRIS_S3_ACCESS_KEY":  "AKIA",
		"LIBRIS_LOG_LEVEL":      "   ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "mysql", c.DBDriver)
	assert.Equal(t, "root@tcp(db)/libris", c.DatabaseDSN)
	assert.Equal(t, 7, c.MaxOpenConns)
	assert.Equal(t, 48*time.Hour, c.LoanPeriod)
	assert.False(t, c.RunMigrations)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, "AKIA", c.S3AccessKey)
	assert.Equal(t, "info", c.LogLevel, "blank values are ignored")
}

func TestParseEnv_Errors(t *testing.T) {
	for _, kv := range []map[string]string{
		{"LIBRIS_MAX_IDLE_CONNS": "many"},
		{"LIBRIS_OP_TIMEOUT": "5"},
		{"LIBRIS_S3_PATH_STYLE": "maybe"},
	} {
		assert.Error(t, parseEnv(defaults(), mapEnv(kv)), kv)
	}
}
