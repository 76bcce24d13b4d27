package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":         "www.example:8000",
		"grpc_addr":         "www.example:9000",
		"db_driver":         "sqlite3",
		"database_dsn":      "libris.db",
		"max_open_conns":    1,
		"conn_max_lifetime": "1m",
		"run_migrations":    false,
		"op_timeout":        int64(2 * time.Second),
		"loan_period":       "168h",
		"cors_origins":      []string{"http://localhost:3000"},
		"s3_bucket":         "bucket",
		"s3_path_style":     true,
	})

	cfg := defaults()
	require.NoError(t, loadFile(cfg, path))

	assert.Equal(t, "www.example:8000", cfg.HTTPAddr)
	assert.Equal(t, "www.example:9000", cfg.GRPCAddr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "libris.db", cfg.DatabaseDSN)
	assert.Equal(t, 1, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns, "absent keys keep their value")
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 2*time.Second, cfg.OpTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.LoanPeriod)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.True(t, cfg.S3PathStyle)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_driver: mysql
database_dsn: "libris:libris@tcp(localhost:3306)/libris?parseTime=true"
shutdown_timeout: 30s
log_format: text
cors_origins:
  - https://a.example
  - https://b.example
`), 0o600))

	cfg := defaults()
	require.NoError(t, loadFile(cfg, path))

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "libris:libris@tcp(localhost:3306)/libris?parseTime=true", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		assert.Error(t, loadFile(defaults(), filepath.Join(t.TempDir(), "nope.json")))
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		assert.Error(t, loadFile(defaults(), path))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"op_timeout": "soon"})
		assert.Error(t, loadFile(defaults(), path))
	})
}

func TestParseFile_NoFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := defaults()
	require.NoError(t, parseFile(cfg))
	assert.Equal(t, defaults(), cfg)
}
