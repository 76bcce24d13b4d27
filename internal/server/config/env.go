package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "LIBRIS_"

// environ is swapped in tests.
var environ = os.LookupEnv

// parseEnv overlays LIBRIS_* variables, e.g. LIBRIS_DATABASE_DSN.
func parseEnv(c *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	strs := map[string]*string{
		"HTTP_ADDR":        &c.HTTPAddr,
		"GRPC_ADDR":        &c.GRPCAddr,
		"DB_DRIVER":        &c.DBDriver,
		"DATABASE_DSN":     &c.DatabaseDSN,
		"LOG_LEVEL":        &c.LogLevel,
		"LOG_FORMAT":       &c.LogFormat,
		"S3_BUCKET":        &c.S3Bucket,
		"S3_PREFIX":        &c.S3Prefix,
		"S3_REGION":        &c.S3Region,
		"S3_BASE_ENDPOINT": &c.S3BaseEndpoint,
		"S3_ACCESS_KEY":    &c.S3AccessKey,
		"S3_SECRET_KEY":    &c.S3SecretKey,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_OPEN_CONNS": &c.MaxOpenConns,
		"MAX_IDLE_CONNS": &c.MaxIdleConns,
	}
	for name, dst := range ints {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"CONN_MAX_LIFETIME": &c.ConnMaxLifetime,
		"OP_TIMEOUT":        &c.OpTimeout,
		"LOAN_PERIOD":       &c.LoanPeriod,
		"SHUTDOWN_TIMEOUT":  &c.ShutdownTimeout,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		"RUN_MIGRATIONS": &c.RunMigrations,
		"S3_PATH_STYLE":  &c.S3PathStyle,
	}
	for name, dst := range bools {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = b
		}
	}

	if v, ok := get("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
