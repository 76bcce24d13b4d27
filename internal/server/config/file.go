package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/libris/internal/flagx"
	"github.com/dmitrijs2005/libris/internal/timex"
)

// FileConfig is the on-disk form of Config. Durations use timex.Duration so
// both "5s" and integer nanoseconds are accepted. Zero values leave the
// current setting alone.
type FileConfig struct {
	HTTPAddr        string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr" yaml:"grpc_addr"`
	DBDriver        string         `json:"db_driver" yaml:"db_driver"`
	DatabaseDSN     string         `json:"database_dsn" yaml:"database_dsn"`
	MaxOpenConns    int            `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int            `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	RunMigrations   *bool          `json:"run_migrations" yaml:"run_migrations"`
	OpTimeout       timex.Duration `json:"op_timeout" yaml:"op_timeout"`
	LoanPeriod      timex.Duration `json:"loan_period" yaml:"loan_period"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
	CORSOrigins     []string       `json:"cors_origins" yaml:"cors_origins"`
	S3Bucket        string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Prefix        string         `json:"s3_prefix" yaml:"s3_prefix"`
	S3Region        string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3PathStyle     *bool          `json:"s3_path_style" yaml:"s3_path_style"`
}

// parseFile overlays the file named by -c or -config, if any. Files ending
// in .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return nil
	}
	return loadFile(config, path)
}

func loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.GRPCAddr, fc.GRPCAddr)
	setString(&c.DBDriver, fc.DBDriver)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	if fc.MaxOpenConns > 0 {
		c.MaxOpenConns = fc.MaxOpenConns
	}
	if fc.MaxIdleConns > 0 {
		c.MaxIdleConns = fc.MaxIdleConns
	}
	if fc.ConnMaxLifetime.Duration > 0 {
		c.ConnMaxLifetime = fc.ConnMaxLifetime.Duration
	}
	if fc.RunMigrations != nil {
		c.RunMigrations = *fc.RunMigrations
	}
	if fc.OpTimeout.Duration > 0 {
		c.OpTimeout = fc.OpTimeout.Duration
	}
	if fc.LoanPeriod.Duration > 0 {
		c.LoanPeriod = fc.LoanPeriod.Duration
	}
	if fc.ShutdownTimeout.Duration > 0 {
		c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = fc.CORSOrigins
	}
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Prefix, fc.S3Prefix)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.S3AccessKey, fc.S3AccessKey)
	setString(&c.S3SecretKey, fc.S3SecretKey)
	if fc.S3PathStyle != nil {
		c.S3PathStyle = *fc.S3PathStyle
	}
}
