package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/libris/internal/flagx"
)

var allowedFlags = []string{
	"-a", "-g", "-d", "-driver", "-migrate", "-timeout", "-loan",
	"-log-level", "-log-format", "-cors", "-b", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g., ":8080")
//	-g string          gRPC bind address (e.g., ":50051")
//	-d string          database DSN
//	-driver string     pgx, mysql or sqlite3
//	-migrate bool      apply migrations at startup
//	-timeout duration  borrow/return deadline
//	-loan duration     default loan period
//	-log-level string  debug, info, warn, error
//	-log-format string json or text
//	-cors string       comma-separated allowed origins
//	-b string          S3 bucket for reconciliation reports
//	-e string          S3 base endpoint
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) pass through.
func parseFlags(config *Config) error {
	return parseArgs(config, os.Args[1:])
}

func parseArgs(config *Config, argv []string) error {
	args := flagx.FilterArgs(argv, allowedFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DBDriver, "driver", config.DBDriver, "database driver: pgx, mysql or sqlite3")
	fs.BoolVar(&config.RunMigrations, "migrate", config.RunMigrations, "apply migrations at startup")
	fs.DurationVar(&config.OpTimeout, "timeout", config.OpTimeout, "borrow/return deadline")
	fs.DurationVar(&config.LoanPeriod, "loan", config.LoanPeriod, "default loan period")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format: json or text")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "comma-separated CORS origins")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for reconciliation reports")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CORSOrigins = splitList(*cors)
	return nil
}
