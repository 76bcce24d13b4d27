// Command reconcile checks that every book's status agrees with its active
// borrowings. It prints the report, optionally uploads it to S3, and exits
// non-zero when anything needs manual attention. It never repairs data.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server"
	"github.com/dmitrijs2005/libris/internal/server/config"
	"github.com/dmitrijs2005/libris/internal/server/reports"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Logs go to stderr so stdout carries only the report.
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	var w reportWriter
	if s3cfg, ok := cfg.S3(); ok {
		sw, err := reports.NewS3Writer(ctx, s3cfg)
		if err != nil {
			logger.Error(ctx, "report storage", "error", err)
			_ = app.Close()
			os.Exit(1)
		}
		w = sw
	}

	code := run(ctx, app.Lifecycle(), w, os.Stdout, logger)
	_ = app.Close()
	os.Exit(code)
}
