package main

import (
	"context"
	"io"

	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server/reports"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

type reconciler interface {
	Reconcile(ctx context.Context) (*services.ReconcileReport, error)
}

type reportWriter interface {
	Write(ctx context.Context, report *services.ReconcileReport) (string, error)
}

// Exit codes.
const (
	exitClean     = 0
	exitFailed    = 1
	exitConflicts = 2
)

// run performs one pass and prints the report. Mismatches are logged by
// the lifecycle manager itself. w may be nil.
func run(ctx context.Context, r reconciler, w reportWriter, out io.Writer, logger logging.Logger) int {
	report, err := r.Reconcile(ctx)
	if err != nil {
		logger.Error(ctx, "reconciliation failed", "error", err)
		return exitFailed
	}

	if err := reports.Encode(out, report); err != nil {
		logger.Error(ctx, "print report", "error", err)
		return exitFailed
	}

	if w != nil {
		key, err := w.Write(ctx, report)
		if err != nil {
			logger.Error(ctx, "upload report", "error", err)
			return exitFailed
		}
		logger.Info(ctx, "report uploaded", "key", key)
	}

	if len(report.Mismatches) > 0 {
		return exitConflicts
	}
	return exitClean
}
