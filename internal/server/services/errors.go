package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
)

// classify returns err in the shape transports expect. Taxonomy errors pass
// through unchanged; an expired deadline or an unreachable store becomes
// Unavailable; anything else is wrapped with op.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		nf *common.NotFoundError
		cf *common.ConflictError
		ve *common.ValidationError
		ue *common.UnavailableError
	)
	switch {
	case errors.As(err, &ue):
		return err
	case errors.As(err, &nf), errors.As(err, &cf), errors.As(err, &ve):
		return err
	case ctx.Err() != nil, dbx.IsUnavailable(err):
		return common.NewUnavailable(op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func required(field, value string) error {
	if value == "" {
		return common.NewValidation(field, "is required")
	}
	return nil
}
