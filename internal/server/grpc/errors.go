package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/libris/internal/common"
)

func codeFor(err error) codes.Code {
	switch common.Code(err) {
	case common.CodeNotFound:
		return codes.NotFound
	case common.CodeConflict:
		return codes.AlreadyExists
	case common.CodeValidation:
		return codes.InvalidArgument
	case common.CodeUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// fail converts a service error to a status. Internal details are logged,
// not returned.
func (s *GRPCServer) fail(ctx context.Context, err error) error {
	code := codeFor(err)
	switch code {
	case codes.Internal:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	case codes.Unavailable:
		s.logger.Error(ctx, "request failed", "error", err)
	}
	return status.Error(code, err.Error())
}
