package graphql

import (
	"errors"

	"github.com/dmitrijs2005/libris/internal/common"
)

// resolverError carries the taxonomy code into the response's
// errors[].extensions.
type resolverError struct {
	err error
}

func (e resolverError) Error() string { return e.err.Error() }

func (e resolverError) Unwrap() error { return e.err }

func (e resolverError) Extensions() map[string]any {
	code := common.Code(e.err)
	ext := map[string]any{"code": code}
	if code == common.CodeUnavailable {
		ext["retryable"] = true
	}
	var ve *common.ValidationError
	if errors.As(e.err, &ve) {
		ext["field"] = ve.Field
	}
	return ext
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return resolverError{err: err}
}

// lookup turns NotFound into a null result for single-entity queries.
func lookup(v any, err error) (any, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return v, nil
}
