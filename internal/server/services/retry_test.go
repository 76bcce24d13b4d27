package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/libris/internal/common"
)

func TestRetryWithBackoff_RetriesOnceByDefault(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func(context.Context) error {
		calls++
		return common.ErrConcurrentUpdate
	}, WithBaseDelay(0))

	assert.ErrorIs(t, err, common.ErrConcurrentUpdate)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_SucceedsOnRetry(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return common.ErrConcurrentUpdate
		}
		return nil
	}, WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_OtherErrorsFailFast(t *testing.T) {
	for _, want := range []error{
		context.DeadlineExceeded,
		common.NewConflict(common.ErrBookNotAvailable, "taken"),
		errors.New("boom"),
	} {
		calls := 0
		err := RetryWithBackoff(context.Background(), func(context.Context) error {
			calls++
			return want
		}, WithMaxAttempts(5))

		assert.Equal(t, want, err)
		assert.Equal(t, 1, calls)
	}
}

func TestRetryWithBackoff_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryWithBackoff(ctx, func(context.Context) error {
		calls++
		cancel()
		return common.ErrConcurrentUpdate
	}, WithBaseDelay(time.Hour), WithMaxAttempts(3))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryOptions_Validation(t *testing.T) {
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, RetryWithBackoff(context.Background(), noop, WithMaxAttempts(0)), ErrInvalidMaxAttempts)
	assert.ErrorIs(t, RetryWithBackoff(context.Background(), noop, WithBaseDelay(-1)), ErrNegativeBaseDelay)
	assert.ErrorIs(t, RetryWithBackoff(context.Background(), noop, WithJitterFactor(1.5)), ErrInvalidJitterFactor)
}
