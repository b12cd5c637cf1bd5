package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		want := errors.New("persistent")
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return want
		}, 3, time.Millisecond)
		assert.ErrorIs(t, err, want)
		assert.Equal(t, 3, calls)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		err := RetryWithBackoff(canceled, func() error { return errors.New("x") }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
