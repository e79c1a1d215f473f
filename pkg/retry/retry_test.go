package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	counter := 0
	err := NewDefaultRetrier().Do(context.Background(), func() error {
		counter++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, counter)
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	counter := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func() error {
		counter++
		if counter < 2 {
			return errors.New("temporary error")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, counter)
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	expectedErr := errors.New("permanent error")
	counter := 0
	err := NewRetrier(fastConfig(2)).Do(context.Background(), func() error {
		counter++
		return expectedErr
	})

	require.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 3, counter) // initial try + 2 retries
}

func TestRetry_ZeroRetriesRunsOnce(t *testing.T) {
	counter := 0
	err := NewRetrier(NewConfig(0)).Do(context.Background(), func() error {
		counter++
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, counter)
}

func TestRetry_NegativeRetriesClamped(t *testing.T) {
	assert.Equal(t, 0, NewConfig(-3).MaxRetries)
}

func TestRetry_PermanentStopsLoop(t *testing.T) {
	cause := errors.New("HTTP 404")
	counter := 0
	err := NewRetrier(fastConfig(5)).Do(context.Background(), func() error {
		counter++
		return Permanent(cause)
	})

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err)
	assert.Equal(t, 1, counter)
}

func TestRetry_PermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewDefaultRetrier()

	err := retrier.Do(ctx, func() error {
		cancel()
		return errors.New("operation error after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_Backoff(t *testing.T) {
	config := &Config{
		MaxRetries:    2,
		BackoffFactor: 2.0,
		InitialDelay:  20 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        10 * time.Millisecond,
	}

	start := time.Now()
	counter := 0
	_ = NewRetrier(config).Do(context.Background(), func() error {
		counter++
		return errors.New("error")
	})
	elapsed := time.Since(start)

	// two sleeps: 20ms and 40ms, each plus up to 10ms of jitter
	minExpected := config.InitialDelay + time.Duration(float64(config.InitialDelay)*config.BackoffFactor)
	assert.GreaterOrEqual(t, elapsed, minExpected)
	assert.Equal(t, 3, counter)
}
