package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	config := Config{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Timeout:    1 * time.Second,
	}

	calls := 0
	result, err := Do(context.Background(), config, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoSucceedsAfterRetries(t *testing.T) {
	config := Config{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Timeout:    1 * time.Second,
	}

	calls := 0
	result, err := Do(context.Background(), config, func(ctx context.Context) ([][]interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("temporary failure")
		}
		return [][]interface{}{{"Email"}}, nil
	})

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsRetries(t *testing.T) {
	config := Config{
		MaxRetries: 2,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Timeout:    1 * time.Second,
	}

	calls := 0
	_, err := Do(context.Background(), config, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("persistent failure")
	})

	require.Error(t, err)
	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestDoSingleAttemptWithZeroConfig(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Config{}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("failure")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoContextCancellation(t *testing.T) {
	config := Config{
		MaxRetries: 5,
		BaseDelay:  50 * time.Millisecond,
		MaxDelay:   200 * time.Millisecond,
		Timeout:    1 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, config, func(ctx context.Context) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return "", errors.New("failure")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, calls, 3)
}

func TestBackoffDelayBounds(t *testing.T) {
	baseDelay := 10 * time.Millisecond
	maxDelay := 100 * time.Millisecond

	tests := []struct {
		attempt  int
		minDelay time.Duration
		maxDelay time.Duration
	}{
		{0, 5 * time.Millisecond, 15 * time.Millisecond},
		{1, 10 * time.Millisecond, 30 * time.Millisecond},
		{3, 40 * time.Millisecond, 100 * time.Millisecond},
		{35, 50 * time.Millisecond, 100 * time.Millisecond},
		{100, 50 * time.Millisecond, 100 * time.Millisecond},
	}

	for _, test := range tests {
		// sample repeatedly because of jitter
		for i := 0; i < 10; i++ {
			delay := backoffDelay(test.attempt, baseDelay, maxDelay)
			assert.GreaterOrEqual(t, delay, test.minDelay, "attempt %d", test.attempt)
			assert.LessOrEqual(t, delay, test.maxDelay, "attempt %d", test.attempt)
		}
	}
}
