package pacing

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
)

func TestIntervalGate(t *testing.T) {
	g := NewInterval(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, g.Wait(ctx))
	require.NoError(t, g.Wait(ctx))
	require.NoError(t, g.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, g.(*Interval).Interval())
}

func TestIntervalGateCanceled(t *testing.T) {
	g := NewInterval(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, g.Wait(ctx))
	cancel()
	assert.Error(t, g.Wait(ctx))
}

func TestDelayGateWaitsEveryCall(t *testing.T) {
	g := NewDelay(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, g.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "first call is delayed too")

	time.Sleep(20 * time.Millisecond)
	start = time.Now()
	require.NoError(t, g.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "idle time does not shorten the wait")
}

func TestDelayGateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewDelay(time.Hour).Wait(ctx), context.Canceled)
	assert.IsType(t, nopGate{}, NewDelay(0))
}

func TestNewGate(t *testing.T) {
	assert.IsType(t, &Delay{}, New(time.Second, true))
	assert.IsType(t, &Interval{}, New(time.Second, false))
	assert.IsType(t, nopGate{}, New(0, true))
}

func TestNopGate(t *testing.T) {
	assert.IsType(t, nopGate{}, NewInterval(0))
	assert.NoError(t, Nop().Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, Nop().Wait(ctx))
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	calls := 0
	err := Retry{Attempts: 5}.Do(ctx, "search", func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("503 from upstream")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, tl.Count())
	tl.AssertContains(t, "Attempt failed")
	tl.AssertNotContains(t, "Retries exhausted")
}

func TestRetryExhausted(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	cause := stderrors.New("timeout")
	calls := 0
	err := Retry{Attempts: 5}.Do(ctx, "detail", func(context.Context) error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.Equal(t, 5, calls)
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.IsRetriesExhausted(err))

	var retryErr *errors.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, "detail", retryErr.Operation)
	assert.Equal(t, 5, retryErr.Attempts)
	tl.AssertContains(t, "Retries exhausted")
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := Retry{}.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return stderrors.New("boom")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, NoRetry.Attempts)
}

func TestRetryFixedDelay(t *testing.T) {
	calls := 0
	start := time.Now()
	_ = Retry{Attempts: 3, Delay: 20 * time.Millisecond}.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return stderrors.New("boom")
	})
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRetryCanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry{Attempts: 5, Delay: time.Hour}.Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return stderrors.New("boom")
	})

	assert.Equal(t, 1, calls)
	assert.True(t, errors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.IsRetriesExhausted(err))
}
