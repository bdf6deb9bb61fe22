package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const period = 100 * time.Millisecond

func waitTickers(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, n))
}

func advance(t *testing.T, fc *clockwork.FakeClock, counter *atomic.Int32, want int32) {
	t.Helper()
	fc.Advance(period)
	require.Eventually(t, func() bool { return counter.Load() == want }, time.Second, time.Millisecond)
}

func TestLoopFiresEachPeriod(t *testing.T) {
	fc := clockwork.NewFakeClock()
	loop := NewLoop(fc)
	defer loop.Cancel()

	var calls atomic.Int32
	loop.Start(period, func() bool { calls.Add(1); return true })
	waitTickers(t, fc, 1)

	for i := int32(1); i <= 3; i++ {
		advance(t, fc, &calls, i)
	}
	assert.True(t, loop.Active())
	assert.Equal(t, uint64(3), loop.Fired())
}

func TestLoopCancelStopsDelivery(t *testing.T) {
	fc := clockwork.NewFakeClock()
	loop := NewLoop(fc)

	var calls atomic.Int32
	loop.Start(period, func() bool { calls.Add(1); return true })
	waitTickers(t, fc, 1)
	advance(t, fc, &calls, 1)

	loop.Cancel()
	assert.False(t, loop.Active())
	waitTickers(t, fc, 0)

	fc.Advance(5 * period)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	loop.Cancel()
	loop.Cancel()
}

func TestLoopStartSupersedesPrevious(t *testing.T) {
	fc := clockwork.NewFakeClock()
	loop := NewLoop(fc)
	defer loop.Cancel()

	var first, second atomic.Int32
	loop.Start(period, func() bool { first.Add(1); return true })
	loop.Start(period, func() bool { second.Add(1); return true })
	waitTickers(t, fc, 1)

	advance(t, fc, &second, 1)
	advance(t, fc, &second, 2)
	assert.Equal(t, int32(0), first.Load())
}

func TestLoopEndsWhenCallbackReturnsFalse(t *testing.T) {
	fc := clockwork.NewFakeClock()
	loop := NewLoop(fc)

	var calls atomic.Int32
	loop.Start(period, func() bool { return calls.Add(1) < 2 })
	waitTickers(t, fc, 1)
	advance(t, fc, &calls, 1)
	advance(t, fc, &calls, 2)

	require.Eventually(t, func() bool { return !loop.Active() }, time.Second, time.Millisecond)
	waitTickers(t, fc, 0)
	loop.Cancel()
}

func TestLoopIgnoresInvalidStart(t *testing.T) {
	loop := NewLoop(nil)
	loop.Start(0, func() bool { return true })
	loop.Start(period, nil)
	assert.False(t, loop.Active())
	loop.Cancel()
}
