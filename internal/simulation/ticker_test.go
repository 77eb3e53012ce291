package simulation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestTicker_AdvancesClock(t *testing.T) {
	c := newTestClock(windowStart)
	var ticks atomic.Int32
	ticker := NewTicker(c, 5*time.Millisecond, 1, logger.NewNop(), func(ctx context.Context, s domain.ClockState) {
		ticks.Add(1)
	})

	assert.True(t, ticker.Start(context.Background()))
	defer ticker.Stop()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, c.Now().After(windowStart))
}

func TestTicker_StartIsIdempotent(t *testing.T) {
	c := newTestClock(windowStart)
	ticker := NewTicker(c, time.Hour, 1, logger.NewNop(), nil)

	assert.True(t, ticker.Start(context.Background()))
	assert.False(t, ticker.Start(context.Background()))
	assert.True(t, ticker.Active())

	ticker.Stop()
	assert.False(t, ticker.Active())

	ticker.Stop()
	assert.True(t, ticker.Start(context.Background()))
	ticker.Stop()
}

func TestTicker_NoTicksAfterStop(t *testing.T) {
	c := newTestClock(windowStart)
	var ticks atomic.Int32
	ticker := NewTicker(c, 2*time.Millisecond, 1, logger.NewNop(), func(ctx context.Context, s domain.ClockState) {
		ticks.Add(1)
	})

	ticker.Start(context.Background())
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, 2*time.Millisecond)
	ticker.Stop()

	stopped := ticks.Load()
	frozen := c.Now()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, stopped, ticks.Load())
	assert.Equal(t, frozen, c.Now())
}

func TestTicker_PausedClockDoesNotMove(t *testing.T) {
	c := newTestClock(windowStart)
	c.SetRunning(false)
	var ticks atomic.Int32
	ticker := NewTicker(c, 2*time.Millisecond, 1, logger.NewNop(), func(ctx context.Context, s domain.ClockState) {
		ticks.Add(1)
	})

	ticker.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	ticker.Stop()

	assert.Equal(t, int32(0), ticks.Load())
	assert.Equal(t, windowStart, c.Now())
}

func TestTicker_StopsWithParentContext(t *testing.T) {
	c := newTestClock(windowStart)
	ticker := NewTicker(c, 2*time.Millisecond, 1, logger.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	ticker.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		frozen := c.Now()
		time.Sleep(10 * time.Millisecond)
		return frozen.Equal(c.Now())
	}, time.Second, time.Millisecond)
	ticker.Stop()
}

func TestTicker_RestartsAfterParentContextEnds(t *testing.T) {
	c := newTestClock(windowStart)
	var ticks atomic.Int32
	ticker := NewTicker(c, 2*time.Millisecond, 1, logger.NewNop(), func(ctx context.Context, s domain.ClockState) {
		ticks.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, ticker.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !ticker.Active() }, time.Second, time.Millisecond)

	assert.True(t, ticker.Start(context.Background()))
	defer ticker.Stop()

	before := ticks.Load()
	assert.Eventually(t, func() bool { return ticks.Load() > before }, time.Second, 2*time.Millisecond)
}
