package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// TickFunc is called after every tick that moved the clock.
type TickFunc func(ctx context.Context, state domain.ClockState)

// Ticker advances a Clock on a fixed wall-clock interval. At most one timer
// goroutine is active per Ticker no matter how often Start is called.
type Ticker struct {
	clock          *Clock
	interval       time.Duration
	minutesPerTick float64
	onTick         TickFunc
	logger         *logger.Logger

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

const DefaultTickInterval = 3 * time.Second

// NewTicker returns a stopped ticker. A non-positive interval falls back to
// DefaultTickInterval.
func NewTicker(clock *Clock, interval time.Duration, minutesPerTick float64, log *logger.Logger, onTick TickFunc) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{
		clock:          clock,
		interval:       interval,
		minutesPerTick: minutesPerTick,
		onTick:         onTick,
		logger:         log,
	}
}

// Start launches the timer goroutine. It returns false, doing nothing, when
// the ticker is already active.
func (t *Ticker) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.active = true

	go t.run(runCtx, t.done)

	t.logger.Info(ctx, "Simulation ticker started",
		"interval", t.interval.String(),
		"minutes_per_tick", t.minutesPerTick,
	)
	return true
}

// Stop cancels the timer and waits for the goroutine to exit. No tick fires
// after Stop returns.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	cancel, done := t.cancel, t.done
	t.active = false
	t.cancel = nil
	t.mu.Unlock()

	cancel()
	<-done

	t.logger.Info(context.Background(), "Simulation ticker stopped")
}

func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// run exits when Stop cancels it or the parent context ends. In the latter
// case the ticker is marked inactive so it can be started again.
func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer func() {
		t.mu.Lock()
		if t.done == done && t.active {
			t.active = false
			t.cancel()
			t.cancel = nil
		}
		t.mu.Unlock()
		close(done)
	}()

	timer := time.NewTicker(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			state, moved := t.clock.AdvanceIfRunning(t.minutesPerTick)
			if !moved {
				continue
			}

			tickCtx := logger.WithSimulatedTime(ctx, state.CurrentTime)
			t.logger.Debug(tickCtx, "Simulation tick", "speed", state.Speed)

			if t.onTick != nil {
				t.onTick(tickCtx, state)
			}
		}
	}
}
