package simulation

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
)

// InitialOffset is how far past the incident start a new replay clock begins.
const InitialOffset = 30 * time.Minute

// Clock is the replay clock. It loops over [windowStart, windowEnd): any
// advance that reaches windowEnd lands back on windowStart exactly.
//
// Safe for concurrent use. Every method returns the state it left behind so
// callers never need a second, possibly torn, read.
type Clock struct {
	mu          sync.RWMutex
	current     time.Time
	running     bool
	speed       float64
	windowStart time.Time
	windowEnd   time.Time
}

// NewClock creates a running clock at initial with speed 1.
func NewClock(windowStart, windowEnd, initial time.Time) *Clock {
	return &Clock{
		current:     initial,
		running:     true,
		speed:       1,
		windowStart: windowStart,
		windowEnd:   windowEnd,
	}
}

// NewIncidentClock returns the clock for the generated scenario window.
func NewIncidentClock() *Clock {
	return NewClock(generator.BaseDate, generator.WindowEnd, generator.IncidentStart.Add(InitialOffset))
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Clock) Snapshot() domain.ClockState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

// Advance moves the clock forward by minutes scaled by the current speed.
func (c *Clock) Advance(minutes float64) domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceLocked(minutes)
	return c.stateLocked()
}

// AdvanceIfRunning advances only while the clock is running. The running
// check and the advance happen under one lock, so a pause is never raced.
func (c *Clock) AdvanceIfRunning(minutes float64) (domain.ClockState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.stateLocked(), false
	}
	c.advanceLocked(minutes)
	return c.stateLocked(), true
}

func (c *Clock) ToggleRunning() domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = !c.running
	return c.stateLocked()
}

func (c *Clock) SetRunning(running bool) domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = running
	return c.stateLocked()
}

// SetSpeed replaces the multiplier used by the next Advance.
func (c *Clock) SetSpeed(speed float64) (domain.ClockState, error) {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return c.Snapshot(), fmt.Errorf("%w: %v", domain.ErrInvalidSpeed, speed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	return c.stateLocked(), nil
}

// Reset rewinds to the window start and resumes playback.
func (c *Clock) Reset() domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.windowStart
	c.running = true
	return c.stateLocked()
}

// Seek jumps to target clamped into the window, inclusive at both ends.
func (c *Clock) Seek(target time.Time) domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case target.Before(c.windowStart):
		c.current = c.windowStart
	case target.After(c.windowEnd):
		c.current = c.windowEnd
	default:
		c.current = target
	}
	return c.stateLocked()
}

func (c *Clock) advanceLocked(minutes float64) {
	step := time.Duration(minutes * c.speed * float64(time.Minute))
	next := c.current.Add(step)
	if !next.Before(c.windowEnd) {
		next = c.windowStart
	}
	c.current = next
}

func (c *Clock) stateLocked() domain.ClockState {
	return domain.ClockState{
		CurrentTime: c.current,
		Running:     c.running,
		Speed:       c.speed,
		WindowStart: c.windowStart,
		WindowEnd:   c.windowEnd,
	}
}
