package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/eventbus"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// Action names carried by state_changed events.
const (
	ActionToggle           = "simulation.toggle"
	ActionReset            = "simulation.reset"
	ActionAdvance          = "simulation.advance"
	ActionSeek             = "simulation.seek"
	ActionSpeed            = "simulation.speed"
	ActionFiltersApply     = "filters.apply"
	ActionFiltersReset     = "filters.reset"
	ActionToggleCountry    = "filters.toggle_country"
	ActionToggleMethod     = "filters.toggle_method"
	ActionAlertThreshold   = "settings.alert_threshold"
	ActionComparisonToggle = "settings.comparison_toggle"
)

// SimulationService performs the named clock, filter and settings actions
// and announces each change on the event bus.
type SimulationService interface {
	Clock(ctx context.Context) domain.ClockState
	ToggleRunning(ctx context.Context) domain.ClockState
	Reset(ctx context.Context) domain.ClockState
	Advance(ctx context.Context, minutes float64) (domain.ClockState, error)
	Seek(ctx context.Context, target time.Time) (domain.ClockState, error)
	SetSpeed(ctx context.Context, speed float64) (domain.ClockState, error)

	Filters(ctx context.Context) domain.FilterSelection
	ApplyFilters(ctx context.Context, patch domain.FilterPatch) (domain.FilterSelection, error)
	ToggleCountry(ctx context.Context, country domain.Country) (domain.FilterSelection, error)
	TogglePaymentMethod(ctx context.Context, method domain.PaymentMethod) (domain.FilterSelection, error)
	ResetFilters(ctx context.Context) domain.FilterSelection

	Settings(ctx context.Context) domain.Settings
	SetAlertThreshold(ctx context.Context, threshold float64) (domain.Settings, error)
	ToggleComparisonMode(ctx context.Context) domain.Settings

	// OnTick publishes a tick event. It is the ticker's callback.
	OnTick(ctx context.Context, state domain.ClockState)
}

type simulationService struct {
	clock  *simulation.Clock
	state  *filters.State
	bus    eventbus.EventBus
	logger *logger.Logger
}

func NewSimulationService(clock *simulation.Clock, state *filters.State, bus eventbus.EventBus, log *logger.Logger) SimulationService {
	return &simulationService{
		clock:  clock,
		state:  state,
		bus:    bus,
		logger: log,
	}
}

func (s *simulationService) publish(ctx context.Context, eventType eventbus.EventType, payload interface{}) {
	event := eventbus.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event",
			"event_type", eventType,
			"error", err,
		)
	}
}

func (s *simulationService) changed(ctx context.Context, action string) {
	clock := s.clock.Snapshot()
	ctx = logger.WithSimulatedTime(ctx, clock.CurrentTime)

	s.logger.Info(ctx, "State changed", "action", action)
	s.publish(ctx, eventbus.EventTypeStateChanged, eventbus.StateChangedEvent{
		Action: action,
		Clock:  clock,
	})
}

func (s *simulationService) OnTick(ctx context.Context, state domain.ClockState) {
	s.publish(ctx, eventbus.EventTypeTick, eventbus.TickEvent{Clock: state})
}

func (s *simulationService) Clock(ctx context.Context) domain.ClockState {
	return s.clock.Snapshot()
}

func (s *simulationService) ToggleRunning(ctx context.Context) domain.ClockState {
	state := s.clock.ToggleRunning()
	s.changed(ctx, ActionToggle)
	return state
}

func (s *simulationService) Reset(ctx context.Context) domain.ClockState {
	state := s.clock.Reset()
	s.changed(ctx, ActionReset)
	return state
}

func (s *simulationService) Advance(ctx context.Context, minutes float64) (domain.ClockState, error) {
	if minutes <= 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return s.clock.Snapshot(), fmt.Errorf("%w: advance by %v minutes", domain.ErrInvalidTime, minutes)
	}

	state := s.clock.Advance(minutes)
	s.changed(ctx, ActionAdvance)
	return state, nil
}

func (s *simulationService) Seek(ctx context.Context, target time.Time) (domain.ClockState, error) {
	if target.IsZero() {
		return s.clock.Snapshot(), fmt.Errorf("%w: missing seek target", domain.ErrInvalidTime)
	}

	state := s.clock.Seek(target)
	s.changed(ctx, ActionSeek)
	return state, nil
}

func (s *simulationService) SetSpeed(ctx context.Context, speed float64) (domain.ClockState, error) {
	state, err := s.clock.SetSpeed(speed)
	if err != nil {
		s.logger.Warn(ctx, "Rejected speed change", "speed", speed)
		return state, err
	}

	s.changed(ctx, ActionSpeed)
	return state, nil
}

func (s *simulationService) Filters(ctx context.Context) domain.FilterSelection {
	return s.state.Selection()
}

func (s *simulationService) ApplyFilters(ctx context.Context, patch domain.FilterPatch) (domain.FilterSelection, error) {
	sel, err := s.state.Apply(patch)
	if err != nil {
		s.logger.Warn(ctx, "Rejected filter update", "error", err)
		return sel, err
	}

	s.changed(ctx, ActionFiltersApply)
	return sel, nil
}

func (s *simulationService) ToggleCountry(ctx context.Context, country domain.Country) (domain.FilterSelection, error) {
	sel, err := s.state.ToggleCountry(country)
	if err != nil {
		return sel, err
	}

	s.changed(ctx, ActionToggleCountry)
	return sel, nil
}

func (s *simulationService) TogglePaymentMethod(ctx context.Context, method domain.PaymentMethod) (domain.FilterSelection, error) {
	sel, err := s.state.TogglePaymentMethod(method)
	if err != nil {
		return sel, err
	}

	s.changed(ctx, ActionToggleMethod)
	return sel, nil
}

func (s *simulationService) ResetFilters(ctx context.Context) domain.FilterSelection {
	sel := s.state.Reset()
	s.changed(ctx, ActionFiltersReset)
	return sel
}

func (s *simulationService) Settings(ctx context.Context) domain.Settings {
	return s.state.Settings()
}

func (s *simulationService) SetAlertThreshold(ctx context.Context, threshold float64) (domain.Settings, error) {
	settings, err := s.state.SetAlertThreshold(threshold)
	if err != nil {
		return settings, err
	}

	s.changed(ctx, ActionAlertThreshold)
	return settings, nil
}

func (s *simulationService) ToggleComparisonMode(ctx context.Context) domain.Settings {
	settings := s.state.ToggleComparisonMode()
	s.changed(ctx, ActionComparisonToggle)
	return settings
}
