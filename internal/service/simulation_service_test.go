package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/eventbus"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/mocks"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

var (
	simStart = time.Date(2024, 11, 15, 20, 0, 0, 0, time.UTC)
	simEnd   = simStart.Add(4 * time.Hour)
)

func newSimulationService(t *testing.T) (SimulationService, *mocks.MockEventBus, *simulation.Clock) {
	bus := mocks.NewMockEventBus(t)
	clock := simulation.NewClock(simStart, simEnd, simStart.Add(90*time.Minute))
	return NewSimulationService(clock, filters.NewState(), bus, logger.NewNop()), bus, clock
}

func expectStateChanged(bus *mocks.MockEventBus, action string) {
	bus.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e eventbus.Event) bool {
			payload, ok := e.Payload.(eventbus.StateChangedEvent)
			return ok && e.Type == eventbus.EventTypeStateChanged && payload.Action == action && e.ID != ""
		})).
		Return(nil).
		Once()
}

func TestSimulationService_ToggleRunning(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionToggle)

	state := svc.ToggleRunning(context.Background())

	assert.False(t, state.Running)
	assert.Equal(t, simStart.Add(90*time.Minute), state.CurrentTime)
}

func TestSimulationService_Reset(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionReset)

	state := svc.Reset(context.Background())

	assert.Equal(t, simStart, state.CurrentTime)
	assert.True(t, state.Running)
}

func TestSimulationService_Advance(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionAdvance)

	state, err := svc.Advance(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, simStart.Add(95*time.Minute), state.CurrentTime)
}

func TestSimulationService_AdvanceRejectsNonPositive(t *testing.T) {
	svc, _, clock := newSimulationService(t)
	before := clock.Now()

	for _, minutes := range []float64{0, -3} {
		_, err := svc.Advance(context.Background(), minutes)
		assert.ErrorIs(t, err, domain.ErrInvalidTime)
		assert.True(t, domain.IsValidation(err))
	}
	assert.Equal(t, before, clock.Now())
}

func TestSimulationService_Seek(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionSeek)

	state, err := svc.Seek(context.Background(), simEnd.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, simEnd, state.CurrentTime)

	_, err = svc.Seek(context.Background(), time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
}

func TestSimulationService_SetSpeed(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionSpeed)

	state, err := svc.SetSpeed(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, state.Speed)

	_, err = svc.SetSpeed(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSpeed)
}

func TestSimulationService_Filters(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionFiltersApply)
	expectStateChanged(bus, ActionToggleCountry)
	expectStateChanged(bus, ActionToggleMethod)
	expectStateChanged(bus, ActionFiltersReset)
	ctx := context.Background()

	period := domain.TimePeriod1Hour
	sel, err := svc.ApplyFilters(ctx, domain.FilterPatch{TimePeriod: &period})
	require.NoError(t, err)
	assert.Equal(t, domain.TimePeriod1Hour, sel.TimePeriod)

	sel, err = svc.ToggleCountry(ctx, domain.CountryMX)
	require.NoError(t, err)
	assert.NotContains(t, sel.Countries, domain.CountryMX)

	sel, err = svc.TogglePaymentMethod(ctx, domain.PaymentMethodOxxo)
	require.NoError(t, err)
	assert.NotContains(t, sel.PaymentMethods, domain.PaymentMethodOxxo)

	assert.Equal(t, sel, svc.Filters(ctx))

	sel = svc.ResetFilters(ctx)
	assert.Equal(t, domain.DefaultFilterSelection(), sel)
}

func TestSimulationService_RejectedFilterDoesNotPublish(t *testing.T) {
	svc, bus, _ := newSimulationService(t)

	_, err := svc.ApplyFilters(context.Background(), domain.FilterPatch{Countries: []domain.Country{}})
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = svc.ToggleCountry(context.Background(), "AR")
	assert.ErrorIs(t, err, domain.ErrInvalidCountry)

	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSimulationService_Settings(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	expectStateChanged(bus, ActionAlertThreshold)
	expectStateChanged(bus, ActionComparisonToggle)
	ctx := context.Background()

	settings, err := svc.SetAlertThreshold(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, settings.AlertThreshold)

	settings = svc.ToggleComparisonMode(ctx)
	assert.True(t, settings.ComparisonMode)
	assert.Equal(t, settings, svc.Settings(ctx))
}

func TestSimulationService_OnTick(t *testing.T) {
	svc, bus, clock := newSimulationService(t)
	state := clock.Snapshot()
	bus.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e eventbus.Event) bool {
			payload, ok := e.Payload.(eventbus.TickEvent)
			return ok && e.Type == eventbus.EventTypeTick && payload.Clock == state
		})).
		Return(nil).
		Once()

	svc.OnTick(context.Background(), state)
}

func TestSimulationService_PublishFailureIsNotFatal(t *testing.T) {
	svc, bus, _ := newSimulationService(t)
	bus.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("bus closed")).Once()

	state := svc.Reset(context.Background())

	assert.Equal(t, simStart, state.CurrentTime)
	assert.Equal(t, simStart, svc.Clock(context.Background()).CurrentTime)
}
