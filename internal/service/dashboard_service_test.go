package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/internal/storage"
	"github.com/grachmannico95/incident-replay/mocks"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

var incidentStart = time.Date(2024, 11, 15, 21, 0, 0, 0, time.UTC)

func fixtureIncident() domain.Incident {
	return domain.Incident{
		ID:               "incident-test",
		StartTime:        incidentStart,
		BaselineAuthRate: 0.94,
	}
}

func fixtureTransactions() []domain.Transaction {
	mk := func(id string, offset time.Duration, pid domain.ProcessorID, authorized bool) domain.Transaction {
		return domain.Transaction{
			ID:              id,
			Timestamp:       incidentStart.Add(offset),
			ProcessorID:     pid,
			ProcessorStatus: domain.ProcessorStatusHealthy,
			Country:         domain.CountryBR,
			PaymentMethod:   domain.PaymentMethodCreditCard,
			Amount:          80,
			Authorized:      authorized,
		}
	}
	return []domain.Transaction{
		mk("before", -5*time.Minute, domain.ProcessorA, true),
		mk("t1", 1*time.Minute, domain.ProcessorA, false),
		mk("t2", 2*time.Minute, domain.ProcessorB, true),
		mk("t3", 3*time.Minute, domain.ProcessorC, true),
		mk("t4", 4*time.Minute, domain.ProcessorA, false),
		mk("future", 30*time.Minute, domain.ProcessorB, true),
	}
}

func newMockedDashboard(t *testing.T, now time.Time) (DashboardService, *mocks.MockDataset, *filters.State) {
	dataset := mocks.NewMockDataset(t)
	dataset.EXPECT().Incident(mock.Anything).Return(fixtureIncident()).Maybe()
	dataset.EXPECT().Transactions(mock.Anything).Return(fixtureTransactions()).Maybe()

	clock := simulation.NewClock(incidentStart.Add(-time.Hour), incidentStart.Add(3*time.Hour), now)
	state := filters.NewState()
	return NewDashboardService(dataset, clock, state, logger.NewNop()), dataset, state
}

func TestNewDashboardService(t *testing.T) {
	svc, _, _ := newMockedDashboard(t, incidentStart)

	assert.NotNil(t, svc)
	assert.Implements(t, (*DashboardService)(nil), svc)
}

func TestDashboardService_Overview(t *testing.T) {
	now := incidentStart.Add(10 * time.Minute)
	svc, dataset, _ := newMockedDashboard(t, now)
	dataset.EXPECT().EventsUntil(mock.Anything, now).Return([]domain.RoutingEvent{{ID: "evt-1"}}).Once()

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, now, overview.Clock.CurrentTime)
	assert.Equal(t, 4, overview.Metrics.TotalTransactions)
	assert.Equal(t, 2, overview.Metrics.DeclinedCount)
	assert.InDelta(t, 0.5, overview.Metrics.CurrentAuthRate, 1e-9)
	assert.Equal(t, "50.0%", overview.Formatted.CurrentAuthRate)
	assert.Equal(t, "-44.0pp", overview.Formatted.AuthRateDelta)
	assert.Equal(t, "-$130.00", overview.Formatted.EstimatedRevenueImpact)
	assert.Equal(t, "10m 0s", overview.Formatted.IncidentDuration)
	assert.Equal(t, domain.AlertLevelWarning, overview.AlertLevel)
	assert.Len(t, overview.Processors, 3)
	assert.Len(t, overview.Buckets, 1)
	assert.Len(t, overview.Events, 1)
	assert.Equal(t, domain.DefaultFilterSelection(), overview.Filters)
}

func TestDashboardService_OverviewCancelledContext(t *testing.T) {
	svc, _, _ := newMockedDashboard(t, incidentStart)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Overview(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboardService_EmptyWindowIsNormal(t *testing.T) {
	now := incidentStart.Add(-time.Minute)
	svc, dataset, _ := newMockedDashboard(t, now)
	dataset.EXPECT().EventsUntil(mock.Anything, now).Return([]domain.RoutingEvent{}).Once()

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, overview.Metrics.TotalTransactions)
	assert.Equal(t, domain.AlertLevelNormal, overview.AlertLevel)
	assert.Equal(t, "0s", overview.Formatted.IncidentDuration)
	assert.Empty(t, overview.Buckets)
}

func TestDashboardService_TransactionsLimit(t *testing.T) {
	svc, _, _ := newMockedDashboard(t, incidentStart.Add(10*time.Minute))

	all := svc.Transactions(context.Background(), 0)
	recent := svc.Transactions(context.Background(), 2)

	assert.Len(t, all, 4)
	require.Len(t, recent, 2)
	assert.Equal(t, "t3", recent[0].ID)
	assert.Equal(t, "t4", recent[1].ID)
}

func TestDashboardService_FiltersApply(t *testing.T) {
	svc, _, state := newMockedDashboard(t, incidentStart.Add(10*time.Minute))
	_, err := state.Apply(domain.FilterPatch{Countries: []domain.Country{domain.CountryMX}})
	require.NoError(t, err)

	assert.Empty(t, svc.Transactions(context.Background(), 0))
	assert.Empty(t, svc.CountryBreakdown(context.Background()))
	assert.Empty(t, svc.MethodBreakdown(context.Background()))

	m, formatted := svc.Metrics(context.Background())
	assert.Equal(t, 0, m.TotalTransactions)
	assert.Equal(t, "+0.0pp", formatted.AuthRateDelta)
}

func TestDashboardService_ProcessorsUseThreshold(t *testing.T) {
	svc, _, state := newMockedDashboard(t, incidentStart.Add(10*time.Minute))

	procs := svc.Processors(context.Background())
	require.Len(t, procs, 3)
	assert.Equal(t, domain.AlertLevelCritical, procs[0].AlertLevel)

	_, err := state.SetAlertThreshold(0)
	require.NoError(t, err)
	procs = svc.Processors(context.Background())
	assert.Equal(t, domain.AlertLevelNormal, procs[0].AlertLevel)
}

func TestDashboardService_Dataset(t *testing.T) {
	svc, _, _ := newMockedDashboard(t, incidentStart)

	data, err := svc.Dataset(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.Seed)
	assert.Len(t, data.Transactions, 1220)

	_, err = svc.Dataset(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)

	_, err = svc.Dataset(context.Background(), 1<<33)
	assert.ErrorIs(t, err, domain.ErrInvalidSeed)
}

func TestDashboardService_ExportWithGeneratedData(t *testing.T) {
	store := storage.Load(generator.DefaultSeed)
	clock := simulation.NewIncidentClock()
	svc := NewDashboardService(store, clock, filters.NewState(), logger.NewNop())

	r, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, clock.Now(), r.SimulatedTimeAtExport)
	assert.Equal(t, int64(42), r.DataReproduction.Seed)
	assert.Positive(t, r.Summary.TotalTransactions)
}

func TestDashboardService_EventsFollowClock(t *testing.T) {
	store := storage.Load(generator.DefaultSeed)
	clock := simulation.NewIncidentClock()
	svc := NewDashboardService(store, clock, filters.NewState(), logger.NewNop())

	assert.Len(t, svc.Events(context.Background()), 5)

	clock.Seek(generator.WindowEnd)
	assert.Len(t, svc.Events(context.Background()), 8)

	assert.Equal(t, generator.IncidentID, svc.Incident(context.Background()).ID)
}
