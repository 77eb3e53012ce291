package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/filters"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/internal/pipeline"
	"github.com/grachmannico95/incident-replay/internal/report"
	"github.com/grachmannico95/incident-replay/internal/simulation"
	"github.com/grachmannico95/incident-replay/pkg/format"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// DashboardService answers read queries. Every call reads the clock once and
// the filters and settings together under one lock, then derives everything
// from those values.
type DashboardService interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	Transactions(ctx context.Context, limit int) []domain.Transaction
	Buckets(ctx context.Context) []domain.TimeBucket
	Metrics(ctx context.Context) (domain.IncidentMetrics, domain.FormattedMetrics)
	Processors(ctx context.Context) []domain.ProcessorSummary
	CountryBreakdown(ctx context.Context) []domain.CountryBreakdown
	MethodBreakdown(ctx context.Context) []domain.MethodBreakdown
	Events(ctx context.Context) []domain.RoutingEvent
	Incident(ctx context.Context) domain.Incident
	Export(ctx context.Context) (*report.Report, error)
	Dataset(ctx context.Context, seed int64) (domain.GeneratedData, error)
}

type dashboardService struct {
	dataset domain.Dataset
	clock   *simulation.Clock
	state   *filters.State
	logger  *logger.Logger
	now     func() time.Time
}

func NewDashboardService(dataset domain.Dataset, clock *simulation.Clock, state *filters.State, log *logger.Logger) DashboardService {
	return &dashboardService{
		dataset: dataset,
		clock:   clock,
		state:   state,
		logger:  log,
		now:     time.Now,
	}
}

type snapshot struct {
	clock     domain.ClockState
	selection domain.FilterSelection
	settings  domain.Settings
	incident  domain.Incident
	filtered  []domain.Transaction
}

func (s *dashboardService) snapshot(ctx context.Context) (context.Context, snapshot) {
	selection, settings := s.state.Snapshot()
	snap := snapshot{
		clock:     s.clock.Snapshot(),
		selection: selection,
		settings:  settings,
		incident:  s.dataset.Incident(ctx),
	}
	snap.filtered = pipeline.FilterTransactions(
		s.dataset.Transactions(ctx),
		snap.clock.CurrentTime,
		snap.selection,
		snap.incident.StartTime,
	)
	return logger.WithSimulatedTime(ctx, snap.clock.CurrentTime), snap
}

func (snap snapshot) metrics() domain.IncidentMetrics {
	return pipeline.ComputeMetrics(snap.filtered, snap.clock.CurrentTime, snap.incident.StartTime, snap.incident.BaselineAuthRate)
}

func formatMetrics(m domain.IncidentMetrics) domain.FormattedMetrics {
	return domain.FormattedMetrics{
		CurrentAuthRate:        format.Percent(m.CurrentAuthRate),
		AuthRateDelta:          format.Delta(m.AuthRateDelta),
		EstimatedRevenueImpact: format.Currency(m.EstimatedRevenueImpact),
		IncidentDuration:       format.Duration(m.IncidentDurationMs),
	}
}

// overallAlertLevel is normal while nothing is visible.
func overallAlertLevel(m domain.IncidentMetrics, threshold float64) domain.AlertLevel {
	if m.TotalTransactions == 0 {
		return domain.AlertLevelNormal
	}
	return pipeline.AlertLevelFor(m.CurrentAuthRate, threshold)
}

func (s *dashboardService) Overview(ctx context.Context) (*domain.Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, snap := s.snapshot(ctx)
	m := snap.metrics()

	overview := &domain.Overview{
		Clock:      snap.clock,
		Filters:    snap.selection,
		Settings:   snap.settings,
		Metrics:    m,
		Formatted:  formatMetrics(m),
		AlertLevel: overallAlertLevel(m, snap.settings.AlertThreshold),
		Processors: pipeline.ProcessorSummaries(snap.filtered, snap.settings.AlertThreshold),
		Countries:  pipeline.CountryBreakdown(snap.filtered),
		Methods:    pipeline.MethodBreakdown(snap.filtered),
		Buckets:    pipeline.Bucketize(snap.filtered),
		Events:     s.dataset.EventsUntil(ctx, snap.clock.CurrentTime),
	}

	s.logger.Debug(ctx, "Overview computed",
		"filtered", len(snap.filtered),
		"buckets", len(overview.Buckets),
		"alert_level", overview.AlertLevel,
	)

	return overview, nil
}

// Transactions returns the filtered set; a positive limit keeps only the most
// recent limit rows.
func (s *dashboardService) Transactions(ctx context.Context, limit int) []domain.Transaction {
	_, snap := s.snapshot(ctx)
	if limit > 0 && limit < len(snap.filtered) {
		return snap.filtered[len(snap.filtered)-limit:]
	}
	return snap.filtered
}

func (s *dashboardService) Buckets(ctx context.Context) []domain.TimeBucket {
	_, snap := s.snapshot(ctx)
	return pipeline.Bucketize(snap.filtered)
}

func (s *dashboardService) Metrics(ctx context.Context) (domain.IncidentMetrics, domain.FormattedMetrics) {
	_, snap := s.snapshot(ctx)
	m := snap.metrics()
	return m, formatMetrics(m)
}

func (s *dashboardService) Processors(ctx context.Context) []domain.ProcessorSummary {
	_, snap := s.snapshot(ctx)
	return pipeline.ProcessorSummaries(snap.filtered, snap.settings.AlertThreshold)
}

func (s *dashboardService) CountryBreakdown(ctx context.Context) []domain.CountryBreakdown {
	_, snap := s.snapshot(ctx)
	return pipeline.CountryBreakdown(snap.filtered)
}

func (s *dashboardService) MethodBreakdown(ctx context.Context) []domain.MethodBreakdown {
	_, snap := s.snapshot(ctx)
	return pipeline.MethodBreakdown(snap.filtered)
}

func (s *dashboardService) Events(ctx context.Context) []domain.RoutingEvent {
	return s.dataset.EventsUntil(ctx, s.clock.Now())
}

func (s *dashboardService) Incident(ctx context.Context) domain.Incident {
	return s.dataset.Incident(ctx)
}

func (s *dashboardService) Export(ctx context.Context) (*report.Report, error) {
	clock := s.clock.Snapshot()
	selection, settings := s.state.Snapshot()
	ctx = logger.WithSimulatedTime(ctx, clock.CurrentTime)

	r := report.Build(report.Input{
		Transactions:   s.dataset.Transactions(ctx),
		Incident:       s.dataset.Incident(ctx),
		Seed:           s.dataset.Seed(),
		SimulatedTime:  clock.CurrentTime,
		Filters:        selection,
		AlertThreshold: settings.AlertThreshold,
		ExportedAt:     s.now(),
	})

	if err := report.Validate(r); err != nil {
		s.logger.Error(ctx, "Export failed validation",
			"report_id", r.ID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info(ctx, "Report exported",
		"report_id", r.ID,
		"transactions", r.Summary.TotalTransactions,
	)
	return r, nil
}

// Dataset regenerates the scenario for seed. Seeds must fit the 32-bit
// generator state.
func (s *dashboardService) Dataset(ctx context.Context, seed int64) (domain.GeneratedData, error) {
	if seed < 0 || seed > math.MaxUint32 {
		return domain.GeneratedData{}, fmt.Errorf("%w: %d", domain.ErrInvalidSeed, seed)
	}

	s.logger.Info(ctx, "Generating dataset", "seed", seed)
	return generator.Generate(seed), nil
}
