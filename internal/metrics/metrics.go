package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

var alertLevels = []domain.AlertLevel{
	domain.AlertLevelNormal,
	domain.AlertLevelWarning,
	domain.AlertLevelCritical,
}

// Metrics exposes the replay state as Prometheus gauges on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	simulatedTime  prometheus.Gauge
	running        prometheus.Gauge
	speed          prometheus.Gauge
	authRate       prometheus.Gauge
	authRateDelta  prometheus.Gauge
	revenueImpact  prometheus.Gauge
	transactions   prometheus.Gauge
	visibleEvents  prometheus.Gauge
	alertThreshold prometheus.Gauge

	processorAuthRate *prometheus.GaugeVec
	processorVolume   *prometheus.GaugeVec
	processorAlert    *prometheus.GaugeVec
	eventsConsumed    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		simulatedTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_simulated_time_seconds",
			Help: "Unix timestamp of the replay clock.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_running",
			Help: "1 while the replay clock is advancing.",
		}),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_speed",
			Help: "Replay speed multiplier.",
		}),
		authRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_auth_rate",
			Help: "Auth rate of the filtered transaction set.",
		}),
		authRateDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_auth_rate_delta",
			Help: "Auth rate minus the incident baseline.",
		}),
		revenueImpact: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_revenue_impact_usd",
			Help: "Estimated revenue impact of declined transactions.",
		}),
		transactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_filtered_transactions",
			Help: "Transactions in the filtered set.",
		}),
		visibleEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_visible_routing_events",
			Help: "Routing events revealed at the current replay time.",
		}),
		alertThreshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "incident_replay_alert_threshold",
			Help: "Configured auth rate alert threshold.",
		}),
		processorAuthRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "incident_replay_processor_auth_rate",
			Help: "Auth rate by processor.",
		}, []string{"processor"}),
		processorVolume: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "incident_replay_processor_volume",
			Help: "Filtered transaction volume by processor.",
		}, []string{"processor"}),
		processorAlert: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "incident_replay_processor_alert_level",
			Help: "Alert level by processor (one-hot gauge).",
		}, []string{"processor", "level"}),
		eventsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "incident_replay_events_consumed_total",
			Help: "Simulation events consumed by type.",
		}, []string{"type"}),
	}

	registry.MustRegister(
		m.simulatedTime,
		m.running,
		m.speed,
		m.authRate,
		m.authRateDelta,
		m.revenueImpact,
		m.transactions,
		m.visibleEvents,
		m.alertThreshold,
		m.processorAuthRate,
		m.processorVolume,
		m.processorAlert,
		m.eventsConsumed,
	)

	return m
}

// Observe copies an overview into the gauges.
func (m *Metrics) Observe(o *domain.Overview) {
	m.simulatedTime.Set(float64(o.Clock.CurrentTime.Unix()))
	m.running.Set(boolToFloat(o.Clock.Running))
	m.speed.Set(o.Clock.Speed)
	m.authRate.Set(o.Metrics.CurrentAuthRate)
	m.authRateDelta.Set(o.Metrics.AuthRateDelta)
	m.revenueImpact.Set(o.Metrics.EstimatedRevenueImpact)
	m.transactions.Set(float64(o.Metrics.TotalTransactions))
	m.visibleEvents.Set(float64(len(o.Events)))
	m.alertThreshold.Set(o.Settings.AlertThreshold)

	for _, p := range o.Processors {
		pid := string(p.ProcessorID)
		m.processorAuthRate.WithLabelValues(pid).Set(p.AuthRate)
		m.processorVolume.WithLabelValues(pid).Set(float64(p.Volume))
		for _, level := range alertLevels {
			m.processorAlert.WithLabelValues(pid, string(level)).Set(boolToFloat(level == p.AlertLevel))
		}
	}
}

func (m *Metrics) IncEvent(eventType string) {
	m.eventsConsumed.WithLabelValues(eventType).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
