package pipeline

import (
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
)

// AvgTicketUSD prices every declined transaction in the revenue impact estimate.
const AvgTicketUSD = 65

// ComputeMetrics returns the KPI figures for txs. Every field is finite; an
// empty input yields zero rates and a zero delta while the duration still
// tracks now.
func ComputeMetrics(txs []domain.Transaction, now, incidentStart time.Time, baselineAuthRate float64) domain.IncidentMetrics {
	m := domain.IncidentMetrics{
		BaselineAuthRate:   baselineAuthRate,
		IncidentDurationMs: durationMs(now, incidentStart),
	}
	if len(txs) == 0 {
		return m
	}

	for _, tx := range txs {
		if tx.Authorized {
			m.AuthorizedCount++
		}
	}
	m.TotalTransactions = len(txs)
	m.DeclinedCount = m.TotalTransactions - m.AuthorizedCount
	m.CurrentAuthRate = ratio(m.AuthorizedCount, m.TotalTransactions)
	m.AuthRateDelta = m.CurrentAuthRate - baselineAuthRate
	m.EstimatedRevenueImpact = -float64(m.DeclinedCount * AvgTicketUSD)

	return m
}

func durationMs(now, start time.Time) int64 {
	d := now.Sub(start).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}

// AlertLevelFor classifies an auth rate against the alert threshold.
func AlertLevelFor(authRate, threshold float64) domain.AlertLevel {
	switch {
	case authRate < threshold*0.5:
		return domain.AlertLevelCritical
	case authRate < threshold:
		return domain.AlertLevelWarning
	default:
		return domain.AlertLevelNormal
	}
}

// ProcessorSummaries aggregates txs per processor in display order. A
// processor whose latest transaction reports it down is always critical.
func ProcessorSummaries(txs []domain.Transaction, threshold float64) []domain.ProcessorSummary {
	type tally struct {
		volume     int
		authorized int
		status     domain.ProcessorStatus
	}
	tallies := make(map[domain.ProcessorID]*tally, len(domain.ProcessorIDs))
	for _, pid := range domain.ProcessorIDs {
		tallies[pid] = &tally{status: domain.ProcessorStatusHealthy}
	}
	for _, tx := range txs {
		t, ok := tallies[tx.ProcessorID]
		if !ok {
			continue
		}
		t.volume++
		if tx.Authorized {
			t.authorized++
		}
		t.status = tx.ProcessorStatus
	}

	out := make([]domain.ProcessorSummary, 0, len(domain.ProcessorIDs))
	for _, pid := range domain.ProcessorIDs {
		t := tallies[pid]
		meta := domain.ProcessorMetadata[pid]
		authRate := ratio(t.authorized, t.volume)

		level := AlertLevelFor(authRate, threshold)
		if t.status == domain.ProcessorStatusDown {
			level = domain.AlertLevelCritical
		}

		out = append(out, domain.ProcessorSummary{
			ProcessorID:      pid,
			Label:            meta.Label,
			Role:             meta.Role,
			Status:           t.status,
			AuthRate:         authRate,
			BaselineAuthRate: generator.BaselineAuthRates[pid],
			Volume:           t.volume,
			VolumeShare:      ratio(t.volume, len(txs)),
			AlertLevel:       level,
		})
	}
	return out
}
