// Package report builds the downloadable incident export.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/pipeline"
)

//go:embed schema/report.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// GeneratorName identifies the function that reproduces the dataset.
const GeneratorName = "generator.Generate"

type Reproduction struct {
	Seed      int64  `json:"seed"`
	Generator string `json:"generator"`
	Call      string `json:"call"`
}

type Summary struct {
	TotalTransactions      int     `json:"total_transactions"`
	AuthorizedCount        int     `json:"authorized_count"`
	DeclinedCount          int     `json:"declined_count"`
	CurrentAuthRate        float64 `json:"current_auth_rate"`
	EstimatedRevenueImpact float64 `json:"estimated_revenue_impact"`
	TotalAmount            string  `json:"total_amount"`
	DeclinedAmount         string  `json:"declined_amount"`
}

type ProcessorPerformance struct {
	ProcessorID domain.ProcessorID `json:"processor_id"`
	Volume      int                `json:"volume"`
	Authorized  int                `json:"authorized"`
	AuthRate    float64            `json:"auth_rate"`
}

type Report struct {
	ID                    string                 `json:"id"`
	ExportedAt            time.Time              `json:"exported_at"`
	SimulatedTimeAtExport time.Time              `json:"simulated_time_at_export"`
	DataReproduction      Reproduction           `json:"data_reproduction"`
	Incident              domain.Incident        `json:"incident"`
	Summary               Summary                `json:"summary"`
	ProcessorPerformance  []ProcessorPerformance `json:"processor_performance"`
	ActiveFilters         domain.FilterSelection `json:"active_filters"`
	AlertThreshold        float64                `json:"alert_threshold"`
}

// Input is everything a report is derived from.
type Input struct {
	Transactions   []domain.Transaction
	Incident       domain.Incident
	Seed           int64
	SimulatedTime  time.Time
	Filters        domain.FilterSelection
	AlertThreshold float64
	ExportedAt     time.Time
}

// Build summarizes every transaction visible at the simulated time. The
// active filters are recorded but do not narrow the summary.
func Build(in Input) *Report {
	visible := pipeline.Revealed(in.Transactions, in.SimulatedTime)
	metrics := pipeline.ComputeMetrics(visible, in.SimulatedTime, in.Incident.StartTime, in.Incident.BaselineAuthRate)

	total, declined := decimal.Zero, decimal.Zero
	for _, tx := range visible {
		amount := decimal.NewFromFloat(tx.Amount)
		total = total.Add(amount)
		if !tx.Authorized {
			declined = declined.Add(amount)
		}
	}

	summaries := pipeline.ProcessorSummaries(visible, in.AlertThreshold)
	performance := make([]ProcessorPerformance, 0, len(summaries))
	for _, s := range summaries {
		performance = append(performance, ProcessorPerformance{
			ProcessorID: s.ProcessorID,
			Volume:      s.Volume,
			Authorized:  authorizedFor(visible, s.ProcessorID),
			AuthRate:    s.AuthRate,
		})
	}

	incident := in.Incident
	incident.Events = append([]domain.RoutingEvent{}, in.Incident.Events...)

	return &Report{
		ID:                    uuid.New().String(),
		ExportedAt:            in.ExportedAt.UTC(),
		SimulatedTimeAtExport: in.SimulatedTime.UTC(),
		DataReproduction: Reproduction{
			Seed:      in.Seed,
			Generator: GeneratorName,
			Call:      fmt.Sprintf("%s(%d)", GeneratorName, in.Seed),
		},
		Incident: incident,
		Summary: Summary{
			TotalTransactions:      metrics.TotalTransactions,
			AuthorizedCount:        metrics.AuthorizedCount,
			DeclinedCount:          metrics.DeclinedCount,
			CurrentAuthRate:        metrics.CurrentAuthRate,
			EstimatedRevenueImpact: metrics.EstimatedRevenueImpact,
			TotalAmount:            total.StringFixed(2),
			DeclinedAmount:         declined.StringFixed(2),
		},
		ProcessorPerformance: performance,
		ActiveFilters:        in.Filters.Clone(),
		AlertThreshold:       in.AlertThreshold,
	}
}

func authorizedFor(txs []domain.Transaction, pid domain.ProcessorID) int {
	n := 0
	for _, tx := range txs {
		if tx.ProcessorID == pid && tx.Authorized {
			n++
		}
	}
	return n
}

// Validate checks r against the embedded export schema.
func Validate(r *Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("%w: %s", domain.ErrReportInvalid, strings.Join(issues, "; "))
}

// FileName returns the attachment name for a report exported at t.
func FileName(t time.Time) string {
	return "incident-report-" + t.UTC().Format("2006-01-02T15-04-05") + ".json"
}
