package generator

import (
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

// DefaultSeed reproduces the canonical dataset.
const DefaultSeed int64 = 42

const (
	IncidentID              = "incident-vitashop-001"
	IncidentStartOffset     = 60 * time.Minute
	WindowLength            = 240 * time.Minute
	OverallBaselineAuthRate = 0.94

	baselineHours       = 24
	baselineTxPerMinute = 5
	authJitterSpan      = 0.06
	amountVarianceFloor = 0.7
	amountVarianceSpan  = 0.6
)

// BaseDate is 17:00 BRT on the scenario day; every offset is relative to it.
var BaseDate = time.Date(2024, time.November, 15, 17, 0, 0, 0, time.FixedZone("BRT", -3*60*60)).UTC()

// IncidentStart is the moment the primary processor starts degrading.
var IncidentStart = BaseDate.Add(IncidentStartOffset)

// WindowEnd is the end of the replay window.
var WindowEnd = BaseDate.Add(WindowLength)

// MinutesAfterBase returns BaseDate shifted by a (possibly fractional) minute offset.
func MinutesAfterBase(minutes float64) time.Time {
	return BaseDate.Add(time.Duration(minutes * float64(time.Minute)))
}

// PhaseConfig drives one generation phase. Traffic weights sum to 1.
type PhaseConfig struct {
	Phase           domain.Phase
	StartMin        int
	EndMin          int
	TxPerMinute     float64
	Traffic         map[domain.ProcessorID]float64
	AuthRate        map[domain.ProcessorID]float64
	ProcessorStatus map[domain.ProcessorID]domain.ProcessorStatus
}

func (p PhaseConfig) durationMinutes() int {
	return p.EndMin - p.StartMin
}

// Phases is the fixed incident timeline, in generation order.
var Phases = []PhaseConfig{
	{
		Phase:       domain.PhasePreIncident,
		StartMin:    0,
		EndMin:      60,
		TxPerMinute: 5,
		Traffic:     processorFloats(1.0, 0.0, 0.0),
		AuthRate:    processorFloats(0.94, 0.0, 0.0),
		ProcessorStatus: processorStatuses(
			domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy),
	},
	{
		Phase:       domain.PhaseIncidentStart,
		StartMin:    60,
		EndMin:      65,
		TxPerMinute: 6,
		Traffic:     processorFloats(0.55, 0.25, 0.20),
		AuthRate:    processorFloats(0.28, 0.82, 0.75),
		ProcessorStatus: processorStatuses(
			domain.ProcessorStatusDegraded, domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy),
	},
	{
		Phase:       domain.PhaseRerouting,
		StartMin:    65,
		EndMin:      80,
		TxPerMinute: 6,
		Traffic:     processorFloats(0.10, 0.55, 0.35),
		AuthRate:    processorFloats(0.08, 0.87, 0.79),
		ProcessorStatus: processorStatuses(
			domain.ProcessorStatusDegraded, domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy),
	},
	{
		Phase:       domain.PhaseStabilized,
		StartMin:    80,
		EndMin:      180,
		TxPerMinute: 5,
		Traffic:     processorFloats(0.0, 0.58, 0.42),
		AuthRate:    processorFloats(0.0, 0.89, 0.81),
		ProcessorStatus: processorStatuses(
			domain.ProcessorStatusDown, domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy),
	},
	{
		Phase:       domain.PhaseRecovery,
		StartMin:    180,
		EndMin:      240,
		TxPerMinute: 5,
		Traffic:     processorFloats(0.35, 0.40, 0.25),
		AuthRate:    processorFloats(0.93, 0.89, 0.81),
		ProcessorStatus: processorStatuses(
			domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy, domain.ProcessorStatusHealthy),
	},
}

// BaselineAuthRates are the historical per-processor rates used as chart overlays.
var BaselineAuthRates = map[domain.ProcessorID]float64{
	domain.ProcessorA: 0.94,
	domain.ProcessorB: 0.89,
	domain.ProcessorC: 0.81,
}

type weighted[T any] struct {
	items   []T
	weights []float64
}

var countryWeights = weighted[domain.Country]{
	items:   []domain.Country{domain.CountryBR, domain.CountryMX, domain.CountryCO},
	weights: []float64{0.50, 0.30, 0.20},
}

// Per-country method mixes; pix is BR only and oxxo is MX only.
var methodWeights = map[domain.Country]weighted[domain.PaymentMethod]{
	domain.CountryBR: {
		items:   []domain.PaymentMethod{domain.PaymentMethodPix, domain.PaymentMethodCreditCard, domain.PaymentMethodDebitCard},
		weights: []float64{0.15, 0.52, 0.33},
	},
	domain.CountryMX: {
		items:   []domain.PaymentMethod{domain.PaymentMethodOxxo, domain.PaymentMethodCreditCard, domain.PaymentMethodDebitCard},
		weights: []float64{0.20, 0.52, 0.28},
	},
	domain.CountryCO: {
		items:   []domain.PaymentMethod{domain.PaymentMethodCreditCard, domain.PaymentMethodDebitCard},
		weights: []float64{0.60, 0.40},
	},
}

// MethodWeights returns the configured method mix for a country.
func MethodWeights(c domain.Country) map[domain.PaymentMethod]float64 {
	w, ok := methodWeights[c]
	if !ok {
		return nil
	}
	out := make(map[domain.PaymentMethod]float64, len(w.items))
	for i, m := range w.items {
		out[m] = w.weights[i]
	}
	return out
}

// CountryWeights returns the configured country mix.
func CountryWeights() map[domain.Country]float64 {
	out := make(map[domain.Country]float64, len(countryWeights.items))
	for i, c := range countryWeights.items {
		out[c] = countryWeights.weights[i]
	}
	return out
}

// AverageAmount is the average ticket in USD by payment method.
var AverageAmount = map[domain.PaymentMethod]float64{
	domain.PaymentMethodCreditCard: 85,
	domain.PaymentMethodDebitCard:  52,
	domain.PaymentMethodPix:        45,
	domain.PaymentMethodOxxo:       30,
}

func processorFloats(a, b, c float64) map[domain.ProcessorID]float64 {
	return map[domain.ProcessorID]float64{
		domain.ProcessorA: a,
		domain.ProcessorB: b,
		domain.ProcessorC: c,
	}
}

func processorStatuses(a, b, c domain.ProcessorStatus) map[domain.ProcessorID]domain.ProcessorStatus {
	return map[domain.ProcessorID]domain.ProcessorStatus{
		domain.ProcessorA: a,
		domain.ProcessorB: b,
		domain.ProcessorC: c,
	}
}
