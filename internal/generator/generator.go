// Package generator synthesizes the reproducible incident dataset: a
// five-phase transaction stream, a 24h pre-incident baseline and the fixed
// routing-event sequence.
package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/pkg/lcg"
)

// Generate builds the full dataset for seed. The same seed always yields the
// same output, down to every amount. The baseline stream uses its own
// generator seeded with seed+1 so it never shifts the incident stream.
func Generate(seed int64) domain.GeneratedData {
	rng := lcg.FromInt64(seed)

	var transactions []domain.Transaction
	nextID := 0
	for _, phase := range Phases {
		phaseTx := generatePhase(phase, rng, nextID)
		transactions = append(transactions, phaseTx...)
		nextID += len(phaseTx)
	}

	baselineRng := lcg.FromInt64(seed + 1)
	baseline := generateBaseline(baselineRng)

	return domain.GeneratedData{
		Transactions:         transactions,
		BaselineTransactions: baseline,
		Incident: domain.Incident{
			ID:               IncidentID,
			StartTime:        IncidentStart,
			BaselineAuthRate: OverallBaselineAuthRate,
			Events:           RoutingEvents(),
		},
		Seed: seed,
	}
}

func generatePhase(phase PhaseConfig, rng *lcg.LCG, startID int) []domain.Transaction {
	durationMin := phase.durationMinutes()
	total := int(math.Round(float64(durationMin) * phase.TxPerMinute))
	if total <= 0 {
		return nil
	}

	phaseStart := BaseDate.Add(time.Duration(phase.StartMin) * time.Minute)
	duration := time.Duration(durationMin) * time.Minute

	trafficWeights := make([]float64, len(domain.ProcessorIDs))
	for i, pid := range domain.ProcessorIDs {
		trafficWeights[i] = phase.Traffic[pid]
	}

	transactions := make([]domain.Transaction, 0, total)
	for i := 0; i < total; i++ {
		offset := time.Duration(int64(duration) * int64(i) / int64(total))

		processorID := lcg.WeightedPick(rng, domain.ProcessorIDs, trafficWeights)
		country := lcg.WeightedPick(rng, countryWeights.items, countryWeights.weights)
		method := pickPaymentMethod(rng, country)

		baseRate := phase.AuthRate[processorID]
		jitter := (rng.Next() - 0.5) * authJitterSpan
		// A zero base rate never authorizes and consumes no outcome draw.
		authorized := baseRate > 0 && rng.Next() < clamp01(baseRate+jitter)

		transactions = append(transactions, domain.Transaction{
			ID:              fmt.Sprintf("tx-%d", startID+i),
			Timestamp:       phaseStart.Add(offset),
			ProcessorID:     processorID,
			ProcessorStatus: phase.ProcessorStatus[processorID],
			Country:         country,
			PaymentMethod:   method,
			Amount:          drawAmount(rng, method),
			Authorized:      authorized,
			IsBaseline:      false,
			Phase:           phase.Phase,
		})
	}

	return transactions
}

func generateBaseline(rng *lcg.LCG) []domain.Transaction {
	window := baselineHours * time.Hour
	total := baselineHours * 60 * baselineTxPerMinute
	start := BaseDate.Add(-window)
	baseRate := BaselineAuthRates[domain.ProcessorA]

	transactions := make([]domain.Transaction, 0, total)
	for i := 0; i < total; i++ {
		country := lcg.WeightedPick(rng, countryWeights.items, countryWeights.weights)
		method := pickPaymentMethod(rng, country)
		authorized := rng.Next() < baseRate
		amount := drawAmount(rng, method)

		transactions = append(transactions, domain.Transaction{
			ID:              fmt.Sprintf("baseline-%d", i),
			Timestamp:       start.Add(time.Duration(int64(window) * int64(i) / int64(total))),
			ProcessorID:     domain.ProcessorA,
			ProcessorStatus: domain.ProcessorStatusHealthy,
			Country:         country,
			PaymentMethod:   method,
			Amount:          amount,
			Authorized:      authorized,
			IsBaseline:      true,
			Phase:           domain.PhasePreIncident,
		})
	}

	return transactions
}

func pickPaymentMethod(rng *lcg.LCG, country domain.Country) domain.PaymentMethod {
	w, ok := methodWeights[country]
	if !ok {
		panic(fmt.Sprintf("generator: no payment methods configured for country %q", country))
	}
	return lcg.WeightedPick(rng, w.items, w.weights)
}

// drawAmount varies the method's average ticket by ±30%, rounded to cents.
func drawAmount(rng *lcg.LCG, method domain.PaymentMethod) float64 {
	avg := AverageAmount[method]
	raw := avg * (amountVarianceFloor + rng.Next()*amountVarianceSpan)
	return math.Round(raw*100) / 100
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
