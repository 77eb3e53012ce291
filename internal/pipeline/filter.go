package pipeline

import (
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
)

// Revealed returns the prefix of sorted with timestamp <= now. The result
// shares its backing array with sorted.
func Revealed(sorted []domain.Transaction, now time.Time) []domain.Transaction {
	idx := UpperBoundIndex(sorted, func(tx domain.Transaction) bool {
		return !tx.Timestamp.After(now)
	})
	return sorted[:idx+1]
}

// PeriodStart returns the lower time bound for period.
func PeriodStart(period domain.TimePeriod, now, incidentStart time.Time) time.Time {
	switch period {
	case domain.TimePeriod15Min:
		return now.Add(-15 * time.Minute)
	case domain.TimePeriod1Hour:
		return now.Add(-60 * time.Minute)
	default:
		return incidentStart
	}
}

// FilterTransactions applies the time cutoff, the period window, and the
// country and payment method selections, in that order. sorted must be
// ascending by timestamp. The result is a new slice and never nil.
func FilterTransactions(sorted []domain.Transaction, now time.Time, sel domain.FilterSelection, incidentStart time.Time) []domain.Transaction {
	visible := Revealed(sorted, now)
	if len(visible) == 0 {
		return []domain.Transaction{}
	}

	from := PeriodStart(sel.TimePeriod, now, incidentStart)
	first := UpperBoundIndex(visible, func(tx domain.Transaction) bool {
		return tx.Timestamp.Before(from)
	}) + 1
	windowed := visible[first:]
	if len(windowed) == 0 {
		return []domain.Transaction{}
	}

	countries := countrySet(sel.Countries)
	methods := methodSet(sel.PaymentMethods)

	out := make([]domain.Transaction, 0, len(windowed))
	for _, tx := range windowed {
		if countries != nil && !countries[tx.Country] {
			continue
		}
		if methods != nil && !methods[tx.PaymentMethod] {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// countrySet returns nil when every country is selected.
func countrySet(selected []domain.Country) map[domain.Country]bool {
	set := make(map[domain.Country]bool, len(selected))
	for _, c := range selected {
		set[c] = true
	}
	if len(set) == len(domain.Countries) {
		return nil
	}
	return set
}

func methodSet(selected []domain.PaymentMethod) map[domain.PaymentMethod]bool {
	set := make(map[domain.PaymentMethod]bool, len(selected))
	for _, m := range selected {
		set[m] = true
	}
	if len(set) == len(domain.PaymentMethods) {
		return nil
	}
	return set
}

// VisibleEvents returns the events with timestamp <= now. events must be
// ascending by timestamp.
func VisibleEvents(events []domain.RoutingEvent, now time.Time) []domain.RoutingEvent {
	idx := UpperBoundIndex(events, func(e domain.RoutingEvent) bool {
		return !e.Timestamp.After(now)
	})
	out := make([]domain.RoutingEvent, idx+1)
	copy(out, events[:idx+1])
	return out
}
