package storage

import (
	"context"
	"sort"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/grachmannico95/incident-replay/internal/pipeline"
)

// DatasetStore holds one generated dataset for the lifetime of the process.
// It is never written after construction, so reads need no locking.
type DatasetStore struct {
	transactions []domain.Transaction
	baseline     []domain.Transaction
	incident     domain.Incident
	seed         int64
}

// Load generates the dataset for seed and wraps it in a store.
func Load(seed int64) *DatasetStore {
	return NewDatasetStore(generator.Generate(seed))
}

// NewDatasetStore copies data and stable-sorts both transaction streams by
// timestamp, so ties keep generation order.
func NewDatasetStore(data domain.GeneratedData) *DatasetStore {
	transactions := sortedCopy(data.Transactions)
	baseline := sortedCopy(data.BaselineTransactions)

	incident := data.Incident
	incident.Events = append([]domain.RoutingEvent(nil), data.Incident.Events...)

	return &DatasetStore{
		transactions: transactions,
		baseline:     baseline,
		incident:     incident,
		seed:         data.Seed,
	}
}

func sortedCopy(in []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Transactions returns the incident stream sorted ascending by timestamp.
// The slice is shared; callers must not modify it.
func (s *DatasetStore) Transactions(ctx context.Context) []domain.Transaction {
	return s.transactions
}

// BaselineTransactions returns the 24h pre-incident stream. The slice is shared.
func (s *DatasetStore) BaselineTransactions(ctx context.Context) []domain.Transaction {
	return s.baseline
}

func (s *DatasetStore) Incident(ctx context.Context) domain.Incident {
	return s.incident
}

// EventsUntil returns the routing events revealed at t.
func (s *DatasetStore) EventsUntil(ctx context.Context, t time.Time) []domain.RoutingEvent {
	return pipeline.VisibleEvents(s.incident.Events, t)
}

func (s *DatasetStore) Seed() int64 {
	return s.seed
}
