package domain

import (
	"context"
	"time"
)

// Dataset is read-only access to the generated incident data.
// Transactions returns records sorted ascending by timestamp; callers must not
// modify the returned slices.
type Dataset interface {
	Transactions(ctx context.Context) []Transaction
	BaselineTransactions(ctx context.Context) []Transaction
	Incident(ctx context.Context) Incident
	EventsUntil(ctx context.Context, t time.Time) []RoutingEvent
	Seed() int64
}
