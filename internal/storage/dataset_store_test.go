package storage

import (
	"context"
	"testing"
	"time"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDatasetStore_Load(t *testing.T) {
	store := Load(generator.DefaultSeed)
	ctx := context.Background()

	assert.Len(t, store.Transactions(ctx), 1220)
	assert.Len(t, store.BaselineTransactions(ctx), 7200)
	assert.Equal(t, generator.IncidentID, store.Incident(ctx).ID)
	assert.Equal(t, generator.DefaultSeed, store.Seed())
}

func TestDatasetStore_SortedAscending(t *testing.T) {
	store := Load(generator.DefaultSeed)
	txs := store.Transactions(context.Background())

	for i := 1; i < len(txs); i++ {
		require.False(t, txs[i].Timestamp.Before(txs[i-1].Timestamp), "unsorted at %d", i)
	}
}

func TestDatasetStore_StableTies(t *testing.T) {
	data := domain.GeneratedData{
		Transactions: []domain.Transaction{
			{ID: "late", Timestamp: epoch.Add(time.Minute)},
			{ID: "tie-1", Timestamp: epoch},
			{ID: "tie-2", Timestamp: epoch},
			{ID: "tie-3", Timestamp: epoch},
		},
	}

	store := NewDatasetStore(data)
	txs := store.Transactions(context.Background())

	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{"tie-1", "tie-2", "tie-3", "late"}, ids)
}

func TestDatasetStore_DoesNotAliasInput(t *testing.T) {
	data := domain.GeneratedData{
		Transactions: []domain.Transaction{{ID: "a", Timestamp: epoch}},
	}

	store := NewDatasetStore(data)
	data.Transactions[0].ID = "mutated"

	assert.Equal(t, "a", store.Transactions(context.Background())[0].ID)
}

func TestDatasetStore_EventsUntil(t *testing.T) {
	store := Load(generator.DefaultSeed)
	ctx := context.Background()

	assert.Empty(t, store.EventsUntil(ctx, generator.BaseDate))

	atStart := store.EventsUntil(ctx, generator.IncidentStart)
	require.Len(t, atStart, 1)
	assert.Equal(t, "evt-1", atStart[0].ID)

	assert.Len(t, store.EventsUntil(ctx, generator.IncidentStart.Add(7*time.Minute)), 4)
	assert.Len(t, store.EventsUntil(ctx, generator.WindowEnd), 8)
}

func TestDatasetStore_ConcurrentReads(t *testing.T) {
	store := Load(generator.DefaultSeed)
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 50; i++ {
		go func() {
			_ = store.Transactions(ctx)
			_ = store.EventsUntil(ctx, generator.WindowEnd)
			_ = store.Incident(ctx)
			done <- true
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}
	assert.Len(t, store.Transactions(ctx), 1220)
}
