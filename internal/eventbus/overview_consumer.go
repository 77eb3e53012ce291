package eventbus

import (
	"context"
	"fmt"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/realtime"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// OverviewProvider evaluates the dashboard against the current state.
type OverviewProvider interface {
	Overview(ctx context.Context) (*domain.Overview, error)
}

// MetricsRecorder receives every overview computed for an event.
type MetricsRecorder interface {
	Observe(o *domain.Overview)
	IncEvent(eventType string)
}

type Broadcaster interface {
	Broadcast(ctx context.Context, msg *realtime.Message) bool
}

// MetricsConsumer refreshes the Prometheus gauges after every state change.
type MetricsConsumer struct {
	provider    OverviewProvider
	recorder    MetricsRecorder
	logger      *logger.Logger
	workerCount int
}

func NewMetricsConsumer(provider OverviewProvider, recorder MetricsRecorder, log *logger.Logger) *MetricsConsumer {
	return &MetricsConsumer{
		provider:    provider,
		recorder:    recorder,
		logger:      log,
		workerCount: 1,
	}
}

func (mc *MetricsConsumer) Consume(ctx context.Context, event Event) error {
	overview, err := mc.provider.Overview(ctx)
	if err != nil {
		mc.logger.Error(ctx, "Failed to compute overview for metrics",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	mc.recorder.Observe(overview)
	mc.recorder.IncEvent(string(event.Type))

	mc.logger.Debug(ctx, "Metrics refreshed",
		"event_id", event.ID,
		"event_type", event.Type,
		"auth_rate", overview.Metrics.CurrentAuthRate,
	)
	return nil
}

func (mc *MetricsConsumer) GetWorkerCount() int {
	return mc.workerCount
}

// BroadcastConsumer pushes a fresh overview to WebSocket clients.
type BroadcastConsumer struct {
	provider    OverviewProvider
	broadcaster Broadcaster
	logger      *logger.Logger
	workerCount int
}

func NewBroadcastConsumer(provider OverviewProvider, broadcaster Broadcaster, log *logger.Logger) *BroadcastConsumer {
	return &BroadcastConsumer{
		provider:    provider,
		broadcaster: broadcaster,
		logger:      log,
		workerCount: 1,
	}
}

func (bc *BroadcastConsumer) Consume(ctx context.Context, event Event) error {
	overview, err := bc.provider.Overview(ctx)
	if err != nil {
		bc.logger.Error(ctx, "Failed to compute overview for broadcast",
			"event_id", event.ID,
			"error", err,
		)
		return err
	}

	reason := string(event.Type)
	if payload, ok := event.Payload.(StateChangedEvent); ok {
		reason = payload.Action
	}

	if !bc.broadcaster.Broadcast(ctx, &realtime.Message{
		Type:    realtime.MessageTypeOverview,
		Reason:  reason,
		Payload: overview,
	}) {
		return fmt.Errorf("broadcast queue full for event %s", event.ID)
	}

	bc.logger.Debug(ctx, "Overview broadcast",
		"event_id", event.ID,
		"reason", reason,
	)
	return nil
}

func (bc *BroadcastConsumer) GetWorkerCount() int {
	return bc.workerCount
}
