package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grachmannico95/incident-replay/internal/domain"
	"github.com/grachmannico95/incident-replay/internal/realtime"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Overview(ctx context.Context) (*domain.Overview, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.(*domain.Overview), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Observe(o *domain.Overview) {
	m.Called(o)
}

func (m *mockRecorder) IncEvent(eventType string) {
	m.Called(eventType)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, msg *realtime.Message) bool {
	args := m.Called(ctx, msg)
	return args.Bool(0)
}

func TestMetricsConsumer_Consume(t *testing.T) {
	overview := &domain.Overview{Metrics: domain.IncidentMetrics{CurrentAuthRate: 0.7}}
	provider := &mockProvider{}
	recorder := &mockRecorder{}
	provider.On("Overview", mock.Anything).Return(overview, nil)
	recorder.On("Observe", overview).Return()
	recorder.On("IncEvent", "tick").Return()

	consumer := NewMetricsConsumer(provider, recorder, logger.NewNop())
	err := consumer.Consume(context.Background(), Event{ID: "1", Type: EventTypeTick})

	require.NoError(t, err)
	assert.Equal(t, 1, consumer.GetWorkerCount())
	provider.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestMetricsConsumer_ProviderError(t *testing.T) {
	provider := &mockProvider{}
	recorder := &mockRecorder{}
	provider.On("Overview", mock.Anything).Return(nil, errors.New("boom"))

	consumer := NewMetricsConsumer(provider, recorder, logger.NewNop())
	err := consumer.Consume(context.Background(), Event{ID: "1", Type: EventTypeTick})

	assert.Error(t, err)
	recorder.AssertNotCalled(t, "Observe", mock.Anything)
}

func TestBroadcastConsumer_UsesActionAsReason(t *testing.T) {
	overview := &domain.Overview{}
	provider := &mockProvider{}
	broadcaster := &mockBroadcaster{}
	provider.On("Overview", mock.Anything).Return(overview, nil)
	broadcaster.On("Broadcast", mock.Anything, mock.MatchedBy(func(msg *realtime.Message) bool {
		return msg.Type == realtime.MessageTypeOverview && msg.Reason == "filters.reset" && msg.Payload == overview
	})).Return(true)

	consumer := NewBroadcastConsumer(provider, broadcaster, logger.NewNop())
	err := consumer.Consume(context.Background(), Event{
		ID:      "2",
		Type:    EventTypeStateChanged,
		Payload: StateChangedEvent{Action: "filters.reset"},
	})

	require.NoError(t, err)
	broadcaster.AssertExpectations(t)
}

func TestBroadcastConsumer_QueueFull(t *testing.T) {
	provider := &mockProvider{}
	broadcaster := &mockBroadcaster{}
	provider.On("Overview", mock.Anything).Return(&domain.Overview{}, nil)
	broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(false)

	consumer := NewBroadcastConsumer(provider, broadcaster, logger.NewNop())
	err := consumer.Consume(context.Background(), Event{ID: "3", Type: EventTypeTick})

	assert.Error(t, err)
}
