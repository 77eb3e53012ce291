package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/grachmannico95/incident-replay/pkg/logger"
	"github.com/grachmannico95/incident-replay/pkg/retry"
)

var ErrAlreadyStarted = errors.New("event bus already started")

type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, consumer Consumer) error
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// subscription gives every consumer its own queue so each one sees every
// event of the type it subscribed to.
type subscription struct {
	consumer Consumer
	ch       chan Event
}

type eventBus struct {
	subscriptions map[EventType][]*subscription
	mu            sync.RWMutex
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	logger        *logger.Logger
	channelBuffer int
	maxRetries    int
	retryDelay    time.Duration
	started       bool
}

type Config struct {
	ChannelBuffer int
	MaxRetries    int
	RetryDelay    time.Duration
}

func New(log *logger.Logger, cfg *Config) EventBus {
	c := Config{ChannelBuffer: 256, MaxRetries: 3}
	if cfg != nil {
		c = *cfg
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 100 * time.Millisecond
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 1
	}

	return &eventBus{
		subscriptions: make(map[EventType][]*subscription),
		logger:        log,
		channelBuffer: c.ChannelBuffer,
		maxRetries:    c.MaxRetries,
		retryDelay:    c.RetryDelay,
	}
}

// Subscribe must be called before Start.
func (eb *eventBus) Subscribe(eventType EventType, consumer Consumer) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.started {
		return ErrAlreadyStarted
	}

	eb.subscriptions[eventType] = append(eb.subscriptions[eventType], &subscription{
		consumer: consumer,
		ch:       make(chan Event, eb.channelBuffer),
	})

	return nil
}

func (eb *eventBus) Start(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.started {
		return nil
	}

	eb.ctx, eb.cancel = context.WithCancel(ctx)

	for eventType, subs := range eb.subscriptions {
		for _, sub := range subs {
			workerCount := sub.consumer.GetWorkerCount()
			eb.logger.Info(eb.ctx, "Starting workers",
				"event_type", eventType,
				"worker_count", workerCount,
			)

			for i := 0; i < workerCount; i++ {
				eb.wg.Add(1)
				go eb.worker(eb.ctx, sub.ch, sub.consumer, i)
			}
		}
	}

	eb.started = true
	eb.logger.Info(eb.ctx, "Event bus started")

	return nil
}

func (eb *eventBus) worker(ctx context.Context, ch <-chan Event, consumer Consumer, workerID int) {
	defer eb.wg.Done()

	eb.logger.Debug(ctx, "Worker started", "worker_id", workerID)

	for {
		select {
		case <-ctx.Done():
			eb.logger.Debug(ctx, "Worker stopping", "worker_id", workerID)
			return
		case event, ok := <-ch:
			if !ok {
				eb.logger.Debug(ctx, "Channel closed, worker stopping", "worker_id", workerID)
				return
			}

			eb.processEvent(ctx, event, consumer, workerID)
		}
	}
}

func (eb *eventBus) processEvent(ctx context.Context, event Event, consumer Consumer, workerID int) {
	eventCtx := ctx
	if event.ID != "" {
		eventCtx = logger.WithTraceID(ctx, event.ID)
	}

	eb.logger.Debug(eventCtx, "Processing event",
		"event_id", event.ID,
		"event_type", event.Type,
		"worker_id", workerID,
	)

	err := retry.Do(eventCtx, func() error {
		return consumer.Consume(eventCtx, event)
	},
		retry.WithMaxAttempts(eb.maxRetries),
		retry.WithBaseDelay(eb.retryDelay),
		retry.WithMaxDelay(10*eb.retryDelay),
	)

	if err != nil {
		eb.logger.Error(eventCtx, "Failed to process event after retries",
			"event_id", event.ID,
			"event_type", event.Type,
			"worker_id", workerID,
			"error", err,
		)
	} else {
		eb.logger.Debug(eventCtx, "Event processed successfully",
			"event_id", event.ID,
			"event_type", event.Type,
			"worker_id", workerID,
		)
	}
}

// Publish fans event out to every subscriber without blocking. A subscriber
// whose queue is full misses the event.
func (eb *eventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	subs := eb.subscriptions[event.Type]
	eb.mu.RUnlock()

	if len(subs) == 0 {
		eb.logger.Debug(ctx, "No subscribers for event type",
			"event_type", event.Type,
			"event_id", event.ID,
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
			eb.logger.Warn(ctx, "Event channel full, event dropped",
				"event_type", event.Type,
				"event_id", event.ID,
			)
		}
	}

	eb.logger.Debug(ctx, "Event published",
		"event_type", event.Type,
		"event_id", event.ID,
		"subscribers", len(subs),
	)
	return nil
}

func (eb *eventBus) Shutdown(ctx context.Context) error {
	eb.logger.Info(ctx, "Shutting down event bus")

	eb.mu.RLock()
	cancel := eb.cancel
	eb.mu.RUnlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		eb.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		eb.logger.Info(ctx, "Event bus shutdown complete")
		return nil
	case <-ctx.Done():
		eb.logger.Warn(ctx, "Event bus shutdown timeout")
		return ctx.Err()
	}
}
