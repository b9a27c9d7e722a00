package quote

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/logger"
	"goquote/internal/metrics"
)

// Bus is the in-process publish/subscribe channel for quote events.
// Observers subscribe per channel and only see events for that channel.
type Bus struct {
	observers    map[string]map[string]common.Observer
	eventChannel chan common.QuoteEvent
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
	once         sync.Once
	log          *zap.Logger
	metrics      *metrics.QuoteMetrics
}

func NewBus(workerPoolSize, bufferSize int, log *zap.Logger, m *metrics.QuoteMetrics) *Bus {
	if workerPoolSize < 1 {
		workerPoolSize = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	b := &Bus{
		observers:    make(map[string]map[string]common.Observer),
		eventChannel: make(chan common.QuoteEvent, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
		log:          logger.OrNop(log),
		metrics:      m,
	}

	for i := 0; i < workerPoolSize; i++ {
		b.wg.Add(1)
		go b.processEvents()
	}

	return b
}

func (b *Bus) Subscribe(channelID string, observer common.Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	channelObservers, ok := b.observers[channelID]
	if !ok {
		channelObservers = make(map[string]common.Observer)
		b.observers[channelID] = channelObservers
	}
	channelObservers[observer.Name()] = observer
	b.log.Debug("observer_subscribed", zap.String("channel_id", channelID), zap.String("observer", observer.Name()))
}

func (b *Bus) Unsubscribe(channelID string, observer common.Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	channelObservers, ok := b.observers[channelID]
	if !ok {
		return
	}
	delete(channelObservers, observer.Name())
	if len(channelObservers) == 0 {
		delete(b.observers, channelID)
	}
	b.log.Debug("observer_unsubscribed", zap.String("channel_id", channelID), zap.String("observer", observer.Name()))
}

// ObserverCount reports how many observers watch channelID.
func (b *Bus) ObserverCount(channelID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers[channelID])
}

// Notify delivers event synchronously to the observers of its channel.
func (b *Bus) Notify(event common.QuoteEvent) {
	b.mu.RLock()
	observers := make([]common.Observer, 0, len(b.observers[event.ChannelID]))
	for _, obs := range b.observers[event.ChannelID] {
		observers = append(observers, obs)
	}
	b.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			b.log.Warn("observer_update_failed",
				zap.String("observer", observer.Name()),
				zap.String("channel_id", event.ChannelID),
				zap.Error(err))
		}
	}
}

// NotifyAsync queues event for the worker pool. Events are dropped when the
// queue is full or the bus is shut down.
func (b *Bus) NotifyAsync(event common.QuoteEvent) {
	if b.ctx.Err() != nil {
		b.drop(event, "bus_closed")
		return
	}

	select {
	case b.eventChannel <- event:
	case <-b.ctx.Done():
		b.drop(event, "bus_closed")
	default:
		b.drop(event, "queue_full")
	}
}

func (b *Bus) drop(event common.QuoteEvent, reason string) {
	b.metrics.DroppedEvent()
	b.log.Warn("quote_event_dropped",
		zap.String("reason", reason),
		zap.String("channel_id", event.ChannelID),
		zap.String("source", string(event.Source)))
}

func (b *Bus) processEvents() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChannel:
			b.Notify(event)
		case <-b.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. Queued events that were not
// yet picked up are discarded.
func (b *Bus) Shutdown() {
	b.once.Do(func() {
		b.cancel()
		b.wg.Wait()
		b.log.Info("quote_bus_shutdown")
	})
}
