package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/logger"
	"goquote/internal/metrics"
)

// Bridge persists each channel's pending quote in its slot and fans change
// notifications out to every observer of that channel.
type Bridge struct {
	// mu serializes slot writes made through this bridge so a conditional
	// clear cannot interleave with a Set.
	mu      sync.Mutex
	storage common.SlotStorage
	bus     common.Subject
	log     *zap.Logger
	metrics *metrics.QuoteMetrics
}

func NewBridge(storage common.SlotStorage, bus common.Subject, log *zap.Logger, m *metrics.QuoteMetrics) *Bridge {
	return &Bridge{
		storage: storage,
		bus:     bus,
		log:     logger.OrNop(log),
		metrics: m,
	}
}

// Set writes ref to the slot of channelID and notifies local observers.
// Storage watchers only report writes from other documents, so the local
// notification is what keeps this process's surfaces current.
func (b *Bridge) Set(channelID string, ref common.QuotedReference) error {
	if err := common.ValidateQuotedReference(channelID, ref); err != nil {
		return err
	}
	if ref.ChannelID == "" {
		ref.ChannelID = channelID
	}

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to encode quoted reference: %w", err)
	}

	key := SlotKey(channelID)
	b.mu.Lock()
	err = b.storage.Set(key, string(data))
	b.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to write quote slot %s: %w", key, err)
	}
	b.metrics.SlotOp("set")
	b.log.Debug("quote_slot_set", zap.String("channel_id", channelID), zap.String("post_id", ref.PostID))

	b.notifyLocal(channelID)
	return nil
}

// Get reads the pending quote of channelID. Unreadable or corrupt slots are
// logged and reported as absent.
func (b *Bridge) Get(channelID string) (*common.QuotedReference, bool) {
	key := SlotKey(channelID)
	b.metrics.SlotOp("get")

	data, found, err := b.storage.Get(key)
	if err != nil {
		b.metrics.DecodeFailure()
		b.log.Warn("quote_slot_read_failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !found || data == "" {
		return nil, false
	}

	var ref common.QuotedReference
	if err := json.Unmarshal([]byte(data), &ref); err != nil {
		b.metrics.DecodeFailure()
		b.log.Warn("quote_slot_decode_failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if ref.PostID == "" {
		b.metrics.DecodeFailure()
		b.log.Warn("quote_slot_missing_post_id", zap.String("key", key))
		return nil, false
	}
	return &ref, true
}

// Clear removes the pending quote of channelID.
func (b *Bridge) Clear(channelID string) error {
	if err := common.ValidateChannelID(channelID); err != nil {
		return err
	}

	b.mu.Lock()
	err := b.remove(channelID)
	b.mu.Unlock()
	if err != nil {
		return err
	}

	b.notifyLocal(channelID)
	return nil
}

// ClearIf removes the pending quote of channelID only while it still quotes
// postID. A quote set in the meantime is left for the next reply.
func (b *Bridge) ClearIf(channelID, postID string) (bool, error) {
	if err := common.ValidateChannelID(channelID); err != nil {
		return false, err
	}

	b.mu.Lock()
	ref, ok := b.Get(channelID)
	if !ok || ref.PostID != postID {
		b.mu.Unlock()
		return false, nil
	}
	err := b.remove(channelID)
	b.mu.Unlock()
	if err != nil {
		return false, err
	}

	b.notifyLocal(channelID)
	return true, nil
}

// Consume takes the pending quote of channelID.
func (b *Bridge) Consume(channelID string) (*common.QuotedReference, bool, error) {
	if err := common.ValidateChannelID(channelID); err != nil {
		return nil, false, err
	}

	b.mu.Lock()
	ref, ok := b.Get(channelID)
	if !ok {
		b.mu.Unlock()
		return nil, false, nil
	}
	err := b.remove(channelID)
	b.mu.Unlock()
	if err != nil {
		return nil, false, err
	}

	b.metrics.SlotOp("consume")
	b.notifyLocal(channelID)
	return ref, true, nil
}

// remove deletes the slot. Callers hold b.mu.
func (b *Bridge) remove(channelID string) error {
	key := SlotKey(channelID)
	if err := b.storage.Remove(key); err != nil {
		return fmt.Errorf("failed to clear quote slot %s: %w", key, err)
	}
	b.metrics.SlotOp("clear")
	b.log.Debug("quote_slot_cleared", zap.String("channel_id", channelID))
	return nil
}

// HandleStorageChange turns a backend change notification into a storage
// event. Keys that are not quote slots are ignored. The event is queued on
// the bus worker pool so a slow observer never stalls the backend watcher.
func (b *Bridge) HandleStorageChange(key string) {
	channelID, ok := ChannelIDFromKey(key)
	if !ok {
		return
	}
	b.bus.NotifyAsync(common.QuoteEvent{
		Source:    common.SourceStorage,
		ChannelID: channelID,
		Key:       key,
	})
}

// Watch forwards changes made by other writers of the backend until ctx is
// done. Backends that cannot watch return immediately.
func (b *Bridge) Watch(ctx context.Context) error {
	watchable, ok := b.storage.(common.WatchableStorage)
	if !ok {
		b.log.Info("quote_storage_not_watchable")
		return nil
	}
	return watchable.Watch(ctx, b.HandleStorageChange)
}

func (b *Bridge) notifyLocal(channelID string) {
	b.bus.Notify(common.QuoteEvent{
		Source:    common.SourceLocal,
		ChannelID: channelID,
		Key:       SlotKey(channelID),
	})
}
