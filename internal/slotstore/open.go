package slotstore

import (
	"fmt"

	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/config"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendPebble = "pebble"
)

// Open builds the slot backend named by cfg. The returned cleanup releases
// it and is never nil.
func Open(cfg config.StorageConfig, log *zap.Logger) (common.SlotStorage, func(), error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemory().View(), func() {}, nil
	case BackendFile:
		store, err := NewFile(cfg.Path, log)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() {}, nil
	case BackendPebble:
		store, err := OpenPebble(cfg.Path, log)
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() {
			if err := store.Close(); err != nil && log != nil {
				log.Warn("pebble_close_failed", zap.Error(err))
			}
		}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
