package slotstore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"goquote/internal/logger"
)

// Pebble keeps slots in a pebble database. Pebble holds an exclusive lock on
// its directory, so it is not watchable across processes.
type Pebble struct {
	db   *pebble.DB
	path string
	log  *zap.Logger
}

func OpenPebble(path string, log *zap.Logger) (*Pebble, error) {
	log = logger.OrNop(log)
	log.Info("opening_pebble_db", zap.String("path", path))

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		log.Error("pebble_open_failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}
	return &Pebble{db: db, path: path, log: log}, nil
}

func (p *Pebble) Get(key string) (string, bool, error) {
	value, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	defer closer.Close()
	// value is only valid until closer is closed
	return string(value), true, nil
}

func (p *Pebble) Set(key, value string) error {
	if err := p.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		p.log.Error("slot_set_failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Remove(key string) error {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys starting with prefix.
func (p *Pebble) Keys(prefix string) ([]string, error) {
	opts := &pebble.IterOptions{}
	if prefix != "" {
		opts.LowerBound = []byte(prefix)
		opts.UpperBound = prefixUpperBound([]byte(prefix))
	}
	iter, err := p.db.NewIter(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open iterator: %w", err)
	}
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	return keys, iter.Error()
}

func (p *Pebble) Close() error {
	if p.db == nil {
		return nil
	}
	if err := p.db.Close(); err != nil {
		return err
	}
	p.db = nil
	p.log.Info("pebble_closed", zap.String("path", p.path))
	return nil
}

func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
