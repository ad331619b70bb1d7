package storage

import (
	"context"
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"

	"github.com/carebell/carebell/internal/logging"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the store.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) ||
		errors.Is(err, badger.ErrKeyNotFound) ||
		errors.Is(err, redis.Nil)
}

// Store is the key-value contract the schedule core persists through.
// Values are whole JSON documents written last-writer-wins; repos never
// see a concrete backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns all keys beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*RedisStore)(nil)
)

// loadJSON reads key into v. Missing keys and malformed stored values both
// report found=false so callers fall back to their empty defaults; a bad
// record is logged and otherwise treated as absent.
func loadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		logging.Warn("discarding malformed record", "key", key, logging.KeyError, err)
		return false, nil
	}
	return true, nil
}

// saveJSON marshals v and stores it under key.
func saveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
