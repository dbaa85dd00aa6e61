package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 10

// RedisMirror keeps the local mirror under Prefix+key. Entries never expire.
type RedisMirror struct {
	Client *redis.Client
	Prefix string
}

func NewRedisMirror(client *redis.Client, prefix string) *RedisMirror {
	return &RedisMirror{Client: client, Prefix: prefix}
}

func (m *RedisMirror) Get(ctx context.Context, key string) (string, bool) {
	val, err := m.Client.Get(ctx, m.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Printf("Warning: failed to read mirror key %s: %v", key, err)
		return "", false
	}
	return val, true
}

func (m *RedisMirror) Set(ctx context.Context, key, value string) error {
	return m.Client.Set(ctx, m.Prefix+key, value, 0).Err()
}

// Update replaces key with change(current) inside a WATCH transaction, so a
// concurrent writer from another process forces a retry instead of being
// overwritten. A read failure other than a missing key aborts the update,
// as does any error returned by change.
func (m *RedisMirror) Update(ctx context.Context, key string, change func(current string, found bool) (string, error)) error {
	fullKey := m.Prefix + key

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, fullKey).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return fmt.Errorf("failed to read mirror key %s: %w", key, err)
		}

		next, err := change(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := m.Client.Watch(ctx, txf, fullKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("mirror key %s kept changing after %d attempts", key, maxUpdateAttempts)
}
