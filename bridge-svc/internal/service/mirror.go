package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errMirrorUnchanged = errors.New("mirror unchanged")

// decodeMirror parses mirrored content into a fresh T. Missing keys and
// unreadable content both yield def.
func decodeMirror[T any](raw string, found bool, def T) T {
	if !found || strings.TrimSpace(raw) == "null" {
		return def
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return def
	}
	return value
}

// updateMirror rewrites a list-valued key from its current content. Writers in
// this process are serialized on the bridge's mirror lock; the store detects
// writers elsewhere. change reports false to leave the key as it is.
func updateMirror[T any](ctx context.Context, b *Bridge, key string, def T, change func(T) (T, bool)) error {
	b.mirrorMu.Lock()
	defer b.mirrorMu.Unlock()

	err := b.mirror.Update(ctx, key, func(current string, found bool) (string, error) {
		next, changed := change(decodeMirror(current, found, def))
		if !changed {
			return "", errMirrorUnchanged
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return "", fmt.Errorf("failed to encode local mirror %q: %w", key, err)
		}
		return string(payload), nil
	})
	if errors.Is(err, errMirrorUnchanged) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update local mirror %q: %w", key, err)
	}
	return nil
}

func writeMirror(ctx context.Context, store KeyValueStore, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode local mirror %q: %w", key, err)
	}
	if err := store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("failed to write local mirror %q: %w", key, err)
	}
	return nil
}

// mirrorWrite is one pending full-replace of a mirror key.
type mirrorWrite struct {
	key   string
	value any
}

// writeAll holds the mirror lock so a full resync never interleaves with a
// list update.
func (b *Bridge) writeAll(ctx context.Context, writes []mirrorWrite) error {
	b.mirrorMu.Lock()
	defer b.mirrorMu.Unlock()
	for _, w := range writes {
		if err := writeMirror(ctx, b.mirror, w.key, w.value); err != nil {
			return err
		}
	}
	return nil
}
