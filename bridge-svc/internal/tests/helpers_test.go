package tests

import (
	"context"
	"encoding/json"
	"testing"

	"menu-bridge/bridge-svc/internal/domain"
	"menu-bridge/bridge-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMirror(t *testing.T) (*storage.RedisMirror, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisMirror(client, "mirror:"), server
}

func seedMirror(t *testing.T, mirror *storage.RedisMirror, key string, value interface{}) {
	t.Helper()
	payload, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, mirror.Set(context.Background(), key, string(payload)))
}

func readMirror[T any](t *testing.T, mirror *storage.RedisMirror, key string) T {
	t.Helper()
	raw, ok := mirror.Get(context.Background(), key)
	require.True(t, ok, "mirror key %s is missing", key)
	var value T
	require.NoError(t, json.Unmarshal([]byte(raw), &value))
	return value
}

func table(name string) interface{} {
	return mock.MatchedBy(func(q domain.Query) bool { return q.Table == name })
}

func eventType(kind string) interface{} {
	return mock.MatchedBy(func(msg domain.KafkaMessage) bool { return msg.Type == kind })
}

func int64Ptr(v int64) *int64 {
	return &v
}
