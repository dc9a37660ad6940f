package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "NET_PROFIT_acme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "NET_PROFIT_acme", "100.00"))
	require.NoError(t, s.Set(ctx, "NET_PROFIT_acme", "250.50"))
	require.NoError(t, s.Set(ctx, "NET_LOSS_acme", "0.00"))
	require.NoError(t, s.Set(ctx, "NET_PROFIT_other", "1.00"))

	v, ok, err := s.Get(ctx, "NET_PROFIT_acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "250.50", v, "last write wins")

	keys, err := s.Keys(ctx, "NET_PROFIT_")
	require.NoError(t, err)
	assert.Equal(t, []string{"NET_PROFIT_acme", "NET_PROFIT_other"}, keys)

	require.NoError(t, s.Delete(ctx, "NET_PROFIT_acme", "NET_LOSS_acme", "missing"))
	_, ok, err = s.Get(ctx, "NET_LOSS_acme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	exerciseStore(t, NewRedis(client, ""))
}

func TestRedisPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	s := NewRedis(client, "ledgerview:")
	require.NoError(t, s.Set(context.Background(), "NET_PROFIT_acme", "5"))

	raw, err := mr.Get("ledgerview:NET_PROFIT_acme")
	require.NoError(t, err)
	assert.Equal(t, "5", raw)

	keys, err := s.Keys(context.Background(), "NET_")
	require.NoError(t, err)
	assert.Equal(t, []string{"NET_PROFIT_acme"}, keys)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, BackendMemory, "", "")
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.IsType(t, &Memory{}, s)

	mr := miniredis.RunT(t)
	s, closeFn, err = Open(ctx, BackendRedis, mr.Addr(), "p:")
	require.NoError(t, err)
	defer func() { _ = closeFn() }()
	assert.IsType(t, &Redis{}, s)

	_, _, err = Open(ctx, Backend("etcd"), "", "")
	require.Error(t, err)
}
