package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRegistry_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRedisRegistry(client, "")
	r.now = func() time.Time { return now }

	ok, err := r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Revoke(ctx, "a", now.Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "a", now.Add(time.Hour)))

	ok, err = r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists(DefaultRedisPrefix+"a"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultRedisPrefix+"a"))

	mr.FastForward(time.Hour)

	ok, err = r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRegistry_AlreadyExpired(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)

	r := NewRedisRegistry(client, "x:")
	require.NoError(t, r.Revoke(ctx, "gone", time.Now().Add(-time.Minute)))

	assert.False(t, mr.Exists("x:gone"))
}

func TestRedisRegistry_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	r := NewRedisRegistry(client, "")

	mr.Close()

	_, err := r.IsRevoked(ctx, "a")
	assert.Error(t, err)
	assert.Error(t, r.Revoke(ctx, "a", time.Now().Add(time.Hour)))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	c, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	mr.Close()
	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
