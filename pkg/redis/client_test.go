package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "Invalid URL", url: "invalid://url"},
		{name: "Empty URL", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", nil)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}

	t.Run("Unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		client, err := NewClient("redis://"+addr, "test", nil)
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestClient_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "test:key1", "value1", time.Minute))

	value, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", value)
	assert.Greater(t, mr.TTL("test:key1"), time.Duration(0))

	_, err = client.Get(ctx, "test:missing")
	assert.ErrorIs(t, err, Nil)
}

func TestClient_SetNX(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "test:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "test:lock", "2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	val, _ := mr.Get("test:lock")
	assert.Equal(t, "1", val)
}

func TestClient_IncrWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	n, err := client.IncrWithTTL(ctx, "test:counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mr.FastForward(30 * time.Second)

	n, err = client.IncrWithTTL(ctx, "test:counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// the window is not extended by later increments
	assert.LessOrEqual(t, mr.TTL("test:counter"), 30*time.Second)

	mr.FastForward(31 * time.Second)
	assert.False(t, mr.Exists("test:counter"))
}

func TestClient_Incr(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	n, err := client.Incr(ctx, "test:generation")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.Incr(ctx, "test:generation")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Zero(t, mr.TTL("test:generation"))
}

func TestClient_DeleteAndInvalidatePattern(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	mr.Set("prod:draws:recent:5", "a")
	mr.Set("prod:draws:recent:10", "b")
	mr.Set("prod:draws:id:1", "c")

	require.NoError(t, client.InvalidatePattern(ctx, "prod:draws:recent:*"))
	assert.False(t, mr.Exists("prod:draws:recent:5"))
	assert.False(t, mr.Exists("prod:draws:recent:10"))
	assert.True(t, mr.Exists("prod:draws:id:1"))

	require.NoError(t, client.Delete(ctx, "prod:draws:id:1"))
	assert.False(t, mr.Exists("prod:draws:id:1"))

	require.NoError(t, client.InvalidatePattern(ctx, "prod:nothing:*"))
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, client.Health(ctx))

	mr.Close()
	assert.Error(t, client.Health(ctx))
}

func TestPrefixForLog(t *testing.T) {
	assert.Equal(t, "prod:draws:id:1", prefixForLog("prod:draws:id:1"))
	assert.Equal(t, "prod:auth:login_attempts…", prefixForLog("prod:auth:login_attempts:someone@example.com"))
}
