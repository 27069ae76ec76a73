package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewListingCache(client, ttl), mr
}

func TestGetReturnsStoredBytes(t *testing.T) {
	lc, _ := setupCache(t, time.Minute)
	ctx := context.Background()
	key := Key("/", "1")

	_, ok := lc.Get(ctx, key)
	require.False(t, ok)

	body := []byte(`{"posts":[]}`)
	lc.Set(ctx, key, body)

	got, ok := lc.Get(ctx, key)
	require.True(t, ok)
	require.Equal(t, body, got)
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	lc, mr := setupCache(t, 20*time.Second)
	ctx := context.Background()
	key := Key("/", "1")

	lc.Set(ctx, key, []byte("cached"))
	mr.FastForward(21 * time.Second)

	_, ok := lc.Get(ctx, key)
	require.False(t, ok)
}

func TestInvalidateClearsWholeNamespace(t *testing.T) {
	lc, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	lc.Set(ctx, Key("/", "1"), []byte("a"))
	lc.Set(ctx, Key("/", "2"), []byte("b"))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, lc.Invalidate(ctx))

	_, ok := lc.Get(ctx, Key("/", "1"))
	require.False(t, ok)
	_, ok = lc.Get(ctx, Key("/", "2"))
	require.False(t, ok)
	// 非列表键不受影响
	v, err := mr.Get("unrelated")
	require.NoError(t, err)
	require.Equal(t, "keep", v)
}

func TestKeyDefaultsToFirstPage(t *testing.T) {
	require.Equal(t, Key("/", "1"), Key("/", ""))
	require.NotEqual(t, Key("/", "1"), Key("/", "2"))
}
