package kv_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/colonyops/docgrid/internal/core/kv"
	"github.com/colonyops/docgrid/internal/data/db"
	"github.com/colonyops/docgrid/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) kv.KV {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestTypedKV_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	typed := kv.Scoped[string](store, "test")

	require.NoError(t, typed.Set(ctx, "greeting", "hello"))

	got, err := typed.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestTypedKV_ScopedPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	// Two scoped stores with different namespaces
	alpha := kv.Scoped[int](store, "alpha")
	beta := kv.Scoped[int](store, "beta")

	require.NoError(t, alpha.Set(ctx, "count", 10))
	require.NoError(t, beta.Set(ctx, "count", 20))

	// Each scope sees its own value
	a, err := alpha.Get(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, 10, a)

	b, err := beta.Get(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, 20, b)

	// Raw store sees both with prefixed keys
	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "alpha:count")
	assert.Contains(t, keys, "beta:count")
}

func TestTypedKV_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	typed := kv.Scoped[string](store, "ns")

	require.NoError(t, typed.Set(ctx, "key", "val"))
	require.NoError(t, typed.Delete(ctx, "key"))

	has, err := typed.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTypedKV_Has(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	typed := kv.Scoped[int](store, "ns")

	has, err := typed.Has(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, typed.Set(ctx, "exists", 1))
	has, err = typed.Has(ctx, "exists")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestTypedKV_TTL(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)
	typed := kv.Scoped[string](store, "ttl")

	require.NoError(t, typed.SetTTL(ctx, "temp", "gone", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := typed.Get(ctx, "temp")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTypedKV_StructValue(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	type credential struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}

	typed := kv.Scoped[credential](store, "auth")
	require.NoError(t, typed.Set(ctx, "token", credential{Token: "abc", Username: "user1"}))

	got, err := typed.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, "user1", got.Username)
}

func TestTypedKV_Lookup(t *testing.T) {
	ctx := context.Background()
	typed := kv.Scoped[string](newTestKV(t), "ns")

	_, ok, err := typed.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, typed.Set(ctx, "present", "v"))
	got, ok, err := typed.Lookup(ctx, "present")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestTypedKV_Keys(t *testing.T) {
	ctx := context.Background()
	store := newTestKV(t)

	require.NoError(t, kv.Scoped[int](store, "a").Set(ctx, "one", 1))
	require.NoError(t, kv.Scoped[int](store, "a").Set(ctx, "two", 2))
	require.NoError(t, kv.Scoped[int](store, "b").Set(ctx, "three", 3))

	keys, err := kv.Scoped[int](store, "a").Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, keys)
}

func TestIsMissing(t *testing.T) {
	_, err := kv.Scoped[string](newTestKV(t), "ns").Get(context.Background(), "nope")
	assert.True(t, kv.IsMissing(err))
	assert.False(t, kv.IsMissing(assert.AnError))
}
