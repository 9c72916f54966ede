package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"sellingPrice"`
}

func newRedisStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(NewRedisKV(client), testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range map[string]*Store{
		"redis":  newRedisStore(t),
		"memory": New(NewMemoryKV(), testLogger()),
	} {
		t.Run(name, func(t *testing.T) {
			items := []testItem{
				{ID: "1", Name: "Mug", Stock: 10, Price: 5},
				{ID: "2", Name: "Lamp", Stock: 3, Price: 20},
			}
			require.NoError(t, Save(ctx, st, CollectionItems, items))
			loaded := Load[testItem](ctx, st, CollectionItems)
			require.Equal(t, items, loaded)
		})
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	st := newRedisStore(t)
	loaded := Load[testItem](context.Background(), st, CollectionSales)
	require.NotNil(t, loaded)
	require.Empty(t, loaded)
}

func TestLoadCorruptPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	st := New(kv, testLogger())

	for _, raw := range []string{"not json", "{}", "null", `{"a":1}`} {
		require.NoError(t, kv.Set(ctx, CollectionItems, raw))
		loaded := Load[testItem](ctx, st, CollectionItems)
		require.NotNil(t, loaded, "payload %q", raw)
		require.Empty(t, loaded, "payload %q", raw)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	st := New(kv, testLogger())

	require.NoError(t, Save[testItem](ctx, st, CollectionItems, nil))
	raw, found, err := kv.Get(ctx, CollectionItems)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, "[]", raw)
}

func TestFirstLaunch(t *testing.T) {
	ctx := context.Background()
	st := New(NewMemoryKV(), testLogger())

	first, err := st.FirstLaunch(ctx)
	require.NoError(t, err)
	require.True(t, first)

	first, err = st.FirstLaunch(ctx)
	require.NoError(t, err)
	require.False(t, first)
}

func TestFirstLaunchFalseFlag(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	st := New(kv, testLogger())
	require.NoError(t, kv.Set(ctx, keyHasLaunched, "false"))

	first, err := st.FirstLaunch(ctx)
	require.NoError(t, err)
	require.True(t, first)

	first, err = st.FirstLaunch(ctx)
	require.NoError(t, err)
	require.False(t, first)
}
