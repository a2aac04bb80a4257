package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listParams struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Query string `json:"q"`
}

func TestNewKey(t *testing.T) {
	t.Run("nil params", func(t *testing.T) {
		key, err := NewKey(KindCart, nil)
		require.NoError(t, err)
		assert.Equal(t, Key{Kind: KindCart}, key)
	})

	t.Run("equal params collide", func(t *testing.T) {
		a, err := NewKey(KindProducts, listParams{Page: 1, Limit: 12, Query: "chair"})
		require.NoError(t, err)
		b, err := NewKey(KindProducts, listParams{Page: 1, Limit: 12, Query: "chair"})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different params differ", func(t *testing.T) {
		a, err := NewKey(KindProducts, listParams{Query: "chair"})
		require.NoError(t, err)
		b, err := NewKey(KindProducts, listParams{Query: "desk"})
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("kind separates equal params", func(t *testing.T) {
		a, err := NewKey(KindProducts, listParams{Page: 1})
		require.NoError(t, err)
		b, err := NewKey(KindUsers, listParams{Page: 1})
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestGetOrFetchCaches(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Fetch(ctx, store, KindCart, nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := Fetch(ctx, store, KindCart, nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read must come from cache")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Fetch(ctx, store, KindOrders, nil, fetch)
	require.NoError(t, err)

	store.Invalidate(KindOrders)

	got, err := Fetch(ctx, store, KindOrders, nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, got, "stale entry must be refetched")
	assert.Equal(t, 2, calls)
}

func TestInvalidateCoversAllParamSets(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	calls := map[string]int{}
	fetchFor := func(q string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			calls[q]++
			return q, nil
		}
	}

	_, err := Fetch(ctx, store, KindProducts, listParams{Query: "chair"}, fetchFor("chair"))
	require.NoError(t, err)
	_, err = Fetch(ctx, store, KindProducts, listParams{Query: "desk"}, fetchFor("desk"))
	require.NoError(t, err)

	store.Invalidate(KindProducts)

	_, err = Fetch(ctx, store, KindProducts, listParams{Query: "chair"}, fetchFor("chair"))
	require.NoError(t, err)
	_, err = Fetch(ctx, store, KindProducts, listParams{Query: "desk"}, fetchFor("desk"))
	require.NoError(t, err)

	assert.Equal(t, 2, calls["chair"])
	assert.Equal(t, 2, calls["desk"])
}

func TestInvalidateParamsIsScoped(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, err := Fetch(ctx, store, KindProduct, listParams{Page: 1}, fetch)
	require.NoError(t, err)
	_, err = Fetch(ctx, store, KindProduct, listParams{Page: 2}, fetch)
	require.NoError(t, err)

	store.InvalidateParams(KindProduct, listParams{Page: 1})

	_, err = Fetch(ctx, store, KindProduct, listParams{Page: 2}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "untouched param set must stay cached")

	_, err = Fetch(ctx, store, KindProduct, listParams{Page: 1}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSupersededFetchNotCached(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	// Seed, then invalidate so the entry exists with a bumped generation.
	_, err := Fetch(ctx, store, KindCart, nil, func(context.Context) (string, error) {
		return "old", nil
	})
	require.NoError(t, err)
	store.Invalidate(KindCart)

	// A fetch that is itself overtaken by another invalidation mid-flight.
	got, err := Fetch(ctx, store, KindCart, nil, func(context.Context) (string, error) {
		store.Invalidate(KindCart)
		return "in-flight", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "in-flight", got, "caller still receives the fetched value")

	_, fresh := store.Peek(KindCart, nil)
	assert.False(t, fresh, "superseded fetch must not be cached as fresh")
}

func TestInvalidationDuringFirstFetchNotCached(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidate kind", func(t *testing.T) {
		store := NewStore(nil)

		// The very first fetch for the key; the mutation lands before it does.
		got, err := Fetch(ctx, store, KindCart, nil, func(context.Context) (string, error) {
			store.Invalidate(KindCart)
			return "pre-mutation", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "pre-mutation", got)

		_, fresh := store.Peek(KindCart, nil)
		assert.False(t, fresh, "superseded first fetch must not be cached as fresh")
	})

	t.Run("invalidate params", func(t *testing.T) {
		store := NewStore(nil)

		_, err := Fetch(ctx, store, KindProduct, listParams{Page: 1}, func(context.Context) (string, error) {
			store.InvalidateParams(KindProduct, listParams{Page: 1})
			return "pre-mutation", nil
		})
		require.NoError(t, err)

		_, fresh := store.Peek(KindProduct, listParams{Page: 1})
		assert.False(t, fresh)
	})

	t.Run("clear", func(t *testing.T) {
		store := NewStore(nil)

		_, err := Fetch(ctx, store, KindOrders, nil, func(context.Context) (string, error) {
			store.Clear()
			return "other-session", nil
		})
		require.NoError(t, err)

		_, fresh := store.Peek(KindOrders, nil)
		assert.False(t, fresh, "fetch crossing a clear must not repopulate the cache")
	})
}

func TestFetchError(t *testing.T) {
	store := NewStore(nil)

	wantErr := assert.AnError
	_, err := Fetch(context.Background(), store, KindUsers, nil, func(context.Context) (int, error) {
		return 0, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, cached := store.Peek(KindUsers, nil)
	assert.False(t, cached, "failed fetch must not populate the cache")
}

func TestClear(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	_, err := Fetch(ctx, store, KindCart, nil, func(context.Context) (string, error) { return "v", nil })
	require.NoError(t, err)

	store.Clear()

	_, cached := store.Peek(KindCart, nil)
	assert.False(t, cached)
}
