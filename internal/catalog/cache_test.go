package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(filepath.Join(t.TempDir(), "nested", "catalog_cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCache_SaveAndLoad(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	products := []Product{
		{ID: 2, Title: "Mouse", Category: "peripherals", Brand: "Clack", Rating: 3.9},
		{ID: 1, Title: "Laptop", Category: "laptops", Brand: "Acme", Rating: 4.5},
	}
	require.NoError(t, cache.Save(ctx, products))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Load orders by ID regardless of insertion order
	assert.Equal(t, 1, loaded[0].ID)
	assert.Equal(t, "Laptop", loaded[0].Title)
	assert.Equal(t, 2, loaded[1].ID)
	assert.InDelta(t, 3.9, loaded[1].Rating, 1e-9)
}

func TestCache_SaveUpserts(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, []Product{{ID: 1, Title: "Laptop", Rating: 4.0}}))
	require.NoError(t, cache.Save(ctx, []Product{{ID: 1, Title: "Laptop Pro", Rating: 4.8}}))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Laptop Pro", loaded[0].Title)
	assert.InDelta(t, 4.8, loaded[0].Rating, 1e-9)
}

func TestCache_LoadEmpty(t *testing.T) {
	cache := newTestCache(t)

	loaded, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestNewCache_RequiresPath(t *testing.T) {
	_, err := NewCache("")
	assert.Error(t, err)
}
