package repository

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/database"
)

func setupTestSQLStore(t *testing.T) (*SQLStore, func()) {
	db, err := database.NewSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)

	return NewSQLStore(db, DialectSQLite), func() { db.Close() }
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) (KeyValueStore, func()){
		"memory": func(t *testing.T) (KeyValueStore, func()) {
			return NewMemoryStore(), func() {}
		},
		"file": func(t *testing.T) (KeyValueStore, func()) {
			s, err := NewFileStore(afero.NewMemMapFs(), "/data")
			require.NoError(t, err)
			return s, func() {}
		},
		"sqlite": func(t *testing.T) (KeyValueStore, func()) {
			return setupTestSQLStore(t)
		},
	}

	for name, setup := range stores {
		t.Run(name, func(t *testing.T) {
			store, cleanup := setup(t)
			defer cleanup()
			ctx := context.Background()

			_, err := store.Get(ctx, "favorites")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, "favorites", "[5]"))
			v, err := store.Get(ctx, "favorites")
			require.NoError(t, err)
			assert.Equal(t, "[5]", v)

			require.NoError(t, store.Set(ctx, "favorites", "[5,9]"))
			v, err = store.Get(ctx, "favorites")
			require.NoError(t, err)
			assert.Equal(t, "[5,9]", v)

			_, err = store.Get(ctx, "other")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "/state")
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "favorites", "[1]"))

	data, err := afero.ReadFile(fs, "/state/favorites.json")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(data))

	exists, err := afero.Exists(fs, "/state/favorites.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStoreRequiresDir(t *testing.T) {
	_, err := NewFileStore(afero.NewMemMapFs(), " ")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := NewSQLStore(nil, DialectPostgres)
	lite := NewSQLStore(nil, DialectSQLite)

	q := "SELECT value FROM kv_store WHERE name = $1 AND x = $12"
	assert.Equal(t, q, pg.rebind(q))
	assert.Equal(t, "SELECT value FROM kv_store WHERE name = ? AND x = ?", lite.rebind(q))
}
