package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/config"
)

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
	}{
		{"memory", config.BackendMemory},
		{"file", config.BackendFile},
		{"sqlite", config.BackendSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Favorites.Backend = tt.backend
			cfg.Favorites.Dir = filepath.Join(dir, tt.name)
			cfg.SQLite.Path = filepath.Join(dir, tt.name, "favorites.db")

			kv, closeFn, err := OpenBackend(cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeFn()

			ctx := context.Background()
			store := NewStore(kv, cfg.Favorites.Key, zap.NewNop())
			require.NoError(t, store.Add(ctx, 603))
			assert.Equal(t, []int{603}, NewStore(kv, cfg.Favorites.Key, zap.NewNop()).List(ctx))
		})
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	cfg := config.Default()
	cfg.Favorites.Backend = "etcd"

	_, closeFn, err := OpenBackend(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
