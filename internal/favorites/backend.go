package favorites

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/config"
	"movie-discovery-explorer/internal/database"
	"movie-discovery-explorer/internal/repository"
)

const redisPrefix = "movie-discovery:"

// OpenBackend connects the key-value backend selected by cfg.Favorites.Backend.
// The returned close function releases its connection and is never nil.
func OpenBackend(cfg *config.Config, log *zap.Logger) (repository.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Favorites.Backend {
	case config.BackendMemory:
		return repository.NewMemoryStore(), noop, nil

	case config.BackendFile:
		store, err := repository.NewFileStore(afero.NewOsFs(), cfg.Favorites.Dir)
		if err != nil {
			return nil, noop, err
		}
		log.Info("favorites stored in files", zap.String("dir", cfg.Favorites.Dir))
		return store, noop, nil

	case config.BackendRedis:
		rdb, err := database.NewRedis(cfg.Redis, log)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisStore(rdb, redisPrefix), func() { _ = rdb.Close() }, nil

	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewSQLStore(db, repository.DialectPostgres), func() { _ = db.Close() }, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.SQLite.Path, log)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewSQLStore(db, repository.DialectSQLite), func() { _ = db.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown favorites backend %q", cfg.Favorites.Backend)
}
