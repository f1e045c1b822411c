package database

import (
	"context"
	"fmt"

	"storeflow/internal/config"
	"storeflow/internal/repository"

	"github.com/rs/zerolog/log"
)

// Open builds the repositories for the configured backend. The returned func releases the
// underlying connections.
func Open(ctx context.Context, cfg *config.Config) (*repository.Repos, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := NewConnection(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("Connected to PostgreSQL")

		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewPostgresRepos(db), closeFn, nil

	case config.BackendMongo:
		client, err := NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := EnsureIndexes(ctx, db); err != nil {
			log.Warn().Err(err).Msg("Failed to ensure mongo indexes")
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return repository.NewMongoRepos(db), closeFn, nil

	default:
		log.Info().Msg("Using in-memory store")
		return repository.NewMemoryRepos(), func() {}, nil
	}
}
