package main

import (
	"context"
	"fmt"

	"songrelay/internal/adapter/repo"
	"songrelay/internal/domain"
	"songrelay/internal/infra"
)

// buildJobStore opens the backend selected by JOB_STORE. The returned func
// releases its connections.
func buildJobStore(ctx context.Context, cfg *infra.Config, logger infra.Logger) (domain.JobStore, func(), error) {
	switch cfg.JobStore {
	case infra.JobStoreMemory, "":
		return repo.NewMemoryJobStore(), func() {}, nil

	case infra.JobStoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.JobTTL).Msg("redis job store ready")
		return repo.NewRedisJobStore(client, cfg.JobTTL), func() { _ = client.Close() }, nil

	case infra.JobStorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := repo.NewJobRepository(infra.NewSQLRunner(pool, logger))
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure song_jobs schema: %w", err)
		}
		logger.Info().Msg("postgres job store ready")
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown job store %q", cfg.JobStore)
	}
}
