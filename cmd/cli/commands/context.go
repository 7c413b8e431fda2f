package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/internal/config"
	"github.com/jakechorley/charge-nurse/pkg/db"
	"github.com/jakechorley/charge-nurse/pkg/postgres"
	"github.com/jakechorley/charge-nurse/pkg/redisstore"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

// OpenStore connects to the storage backend selected in the config
func OpenStore(ctx context.Context, cfg config.Storage, logger *zap.Logger) (db.Database, error) {
	switch cfg.Backend {
	case config.BackendFile:
		logger.Debug("Using file storage", zap.String("path", cfg.Path))
		return db.NewFileDB(cfg.Path)

	case config.BackendPostgres:
		logger.Debug("Connecting to postgres")
		pg, err := postgres.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := pg.RunMigrations(ctx, logger); err != nil {
			pg.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pg, nil

	case config.BackendRedis:
		logger.Debug("Connecting to redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, cfg.RedisKeyPrefix), nil
	}

	return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
}
