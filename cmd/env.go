package cmd

import (
	"context"
	"fmt"

	"storage-probe/core/config"
	"storage-probe/core/database"
	"storage-probe/core/logger"
	"storage-probe/core/storage"
	"storage-probe/feature/workflow"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// probeEnv bundles what every command needs: configuration, a logger, the
// storage client and, when requested, the history database.
type probeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
	db     *gorm.DB
}

// newProbeEnv loads configuration and builds the storage client. With
// withDB set, a database connection is attempted and the history table
// migrated; a failure there only disables history.
func newProbeEnv(ctx context.Context, withDB bool) (*probeEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	env := &probeEnv{cfg: cfg, logger: logg, client: client}
	if withDB {
		env.db = connectHistory(cfg.Database, logg)
	}
	return env, nil
}

func connectHistory(cfg database.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		return nil
	}
	if err := workflow.Migrate(db); err != nil {
		logg.Warn("Failed to migrate run history table, run history disabled", zap.Error(err))
		return nil
	}
	logg.Info("Connected to history database", zap.String("driver", cfg.Driver))
	return db
}

func (e *probeEnv) service() *workflow.Service {
	return workflow.NewService(e.client, e.cfg.Storage.Bucket, e.logger, e.db)
}

func (e *probeEnv) close() {
	_ = e.client.Close()
	_ = e.logger.Sync()
}
