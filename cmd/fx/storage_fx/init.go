package storage_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/internal/config"
	"apnadoctor/internal/infra"
)

var Module = fx.Provide(provideFileStore)

func provideFileStore(cfg config.Config, log *zap.Logger) (infra.FileStore, error) {
	store, err := infra.NewFileStore(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Info("file store ready", zap.String("driver", cfg.Storage.Driver))
	return store, nil
}
