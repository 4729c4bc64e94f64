package bootstrap

import (
	"context"
	"log/slog"

	"cinema-ticketing/internal/infra/filestore"
	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/usecase/shared"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewDocumentStore,
	),
)

// NewDocumentStore picks the backend from STORAGE_DRIVER and puts the
// Redis read cache in front of it when REDIS_ADDR is set.
func NewDocumentStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.DocumentStore, error) {
	var store shared.DocumentStore
	switch cfg.Storage.Driver {
	case config.StorageDriverCloudinary:
		cld, err := filestore.NewCloudinaryStore(cfg)
		if err != nil {
			return nil, err
		}
		store = cld
	default:
		store = filestore.NewLocalStore(cfg)
	}
	logger.Info("document storage ready", "driver", cfg.Storage.Driver)

	if cfg.Cache.RedisAddr == "" {
		return store, nil
	}

	client := filestore.NewRedisClient(cfg)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("document cache enabled", "redis", cfg.Cache.RedisAddr, "ttl", cfg.Cache.DocumentTTL.String())

	return filestore.NewCachedStore(store, filestore.NewRedisCache(client), cfg.Cache.DocumentTTL, logger), nil
}
