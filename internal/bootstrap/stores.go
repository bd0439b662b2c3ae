package bootstrap

import (
	"context"
	"log/slog"

	"github.com/genie-desktop/genie-backend/internal/recall"
	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideSessionStore(lc fx.Lifecycle, cfg *Config, redisClient *redis.Client, logger *slog.Logger) session.Store {
	if cfg.SessionBackend == "redis" && redisClient != nil {
		return session.NewRedisStore(redisClient)
	}

	store := session.NewMemoryStore(session.MemoryConfig{
		MaxIdle:     cfg.SessionMaxIdle,
		MaxSessions: cfg.SessionMaxSessions,
	}, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			store.StartJanitor()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			store.Close()
			return nil
		},
	})
	return store
}

func ProvideArchive(db *gorm.DB) *session.Archive {
	return session.NewArchive(db)
}

func ProvideRecallStore(qdrantClient *qdrant.Client) *recall.Store {
	return recall.NewStore(qdrantClient)
}

func RunMigrations(archive *session.Archive) error {
	return archive.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideSessionStore,
		ProvideArchive,
		ProvideRecallStore,
	),
	fx.Invoke(RunMigrations),
)
