package bootstrap

import (
	"github.com/genie-desktop/genie-backend/internal/ollama"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ProvideOllamaClient(cfg *Config) *ollama.Client {
	return ollama.NewClient(ollama.Config{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.Model,
		Timeout: cfg.ModelTimeout,
	})
}

// ProvideRedisClient returns nil unless the redis session backend is
// selected; every consumer treats a nil client as "not configured".
func ProvideRedisClient(cfg *Config) *redis.Client {
	if cfg.SessionBackend != "redis" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// ProvideDatabase returns nil when no DSN is configured; the exchange
// archive is disabled in that case.
func ProvideDatabase(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, nil
	}
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// ProvideQdrantClient returns nil when recall is not configured.
func ProvideQdrantClient(cfg *Config) (*qdrant.Client, error) {
	if !cfg.RecallOn {
		return nil, nil
	}
	return qdrant.NewClient(&qdrant.Config{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
	})
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideOllamaClient,
		ProvideRedisClient,
		ProvideDatabase,
		ProvideQdrantClient,
	),
)
