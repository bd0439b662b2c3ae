package bootstrap

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	OllamaURL    string
	Model        string
	ModelTimeout time.Duration

	ScreenshotBinary string
	TesseractBinary  string

	SessionBackend     string // "memory" or "redis"
	SessionMaxIdle     time.Duration
	SessionMaxSessions int

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QdrantHost   string
	QdrantPort   int
	QdrantAPIKey string
	RecallOn     bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		Model:        getEnv("OLLAMA_MODEL", "llama3.1"),
		ModelTimeout: getEnvDuration("OLLAMA_TIMEOUT", 120*time.Second),

		ScreenshotBinary: getEnv("SCREENSHOT_BINARY", ""),
		TesseractBinary:  getEnv("TESSERACT_BINARY", ""),

		SessionBackend:     getEnv("SESSION_BACKEND", "memory"),
		SessionMaxIdle:     getEnvDuration("SESSION_MAX_IDLE", 0),
		SessionMaxSessions: getEnvInt("SESSION_MAX_SESSIONS", 0),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		QdrantHost:   getEnv("QDRANT_HOST", ""),
		QdrantPort:   getEnvInt("QDRANT_PORT", 6334),
		QdrantAPIKey: getEnv("QDRANT_API_KEY", ""),
		RecallOn:     getEnv("QDRANT_HOST", "") != "",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
