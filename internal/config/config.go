package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Bus      BusConfig
	Cleanup  CleanupConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	NotifyLogFilePath  string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type BusConfig struct {
	Driver            string // "nats", "redis" or "memory"
	NatsURL           string
	NatsStream        string
	RedisURL          string
	RedisChannel      string
	NotifyConcurrency int
	PublishTimeout    time.Duration
}

type CleanupConfig struct {
	Schedule string // cron spec, empty disables the cleaner
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "9304"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			NotifyLogFilePath:  getEnv("NOTIFY_LOG_FILE_PATH", "logs/notification.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Bus: BusConfig{
			Driver:            strings.ToLower(getEnv("BUS_DRIVER", "nats")),
			NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
			NatsStream:        getEnv("NATS_STREAM", "CHATD"),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			RedisChannel:      getEnv("REDIS_CHANNEL", "chatd"),
			NotifyConcurrency: getEnvAsInt("NOTIFY_CONCURRENCY", 8),
			PublishTimeout:    getEnvAsDuration("PUBLISH_TIMEOUT", 5*time.Second),
		},
		Cleanup: CleanupConfig{
			Schedule: getEnv("CLEANUP_SCHEDULE", "@hourly"),
		},
		Otel: OtelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
