// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// StorageConfig provides settings for the S3-compatible object store.
type StorageConfig interface {
	GetStorageEndpoint() string
	GetStorageAccessKey() string
	GetStorageSecretKey() string
	GetStorageBucket() string
	GetStorageRegion() string
	GetStorageUseSSL() bool
}

// TelegramConfig provides settings for the Telegram bot client.
type TelegramConfig interface {
	GetBotToken() string
	GetPollTimeout() time.Duration
}

// StoreConfig provides settings for the metadata store.
type StoreConfig interface {
	GetFilesDBPath() string
}

// BotConfig provides settings needed by the upload orchestrator.
type BotConfig interface {
	GetMaxFileSize() int64
	GetTempDir() string
	GetBackupChannelID() int64
	GetPresignTTL() time.Duration
}

// HTTPConfig provides settings for the liveness HTTP surface of the bot.
type HTTPConfig interface {
	GetHTTPAddr() string
}

// DashboardConfig provides settings for the stats dashboard process.
type DashboardConfig interface {
	StoreConfig
	GetDashboardAddr() string
	GetCORSOrigins() []string
	GetStorageRegion() string
	GetBackupChannelID() int64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	DashboardAddr   string
	CORSOrigins     []string
	BotToken        string
	PollTimeout     time.Duration
	StorageEndpoint string
	StorageAccess   string
	StorageSecret   string
	StorageBucket   string
	StorageRegion   string
	StorageUseSSL   bool
	MaxFileSize     int64
	PresignTTL      time.Duration
	BackupChannelID int64
	FilesDBPath     string
	TempDir         string
}

// StorageConfig implementation
func (c *Config) GetStorageEndpoint() string  { return c.StorageEndpoint }
func (c *Config) GetStorageAccessKey() string { return c.StorageAccess }
func (c *Config) GetStorageSecretKey() string { return c.StorageSecret }
func (c *Config) GetStorageBucket() string    { return c.StorageBucket }
func (c *Config) GetStorageRegion() string    { return c.StorageRegion }
func (c *Config) GetStorageUseSSL() bool      { return c.StorageUseSSL }

// TelegramConfig implementation
func (c *Config) GetBotToken() string           { return c.BotToken }
func (c *Config) GetPollTimeout() time.Duration { return c.PollTimeout }

// StoreConfig implementation
func (c *Config) GetFilesDBPath() string { return c.FilesDBPath }

// BotConfig implementation
func (c *Config) GetMaxFileSize() int64        { return c.MaxFileSize }
func (c *Config) GetTempDir() string           { return c.TempDir }
func (c *Config) GetBackupChannelID() int64    { return c.BackupChannelID }
func (c *Config) GetPresignTTL() time.Duration { return c.PresignTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// DashboardConfig implementation
func (c *Config) GetDashboardAddr() string { return c.DashboardAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// DefaultMaxFileSize is the upload size gate: 4 GiB, boundary inclusive.
const DefaultMaxFileSize = 4 << 30

// Load reads configuration from environment variables for the bot process.
// Missing chat or storage credentials are a fatal configuration error.
func Load() (*Config, error) {
	cfg := load()

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.StorageAccess == "" || cfg.StorageSecret == "" || cfg.StorageBucket == "" {
		return nil, fmt.Errorf("STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY and STORAGE_BUCKET are required")
	}

	return cfg, nil
}

// LoadDashboard reads configuration for the read-only dashboard process.
// The dashboard only reads the metadata file, so chat and storage
// credentials are not required.
func LoadDashboard() (*Config, error) {
	return load(), nil
}

func load() *Config {
	_ = godotenv.Load()

	region := normalizeRegion(getEnv("STORAGE_REGION", "us-east-1"))

	endpoint := getEnv("STORAGE_ENDPOINT", "")
	if endpoint == "" {
		endpoint = fmt.Sprintf("s3.%s.wasabisys.com", region)
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":5000"),
		DashboardAddr:   getEnv("DASHBOARD_ADDR", ":5001"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),
		BotToken:        getEnv("BOT_TOKEN", ""),
		PollTimeout:     mustDuration(getEnv("POLL_TIMEOUT", "30s")),
		StorageEndpoint: endpoint,
		StorageAccess:   getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecret:   getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		StorageRegion:   region,
		StorageUseSSL:   strings.EqualFold(getEnv("STORAGE_USE_SSL", "true"), "true"),
		MaxFileSize:     mustInt64(getEnv("MAX_FILE_SIZE", strconv.FormatInt(DefaultMaxFileSize, 10))),
		PresignTTL:      mustDuration(getEnv("PRESIGN_TTL", "24h")),
		BackupChannelID: mustInt64(getEnv("BACKUP_CHANNEL_ID", "0")),
		FilesDBPath:     getEnv("FILES_DB_PATH", "files.json"),
		TempDir:         getEnv("TEMP_DIR", "temp_files"),
	}
}

// normalizeRegion strips prefixes that operators sometimes paste into the
// region field (a full URL, or the "s3." host prefix from an endpoint name).
func normalizeRegion(region string) string {
	region = strings.TrimSpace(region)
	region = strings.TrimPrefix(region, "https://")
	region = strings.TrimPrefix(region, "http://")
	region = strings.TrimPrefix(region, "s3.")
	return region
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
