package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all bot settings in correct types
type Config struct {
	BotToken          string
	DownloadDir       string
	MaxFileSizeMB     int
	MaxConcurrentJobs int
	CleanupAfter      time.Duration
}

// Load: The only way to get config in the app
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:          getEnv("TELEGRAM_BOT_TOKEN", ""),
		DownloadDir:       getEnv("DOWNLOAD_DIR", "downloads"),
		MaxFileSizeMB:     getEnvAsInt("MAX_FILE_SIZE_MB", 49),
		MaxConcurrentJobs: getEnvAsInt("MAX_CONCURRENT_JOBS", 3),
		CleanupAfter:      time.Duration(getEnvAsInt("CLEAN_UP_AFTER_MINUTES", 60)) * time.Minute,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	str := getEnv(key, "")
	if val, err := strconv.Atoi(str); err == nil {
		return val
	}
	return fallback
}

// validate ensures the bot won't crash due to misconfiguration
func validate(cfg *Config) error {
	if cfg.BotToken == "" {
		return errors.New("config: TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.MaxConcurrentJobs < 1 {
		log.Println("⚠️ Warning: MAX_CONCURRENT_JOBS must be at least 1. Resetting to 3.")
		cfg.MaxConcurrentJobs = 3
	}
	if cfg.MaxFileSizeMB < 1 {
		log.Println("⚠️ Warning: MAX_FILE_SIZE_MB must be at least 1. Resetting to 49.")
		cfg.MaxFileSizeMB = 49
	}
	if _, err := os.Stat(cfg.DownloadDir); os.IsNotExist(err) {
		log.Printf("📂 Notice: Creating missing download directory: %s\n", cfg.DownloadDir)
		os.MkdirAll(cfg.DownloadDir, 0755)
	}
	return nil
}
