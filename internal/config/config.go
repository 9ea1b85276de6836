// Package config loads client configuration from a YAML file with
// environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API           APIConfig           `yaml:"api"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Store         StoreConfig         `yaml:"store"`
	Log           LogConfig           `yaml:"log"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type NotificationsConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	DebounceSeconds int `yaml:"debounce_seconds"`
	Limit           int `yaml:"limit"`
	WindowDays      int `yaml:"window_days"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads configuration, applying defaults, an optional YAML file, and
// environment overrides, in that order.
func Load(configFile string) *Config {
	c := &Config{
		API: APIConfig{BaseURL: "http://localhost:8000/api", TimeoutSeconds: 30},
		Notifications: NotificationsConfig{
			IntervalSeconds: 60,
			DebounceSeconds: 2,
			Limit:           50,
			WindowDays:      7,
		},
		Store: StoreConfig{Path: defaultStorePath()},
		Log:   LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
	}

	paths := []string{"etc/portal.yaml", "/etc/techbank-portal/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.API.BaseURL, "PORTAL_API_URL")
	envOverride(&c.Store.Path, "PORTAL_STORE_PATH")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.API.TimeoutSeconds, "PORTAL_API_TIMEOUT_SECONDS")
	envOverrideInt(&c.Notifications.IntervalSeconds, "PORTAL_NOTIFY_INTERVAL_SECONDS")
	envOverrideInt(&c.Notifications.DebounceSeconds, "PORTAL_NOTIFY_DEBOUNCE_SECONDS")
	envOverrideInt(&c.Notifications.Limit, "PORTAL_NOTIFY_LIMIT")
	envOverrideInt(&c.Notifications.WindowDays, "PORTAL_NOTIFY_WINDOW_DAYS")

	return c
}

// APITimeout returns the HTTP client timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval returns the notification refresh interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Notifications.IntervalSeconds) * time.Second
}

// UploadDebounce returns the delay applied to upload-triggered refreshes so
// the backend has time to index the new record.
func (c *Config) UploadDebounce() time.Duration {
	return time.Duration(c.Notifications.DebounceSeconds) * time.Second
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "portal.db"
	}
	return filepath.Join(dir, "techbank-portal", "portal.db")
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
