// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/trendlens/youtube-trending-go/internal/model"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server  ServerConfig
	YouTube YouTubeConfig
	Auth    AuthConfig
	Logging LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// YouTubeConfig contains upstream API configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type YouTubeConfig struct {
	APIKey        string
	BaseURL       string
	DefaultRegion string
	MaxResults    int
	Timeout       time.Duration
	CacheTTL      time.Duration
}

// AuthConfig contains login and session configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type AuthConfig struct {
	Enabled          bool
	CredentialsFile  string
	CookieName       string
	CookieKey        string
	CookieExpiryDays int
	AdminUsers       []string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables. An optional
// secrets file (TOML) is merged last, so secret-store values take precedence
// over both the config file and the environment.
func Load() (*Config, error) {
	// Local dev fallback; absence of .env is not an error.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	// Bare env names kept for compatibility with existing deployments.
	_ = viper.BindEnv("youtube.apikey", "APP_YOUTUBE_APIKEY", "YOUTUBE_API_KEY")
	_ = viper.BindEnv("youtube.defaultregion", "APP_YOUTUBE_DEFAULTREGION", "REGION_CODE")

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	if err := mergeSecrets(viper.GetString("secretsfile")); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.YouTube.APIKey = strings.TrimSpace(cfg.YouTube.APIKey)
	cfg.YouTube.DefaultRegion = strings.ToUpper(strings.TrimSpace(cfg.YouTube.DefaultRegion))
	if cfg.YouTube.DefaultRegion == "" {
		cfg.YouTube.DefaultRegion = "KR"
	}

	return &cfg, nil
}

// Validate checks the invariants that must hold before any fetch is attempted.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return &model.ConfigError{Message: "YouTube API key is not set (YOUTUBE_API_KEY)"}
	}
	if c.Auth.Enabled && c.Auth.CookieKey == "" {
		return &model.ConfigError{Message: "auth is enabled but auth.cookiekey is not set"}
	}
	return nil
}

// IsAdmin reports whether username is on the configured admin allow-list.
func (c *AuthConfig) IsAdmin(username string) bool {
	for _, u := range c.AdminUsers {
		if u == username {
			return true
		}
	}
	return false
}

// CookieMaxAge converts the configured expiry days to a duration. Zero days
// means session cookies only (no remember-me).
func (c *AuthConfig) CookieMaxAge() time.Duration {
	return time.Duration(c.CookieExpiryDays) * 24 * time.Hour
}

func mergeSecrets(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		// Secrets file is optional.
		return nil
	}

	secrets := viper.New()
	secrets.SetConfigFile(path)
	secrets.SetConfigType("toml")
	if err := secrets.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}
	// Set puts each key at the override level, above bound env vars, so a
	// value in the secrets file beats the same key in the environment.
	for _, key := range secrets.AllKeys() {
		viper.Set(key, secrets.Get(key))
	}
	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.baseurl", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("youtube.defaultregion", "KR")
	viper.SetDefault("youtube.maxresults", 30)
	viper.SetDefault("youtube.timeout", 15*time.Second)
	viper.SetDefault("youtube.cachettl", 10*time.Minute)

	// Auth
	viper.SetDefault("auth.enabled", false)
	viper.SetDefault("auth.credentialsfile", "credentials.toml")
	viper.SetDefault("auth.cookiename", "trending_session")
	viper.SetDefault("auth.cookiekey", "")
	viper.SetDefault("auth.cookieexpirydays", 0)
	viper.SetDefault("auth.adminusers", []string{})

	// Secrets file merged over everything else when present
	viper.SetDefault("secretsfile", "secrets.toml")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
