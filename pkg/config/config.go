package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. REPLAY_SERVER_PORT
const EnvPrefix = "REPLAY"

// DefaultConfigPath is read when present; a missing file is not an error
const DefaultConfigPath = "./config/settings.yaml"

// Init initializes the configuration system.
// It is called once by the root command before any subcommand runs.
func Init() error {
	return InitFromFile(DefaultConfigPath)
}

// InitFromFile loads defaults, the given YAML file (if it exists) and environment overrides
func InitFromFile(path string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean(path)
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate checks the values held by Viper, auto-correcting the ones with safe fallbacks
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("sync.base_url") == "" {
		return fmt.Errorf("sync.base_url is required")
	}

	if viper.GetDuration("sync.save_timeout") <= 0 {
		viper.Set("sync.save_timeout", 15*time.Second)
	}
	if viper.GetDuration("sync.load_timeout") <= 0 {
		viper.Set("sync.load_timeout", 15*time.Second)
	}
	if viper.GetDuration("websocket.poll_interval") <= 0 {
		viper.Set("websocket.poll_interval", time.Second)
	}
	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Sync.BaseURL == "" {
		return fmt.Errorf("sync.base_url is required")
	}
	if c.Sync.SaveTimeout <= 0 {
		c.Sync.SaveTimeout = 15 * time.Second
	}
	if c.Sync.LoadTimeout <= 0 {
		c.Sync.LoadTimeout = 15 * time.Second
	}
	if c.RateLimiting.Enabled && (c.RateLimiting.RPS <= 0 || c.RateLimiting.Burst <= 0) {
		c.RateLimiting.RPS = 10
		c.RateLimiting.Burst = 20
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 5*1024*1024)

	// Database defaults
	viper.SetDefault("database.path", "./data/documents.db")
	viper.SetDefault("database.verbose", false)

	// Sync defaults
	viper.SetDefault("sync.base_url", "http://localhost:8080")
	viper.SetDefault("sync.save_timeout", 15*time.Second)
	viper.SetDefault("sync.load_timeout", 15*time.Second)
	viper.SetDefault("sync.http_timeout", 30*time.Second)

	// Local project record
	viper.SetDefault("membership.path", "./data/local.db")

	// Share links
	viper.SetDefault("share.base_url", "http://localhost:8080/")

	// WebSocket defaults
	viper.SetDefault("websocket.poll_interval", time.Second)
	viper.SetDefault("websocket.handshake_timeout", 10*time.Second)
	viper.SetDefault("websocket.read_buffer_size", 1024)
	viper.SetDefault("websocket.write_buffer_size", 1024)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.rps", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", false)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
}
