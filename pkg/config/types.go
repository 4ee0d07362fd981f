package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Sync         SyncConfig       `mapstructure:"sync"`
	Membership   MembershipConfig `mapstructure:"membership"`
	Share        ShareConfig      `mapstructure:"share"`
	WebSocket    WebSocketConfig  `mapstructure:"websocket"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Monitoring   MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig contains HTTP server settings for the document service
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains the document database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// SyncConfig contains the client side settings for talking to the document service
type SyncConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	SaveTimeout time.Duration `mapstructure:"save_timeout"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// MembershipConfig locates the local record of owned and shared projects
type MembershipConfig struct {
	Path string `mapstructure:"path"`
}

// ShareConfig contains settings for building shareable links
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// WebSocketConfig contains settings for the project watch endpoint
type WebSocketConfig struct {
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	ReadBufferSize   int           `mapstructure:"read_buffer_size"`
	WriteBufferSize  int           `mapstructure:"write_buffer_size"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	RPS     int  `mapstructure:"rps"`
	Burst   int  `mapstructure:"burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MonitoringConfig contains monitoring settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}
