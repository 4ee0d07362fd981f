package types

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simplereplay/replay/internal/database"
	"github.com/simplereplay/replay/internal/services/documents"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	DocumentService documents.Service
	Logger          *logrus.Logger
	Build           BuildInfo
	Watch           WatchSettings
	RateLimit       RateLimitSettings
	// MetricsPath exposes Prometheus metrics when non-empty
	MetricsPath string
}

// BuildInfo is reported by the version endpoint
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

// WatchSettings controls the project watch websocket
type WatchSettings struct {
	PollInterval     time.Duration
	HandshakeTimeout time.Duration
	ReadBufferSize   int
	WriteBufferSize  int
}

// RateLimitSettings applies to the project routes
type RateLimitSettings struct {
	Enabled bool
	RPS     int
	Burst   int
}
