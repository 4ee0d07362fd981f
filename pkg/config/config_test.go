package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings file",
			content: `
server:
  host: "127.0.0.1"
  port: 8081
sync:
  base_url: "http://docs.internal:9000"
`,
			check: func(t *testing.T) {
				assert.Equal(t, 8081, GetInt("server.port"))
				assert.Equal(t, "http://docs.internal:9000", GetString("sync.base_url"))
			},
		},
		{
			name: "environment variable override",
			content: `
server:
  port: 8081
`,
			env: map[string]string{"REPLAY_SERVER_PORT": "9090"},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
			},
		},
		{
			name: "missing config file with defaults",
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, 15*time.Second, GetDuration("sync.save_timeout"))
				assert.True(t, GetBool("rate_limiting.enabled"))
			},
		},
		{
			name: "invalid port is rejected",
			content: `
server:
  port: 70000
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := InitFromFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig_Unmarshal(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	require.NoError(t, InitFromFile(filepath.Join(t.TempDir(), "absent.yaml")))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/local.db", cfg.Membership.Path)
	assert.Equal(t, time.Second, cfg.WebSocket.PollInterval)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Sync:   SyncConfig{BaseURL: "http://localhost:8080"},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 0},
				Sync:   SyncConfig{BaseURL: "http://localhost:8080"},
			},
			wantErr: true,
		},
		{
			name: "missing sync base url",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 15*time.Second, tt.config.Sync.SaveTimeout)
		})
	}
}
