package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/api"
	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/internal/database"
	"github.com/simplereplay/replay/internal/services/documents"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		serverHost string
		serverPort int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the document service",
		Long: `Start the replay document service with the configured settings.

The service stores project documents in SQLite, answers the save, load and
list requests of replay clients, and pushes change notifications over
WebSocket.

Example:
  replay serve
  replay serve --port 9090
  replay serve --host 0.0.0.0 --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServer(cmd, serverHost, serverPort)
		},
	}

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
	return serveCmd
}

func (a *app) runServer(cmd *cobra.Command, host string, port int) error {
	cfg := a.cfg
	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}
	log := a.logger.WithField("component", "server")

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(database.SchemaDocuments); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	deps := &types.Dependencies{
		DB:              db,
		DocumentService: documents.NewService(documents.NewRepository(db.DB)),
		Logger:          a.logger,
		Build:           types.BuildInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime},
		Watch: types.WatchSettings{
			PollInterval:     cfg.WebSocket.PollInterval,
			HandshakeTimeout: cfg.WebSocket.HandshakeTimeout,
			ReadBufferSize:   cfg.WebSocket.ReadBufferSize,
			WriteBufferSize:  cfg.WebSocket.WriteBufferSize,
		},
		RateLimit: types.RateLimitSettings{
			Enabled: cfg.RateLimiting.Enabled,
			RPS:     cfg.RateLimiting.RPS,
			Burst:   cfg.RateLimiting.Burst,
		},
	}
	if cfg.Monitoring.Enabled {
		deps.MetricsPath = cfg.Monitoring.MetricsPath
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	srv := api.NewServer(addr, cfg.Server)
	srv.SetDependencies(deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
		close(serverErr)
	}()

	log.WithField("addr", addr).Info("Document service is ready to handle requests")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case runErr = <-serverErr:
		log.WithError(runErr).Error("Server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Server gracefully stopped")
	return runErr
}
