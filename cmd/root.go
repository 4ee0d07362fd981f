package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/pkg/config"
	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"
)

// app carries what the root command loads for its subcommands
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "replay",
		Short: "Clip annotation projects with cloud sync",
		Long: `replay - annotate recorded games with clips, flags and playlists

Projects live in a document service (replay serve) and are opened from
share links. Links carrying mode=view or a playlist open read-only.

Features:
  • Document service with field-level merge and change notifications
  • Save, load and list projects, owned or shared
  • Share links for editing, viewing and playlists`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version and help don't need config
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", config.DefaultConfigPath, "path to the settings file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	rootCmd.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newVersionCmd(),
		newOpenCmd(a),
		newSaveCmd(a),
		newShareCmd(a),
		newProjectsCmd(a),
		newWatchCmd(a),
	)
	return rootCmd
}

// load reads the configuration and builds the logger. Flags given on the
// command line win over the settings file.
func (a *app) load(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if err := config.InitFromFile(path); err != nil {
		return apperrors.ConfigError(path, err.Error())
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return apperrors.ConfigError(path, err.Error())
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	jsonLogs := cfg.Logging.Format == "json"
	if cmd.Flags().Changed("json-logs") {
		jsonLogs, _ = cmd.Flags().GetBool("json-logs")
	}
	logging.Configure(level, jsonLogs)
	a.logger = logging.New(level, jsonLogs, cmd.ErrOrStderr())
	a.logger.WithField("config", path).Debug("Configuration loaded")
	return nil
}

// printf writes to the command's output, ignoring write errors like fmt.Printf
func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
