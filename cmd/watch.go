package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/internal/deeplink"
	"github.com/simplereplay/replay/internal/session"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <project|link>",
		Short: "Reload a project whenever it changes",
		Long: `Open a project and reload it each time the stored document changes.

Runs until interrupted. Changes are not applied over unsaved local edits.

Example:
  replay watch abc
  replay watch "https://replay.example/?project=abc&mode=view"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, args, func(ctx context.Context, s *session.Session, res deeplink.Result) error {
				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				printSummary(cmd, s, res, false)
				return s.Watch(ctx, func(found bool) {
					if !found {
						printf(cmd, "Project %s is gone\n", res.Link.ProjectID)
						return
					}
					printf(cmd, "Reloaded %q: %d clips, %d playlists\n", s.Store.Title(), len(s.Store.Clips()), len(s.Store.Playlists()))
				})
			})
		},
	}
}
