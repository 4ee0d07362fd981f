package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/internal/deeplink"
	"github.com/simplereplay/replay/internal/session"
)

func newSaveCmd(a *app) *cobra.Command {
	saveCmd := &cobra.Command{
		Use:   "save [link]",
		Short: "Save a project to the document service",
		Long: `Open a project, optionally retitle it, and save it.

Without a link a new project is created from the demonstration data. The
saved project is recorded as owned and its edit link is printed.

Example:
  replay save --title "Final vs. Lions"
  replay save abc --title "Renamed"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, args, func(ctx context.Context, s *session.Session, _ deeplink.Result) error {
				if title, _ := cmd.Flags().GetString("title"); title != "" {
					if err := s.Store.SetTitle(title); err != nil {
						return err
					}
				}

				id, err := s.Engine.SaveToCloud(ctx)
				if err != nil {
					return err
				}

				link, err := s.ShareURL(deeplink.Link{ProjectID: id})
				if err != nil {
					return err
				}
				printf(cmd, "Saved project %s\n", id)
				printf(cmd, "Edit link: %s\n", link)
				return nil
			})
		},
	}
	saveCmd.Flags().String("title", "", "project title")
	return saveCmd
}
