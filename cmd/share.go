package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/internal/deeplink"
)

func newShareCmd(a *app) *cobra.Command {
	shareCmd := &cobra.Command{
		Use:   "share <project|link>",
		Short: "Print share links for a project",
		Long: `Print the edit, view and playlist links for a saved project.

Edit links open the project for changes. View links and playlist links open
it read-only.

Example:
  replay share abc
  replay share abc --game g1 --playlist p1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := deeplink.Parse(args[0])
			if err != nil {
				return err
			}
			if game, _ := cmd.Flags().GetString("game"); game != "" {
				link.GameID = game
			}
			playlist, _ := cmd.Flags().GetString("playlist")
			base := a.cfg.Share.BaseURL

			edit := deeplink.Link{ProjectID: link.ProjectID, GameID: link.GameID}
			editURL, err := deeplink.BuildShareURL(base, edit)
			if err != nil {
				return err
			}
			edit.View = true
			viewURL, err := deeplink.BuildShareURL(base, edit)
			if err != nil {
				return err
			}

			printf(cmd, "Edit:     %s\n", editURL)
			printf(cmd, "View:     %s\n", viewURL)

			if playlist != "" {
				playlistURL, err := deeplink.BuildShareURL(base, deeplink.Link{ProjectID: link.ProjectID, PlaylistID: playlist})
				if err != nil {
					return err
				}
				printf(cmd, "Playlist: %s\n", playlistURL)
			}
			return nil
		},
	}
	shareCmd.Flags().String("game", "", "game to select when the link opens")
	shareCmd.Flags().String("playlist", "", "also print a read-only link for this playlist")
	return shareCmd
}
