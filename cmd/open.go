package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/simplereplay/replay/pkg/errors"

	"github.com/simplereplay/replay/internal/deeplink"
	"github.com/simplereplay/replay/internal/session"
)

func newOpenCmd(a *app) *cobra.Command {
	openCmd := &cobra.Command{
		Use:   "open [link]",
		Short: "Open a project from a share link",
		Long: `Open a project the way a share link would and print what it shows.

Without a link the demonstration project is opened. The link may be a full
URL, a query string or a bare project id.

Example:
  replay open
  replay open "https://replay.example/?project=abc&mode=view"
  replay open abc --clips`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, args, func(ctx context.Context, s *session.Session, res deeplink.Result) error {
				withClips, _ := cmd.Flags().GetBool("clips")
				printSummary(cmd, s, res, withClips)
				return nil
			})
		},
	}
	openCmd.Flags().Bool("clips", false, "list the visible clips")
	return openCmd
}

// withSession opens a session, resolves the optional link argument and runs fn.
// A link to a missing project is reported as NOT_FOUND.
func (a *app) withSession(cmd *cobra.Command, args []string, fn func(context.Context, *session.Session, deeplink.Result) error) error {
	var link deeplink.Link
	if len(args) == 1 {
		var err error
		if link, err = deeplink.Parse(args[0]); err != nil {
			return err
		}
	}

	s, err := session.Open(session.Options{Config: a.cfg, Logger: a.logger})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	res, err := s.Start(ctx, link)
	if err != nil {
		return fmt.Errorf("opening project: %w", err)
	}
	if res.NotFound {
		return apperrors.NotFound("project", link.ProjectID)
	}
	return fn(ctx, s, res)
}

func printSummary(cmd *cobra.Command, s *session.Session, res deeplink.Result, withClips bool) {
	st := s.Store

	id := st.CurrentProjectID()
	if id == "" {
		id = "(not saved)"
	}
	access := "owned"
	switch {
	case res.Demo:
		access = "demo"
	case res.Shared:
		access = "shared"
	}
	if st.ReadOnly() {
		access += ", read-only"
	}

	printf(cmd, "Project:  %s\n", id)
	printf(cmd, "Title:    %s\n", st.Title())
	printf(cmd, "Access:   %s\n", access)
	printf(cmd, "Mode:     %s\n", st.Mode())

	if game, ok := st.CurrentGame(); ok {
		printf(cmd, "Game:     %s (%s)\n", game.Title, game.VideoRef)
	}

	visible := st.VisibleClips()
	printf(cmd, "Clips:    %d of %d visible\n", len(visible), len(st.Clips()))
	printf(cmd, "Playlists: %d\n", len(st.Playlists()))

	if !withClips {
		return
	}
	labels := make(map[string]string)
	for _, tt := range st.TagTypes() {
		labels[tt.ID] = tt.Label
	}
	for _, c := range visible {
		flags := make([]string, 0)
		for _, f := range st.ClipFlags(c.ID) {
			flags = append(flags, string(f))
		}
		printf(cmd, "  %-16s %8.1f-%-8.1f %-12s %s\n", c.ID, c.StartSec, c.EndSec, labels[c.TagTypeID], strings.Join(flags, ","))
	}
}
