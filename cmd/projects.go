package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/internal/session"
)

func newProjectsCmd(a *app) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the projects remembered on this machine",
		Long: `List or forget the projects this machine has saved or opened.

Projects saved here are owned; projects opened from someone else's link are
shared.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List remembered projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *session.Session) error {
				summaries, err := s.Engine.ListProjects(ctx)
				if err != nil {
					return err
				}
				if len(summaries) == 0 {
					printf(cmd, "No projects yet\n")
					return nil
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tACCESS\tUPDATED")
				for _, p := range summaries {
					access := "owned"
					if p.Shared {
						access = "shared"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, access, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
				}
				return w.Flush()
			})
		},
	}

	forgetCmd := &cobra.Command{
		Use:   "forget <id>",
		Short: "Remove a project from this machine's list",
		Long: `Forget a project locally. The stored document is not deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *session.Session) error {
				if err := s.Engine.ForgetProject(ctx, args[0]); err != nil {
					return err
				}
				printf(cmd, "Forgot project %s\n", args[0])
				return nil
			})
		},
	}

	projectsCmd.AddCommand(listCmd, forgetCmd)
	return projectsCmd
}

// withStore opens a session without resolving a link
func (a *app) withStore(cmd *cobra.Command, fn func(context.Context, *session.Session) error) error {
	s, err := session.Open(session.Options{Config: a.cfg, Logger: a.logger})
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s)
}
