package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simplereplay/replay/internal/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Manage database migrations for replay.

Two SQLite databases are managed: the document service database
(database.path) and the local record of owned and shared projects
(membership.path).

Available subcommands:
  up      - Create or update all tables
  down    - Drop all tables
  status  - Show which tables exist`,
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Create or update all tables",
		Long: `Apply all pending database migrations.

Tables are created or updated with GORM AutoMigrate, bringing the schema
up to date without touching stored rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachSchema(cmd, func(db *database.DB, s database.Schema) error {
				if dryRun(cmd) {
					printf(cmd, "[%s] would migrate\n", s)
					return nil
				}
				if err := db.Migrate(s); err != nil {
					return fmt.Errorf("migrating %s: %w", s, err)
				}
				printf(cmd, "[%s] migrated\n", s)
				return nil
			})
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Drop all tables",
		Long: `Rollback the last applied migration by dropping the tables.

This destroys stored projects. You are asked to confirm unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !dryRun(cmd) {
				printf(cmd, "WARNING: This will drop all tables. Continue? (y/N): ")
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					printf(cmd, "Migration rollback cancelled\n")
					return nil
				}
			}
			return a.forEachSchema(cmd, func(db *database.DB, s database.Schema) error {
				if dryRun(cmd) {
					printf(cmd, "[%s] would drop\n", s)
					return nil
				}
				if err := db.Drop(s); err != nil {
					return fmt.Errorf("dropping %s: %w", s, err)
				}
				printf(cmd, "[%s] dropped\n", s)
				return nil
			})
		},
	}

	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long: `Display the current status of database migrations.

Every table of each database is listed as applied or pending.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd, "Database Migration Status\n%s\n", strings.Repeat("=", 50))
			return a.forEachSchema(cmd, func(db *database.DB, s database.Schema) error {
				tables, err := db.Status(s)
				if err != nil {
					return err
				}
				for _, t := range tables {
					state := "pending"
					if t.Present {
						state = "applied"
					}
					printf(cmd, "%-12s %-20s %s\n", s, t.Table, state)
				}
				return nil
			})
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateCmd.PersistentFlags().String("schema", "all", "database to act on (documents, membership, all)")
	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
	migrateDownCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	return migrateCmd
}

func dryRun(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("dry-run")
	return v
}

// forEachSchema opens the database of every selected schema in turn
func (a *app) forEachSchema(cmd *cobra.Command, fn func(*database.DB, database.Schema) error) error {
	which, _ := cmd.Flags().GetString("schema")

	targets := []struct {
		schema database.Schema
		path   string
	}{
		{database.SchemaDocuments, a.cfg.Database.Path},
		{database.SchemaMembership, a.cfg.Membership.Path},
	}

	matched := false
	for _, t := range targets {
		if which != "all" && which != string(t.schema) {
			continue
		}
		matched = true

		db, err := database.Initialize(t.path, a.cfg.Database.Verbose)
		if err != nil {
			return fmt.Errorf("opening %s database: %w", t.schema, err)
		}
		err = fn(db, t.schema)
		db.Close()
		if err != nil {
			return err
		}
	}
	if !matched {
		return fmt.Errorf("unknown schema %q", which)
	}
	return nil
}
