package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations on the local store",
	Long: `Create or update the schema of a local libsql database.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).
MySQL and PostgreSQL schemas are owned by the production system and are never
migrated from here.

Examples:
  herdstats migrate      # Run all pending migrations
  herdstats migrate 3    # Migrate to version 3
  herdstats migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	if app.Client.Driver != database.DriverLibSQL {
		return fmt.Errorf("migrations only apply to the %s driver, got %q", database.DriverLibSQL, app.Client.Driver)
	}

	m := migrate.New(app.Client.DB, app.Logger)
	current, _, err := m.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", current)

	if len(args) == 0 {
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
		return nil
	}

	target, err := strconv.Atoi(args[0])
	if err != nil || target < 0 {
		return fmt.Errorf("invalid version number: %s", args[0])
	}
	if target == current {
		fmt.Fprintln(cmd.OutOrStdout(), "Already at target version")
		return nil
	}
	if err := m.To(ctx, target); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d\n", target)
	return nil
}
