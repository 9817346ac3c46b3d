package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and indexes",
	Long: `Create or update the schema of the configured backend.

  postgres  tables, unique vote index and the tag GIN index
  mongo     collection indexes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	st, err := openStorage(ctx, cfg.Database, false)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.Close(context.Background())

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	log.Info("migration complete", "driver", cfg.Database.Driver)
	return nil
}
