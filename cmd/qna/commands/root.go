package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage/mongo"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage/postgres"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "qna",
	Short: "Q&A forum backend",
	Long: `Q&A forum backend: questions, answers, threaded replies, comments and votes.

Storage is PostgreSQL (default) or MongoDB, selected by database.driver.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log SQL statements")
}

// bootstrap loads configuration and installs the process logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, cfg.Env, level)
	slog.SetDefault(log)
	return cfg, log, nil
}

// migrator is implemented by both storage backends.
type migrator interface {
	storage.Storage
	Migrate(ctx context.Context) error
}

// openStorage connects the configured backend. Mongo ensures its indexes on
// connect; postgres is migrated only when migrate is set.
func openStorage(ctx context.Context, cfg config.DatabaseConfig, migrate bool) (migrator, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return mongo.New(ctx, cfg)
	default:
		st, err := postgres.New(ctx, cfg, verbose)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := st.Migrate(ctx); err != nil {
				_ = st.Close(ctx)
				return nil, err
			}
		}
		return st, nil
	}
}
