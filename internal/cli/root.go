package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/observability"
)

var (
	cfg           *config.Config
	logger        *zap.Logger
	migrationsDir string
	version       = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "repairs",
	Short: "Repair shop ticketing service",
	Long: `repairs serves the repair shop ticketing API: customers file service
tickets, staff assign employees and complete them.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if migrationsDir != "" {
			cfg.Postgres.MigrationsDir = migrationsDir
		}
		if cfg.App.Version == "dev" {
			cfg.App.Version = version
		}

		logger, err = observability.NewLogger(*cfg)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("repairs %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "directory of .sql migrations (overrides POSTGRES_MIGRATIONS_DIR)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	return rootCmd.Execute()
}

func Root() *cobra.Command {
	return rootCmd
}
