package cmd

import (
	"fmt"
	"os"

	"keepsake/config"
	"keepsake/db"
	"keepsake/logger"
	"keepsake/models"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "keepsake",
	Short:         "keepsake is a small photo album site with a daily sweet note.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logger.Init(logger.Config{
			Level:      config.LOG_LEVEL,
			OutputPath: config.LOG_FILE,
			MaxSize:    config.LOG_MAX_SIZE,
			MaxBackups: config.LOG_MAX_BACKUPS,
			MaxAge:     config.LOG_MAX_AGE,
			Compress:   true,
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// openDB connects to the configured database and brings the tables up to date
func openDB() error {
	database, err := db.Open(config.MYSQL_DSN, config.SQLITE_FILE, config.DEBUG_MODE)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	db.Instance = database
	if err = models.Migrate(db.Instance); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Execute executes the root command.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", logger.ErrorField(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
