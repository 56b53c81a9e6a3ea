package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitekit/app"
	"github.com/dmitrymomot/sitekit/core/config"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/integration/database/pg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadDatabaseConfig()
			if err != nil {
				return err
			}

			log := logger.NewFromConfig(cfg.Logger, "sitekit", logger.WithOutput(cmd.ErrOrStderr()))
			db, err := app.OpenDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if err := db.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Database.Driver)
			return nil
		},
	}
}

// loadDatabaseConfig loads only the settings needed to open the repository,
// so maintenance commands run without the web secrets.
func loadDatabaseConfig() (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := config.Load(&cfg.Logger); err != nil {
		return cfg, err
	}
	if err := config.Load(&cfg.Database); err != nil {
		return cfg, err
	}
	if err := config.Load(&cfg.SQLite); err != nil {
		return cfg, err
	}
	if cfg.Database.Driver == app.DriverPostgres {
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return cfg, err
		}
		cfg.Postgres = pgCfg
	}
	return cfg, nil
}

