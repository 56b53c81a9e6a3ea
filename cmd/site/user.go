package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitekit/app"
	"github.com/dmitrymomot/sitekit/core/config"
	"github.com/dmitrymomot/sitekit/core/logger"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
	"github.com/dmitrymomot/sitekit/store"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var u store.User
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if u.Account == "" || password == "" {
				return errors.New("--account and --password are required")
			}

			cfg, err := loadDatabaseConfig()
			if err != nil {
				return err
			}
			var hcfg hasher.Config
			if err := config.Load(&hcfg); err != nil {
				return err
			}
			h, err := hasher.NewFromConfig(hcfg)
			if err != nil {
				return err
			}

			log := logger.NewFromConfig(cfg.Logger, "sitekit", logger.WithOutput(cmd.ErrOrStderr()))
			db, err := app.OpenDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			u.ID = uuid.New()
			u.PasswordHash = h.Hash(password)
			u.Enabled = true
			if err := db.Repository.CreateUser(cmd.Context(), u); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&u.Account, "account", "", "login name")
	cmd.Flags().StringVar(&u.Name, "name", "", "display name")
	cmd.Flags().StringVar(&u.Email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}
