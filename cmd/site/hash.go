package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitekit/core/config"
	"github.com/dmitrymomot/sitekit/pkg/hasher"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <input>",
		Short: "Print the salted SHA-512 hash of input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg hasher.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			h, err := hasher.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h.Hash(args[0]))
			return nil
		},
	}
}
