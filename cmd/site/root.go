package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "site",
		Short: "Site helper service",
		Long: `Serves the localized navigation menu, the display culture and the
session-held user profile of the site.

Commands:
  site serve              Start the HTTP server
  site migrate            Apply database migrations
  site hash <input>       Print the salted hash of input
  site user create        Create a user account`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newHashCmd(),
		newUserCmd(),
	)
	return root
}
