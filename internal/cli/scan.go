package cli

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scan pass and exit (cron entry point)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Scan(cmd.Context())
	},
}
