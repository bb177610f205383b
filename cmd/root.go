// Package cmd defines the notifier's command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devicedesk-notifier",
	Short: "DeviceDesk email notification dispatcher",
	Long:  "Dispatches email notifications for device reservation lifecycle events and keeps an auditable record of each send outcome.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
