package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "highroad",
	Short: "Cannabis travel guides and laws directory",
	Long: `High Road is a cannabis-travel website: state and country law guides,
city dispensary/hotel directories, and an admin console for keeping the
legal records current.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
