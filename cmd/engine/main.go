package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Local job listing engine",
	Long: `engine fetches job listings from a remote endpoint, normalizes them and
serves them, together with saved jobs, theme and applications, to the desktop
UI over a localhost HTTP API.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
