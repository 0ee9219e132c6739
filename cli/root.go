package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	version   = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "lumid",
	Short: "Terminal client for the Lumid support chat",
	Long: `Talk to a running Lumid server from the terminal.

Quick Start:
  lumid chat                          # interactive chat
  lumid send "I feel stressed"        # one-shot turn
  lumid sessions                      # list conversations
  lumid export <session-id> -f md     # download a transcript`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Lumid server base URL")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
