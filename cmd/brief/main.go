// Package main implements the brief operator CLI: one-off generations, rule
// inspection, and governance seeding against the configured database and model.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brief",
	Short: "Operator CLI for the governed brief engine",
	Long: `brief runs the governed generation pipeline and manages its rule store
using the same config.toml and BRIEF_* environment variables as the server.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(seedCmd)
}
