package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/motodiag-backend/internal/app"
	"github.com/yungbote/motodiag-backend/internal/platform/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "motodiag",
	Short: "Rule-based CVT damage diagnosis for scooters",
	Long: "motodiag maps observed symptoms to a damage using stored if-then rules.\n" +
		"The first rule whose symptoms are all observed wins.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.Version = version
}

// openApp loads configuration and builds a migrated App.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.Migrate(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
