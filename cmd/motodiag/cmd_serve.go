package main

import (
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and serve the HTTP API",
	Long: `Runs migrations, then serves the HTTP API on PORT until SIGINT or
SIGTERM, after which in-flight requests get a grace period to finish.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(cmd.Context())
}
