package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled knowledge base into an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		report, err := a.Services.Seed.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if report.Skipped {
			cmd.Println("knowledge base already present, nothing to do")
			return nil
		}
		cmd.Printf("seeded %d motorcycles, %d symptoms, %d damages, %d rules, %d users\n",
			report.Motorcycles, report.Symptoms, report.Damages, report.Rules, report.Users)
		return nil
	},
}
