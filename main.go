package main

import (
	"os"

	"monastery360/config"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "monastery360",
		Short: "Monastery visit planner API and reminder worker",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config.LoadConfig()
		},
		SilenceUsage: true,
	}

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer()
		},
	}

	var workerCmd = &cobra.Command{
		Use:   "worker",
		Short: "Run the visit reminder worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorker()
		},
	}

	rootCmd.AddCommand(serveCmd, workerCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
