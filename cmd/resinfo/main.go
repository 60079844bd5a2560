package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/resinfo/internal/interfaces/cli/fetch"
	"github.com/orris-inc/resinfo/internal/interfaces/cli/poll"
	"github.com/orris-inc/resinfo/internal/interfaces/cli/server"
)

// @title Resinfo API
// @version 1.0
// @description Router dashboard status aggregation.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "resinfo",
		Short: "Resinfo - router status aggregation",
		Long:  `Resinfo serves the router dashboard status document and polls it on a schedule.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		poll.NewCommand(),
		fetch.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
