package main

import (
	"github.com/dennissergeev/exo-lightning-msci-project/internal/presentation/tui"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/settings"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored results over HTTP",
	Long:  `Starts a read-only JSON API over the configured store, with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("listen")
		tui.PrintBanner(cmd.ErrOrStderr())
		return app.Serve(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults, _ := settings.Load()
	if defaults.Listen == "" {
		defaults.Listen = ":8080"
	}
	serveCmd.Flags().StringP("listen", "l", defaults.Listen, "Address to listen on")
}
