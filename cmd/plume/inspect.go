package main

import (
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <label>",
	Short: "Show the provenance and field ranges of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Inspect(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
