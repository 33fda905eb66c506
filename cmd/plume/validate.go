package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [labels...]",
	Short: "Check run configurations without running them",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		_, err = app.Validate(cmd.Context(), args)
		return err
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
