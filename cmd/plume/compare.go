package main

import (
	"github.com/dennissergeev/exo-lightning-msci-project/internal/cli"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [labels...]",
	Short: "Draw stored results into one comparison figure",
	Long: `Loads the given labels from the store (all stored runs when none are given)
or, with --artifact, reads artifact files directly, and writes one comparison
figure. Entries that cannot be loaded are reported and left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		artifacts, _ := cmd.Flags().GetStringArray("artifact")
		name, _ := cmd.Flags().GetString("name")
		where, _ := cmd.Flags().GetString("where")

		_, err = app.Compare(cmd.Context(), cli.CompareOptions{
			Labels:    args,
			Artifacts: artifacts,
			Where:     where,
			Name:      name,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringArray("artifact", nil, "Artifact file as label=path (repeatable)")
	compareCmd.Flags().String("where", "", "Select stored runs by provenance, as key=value")
	compareCmd.Flags().String("name", "", "Figure name (default: first label)")
}
