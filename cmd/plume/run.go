package main

import (
	"github.com/dennissergeev/exo-lightning-msci-project/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [labels...]",
	Short: "Run a batch of simulations and compare the results",
	Long: `Runs each label in order, loading <config-root>/<label>/physical_constants.yaml
and simulation_parameters.yaml, persists every result and draws the successful
runs into <figure-dir>/<first label>_comparison.png. Without labels the
PLUME_RUNS batch is used (default, run01, run02).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		resume, _ := cmd.Flags().GetBool("resume")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		noCompare, _ := cmd.Flags().GetBool("no-compare")

		_, err = app.Run(cmd.Context(), cli.RunOptions{
			Labels:      args,
			Resume:      resume,
			MetricsFile: metricsFile,
			Compare:     !noCompare,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("resume", false, "Skip labels whose result is already stored")
	runCmd.Flags().String("metrics-file", "", "Write batch metrics in the Prometheus text format")
	runCmd.Flags().Bool("no-compare", false, "Do not draw the comparison figure")
}
