package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/cli"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/settings"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "Run and compare 1D convective plume simulations",
	Long: `plume runs the convective plume model for a batch of configurations,
persists each result with its provenance and draws every run into one
comparison figure. Defaults come from PLUME_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Cancel()

	if err := rootCmd.ExecuteContext(sc); err != nil {
		if !errors.Is(err, cli.ErrRunsFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		if sig := sc.Signal(); sig != nil {
			fmt.Fprintf(os.Stderr, "interrupted by %v\n", sig)
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func init() {
	defaults, err := settings.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		defaults, _ = settings.LoadFrom(map[string]string{})
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config-root", defaults.ConfigRoot, "Directory with one configuration directory per run label")
	flags.String("output-dir", defaults.OutputDir, "Directory for run artifacts (file and sqlite stores)")
	flags.String("figure-dir", defaults.FigureDir, "Directory for comparison figures")
	flags.String("store", defaults.Store, "Result store: file, memory, redis or sqlite")
	flags.String("redis-url", defaults.RedisURL, "Redis URL for the redis store")
	flags.String("sqlite-path", defaults.SQLitePath, "Database file for the sqlite store (default <output-dir>/plume.db)")
	flags.String("integrator", defaults.IntegratorConfig, "Integrator configuration file")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
}

// newApp builds the App from environment defaults overridden by flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"config-root": &s.ConfigRoot,
		"output-dir":  &s.OutputDir,
		"figure-dir":  &s.FigureDir,
		"store":       &s.Store,
		"redis-url":   &s.RedisURL,
		"sqlite-path": &s.SQLitePath,
		"integrator":  &s.IntegratorConfig,
		"log-level":   &s.LogLevel,
	}
	for name, target := range overrides {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	return cli.NewApp(s, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
