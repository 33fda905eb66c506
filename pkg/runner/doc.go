/*
Package runner drives the plume integrator across a batch of named runs.

For each run label, in the order given, the runner resolves the label's
configuration, executes it once, persists the stamped result under the label and
reports how long it took. A run that fails is recorded in the batch report and
the batch moves on; only cancellation of the context stops it early.

# Key Components

  - Runner: the batch orchestrator.
  - Option: functional options wiring the store, logger, metrics recorder and
    configuration source.

# Usage

	r := runner.NewRunner(integrator,
		runner.WithStore(file.New("output", file.WithPrefix("plume_model_output_"))),
		runner.WithLogger(logger),
	)

	batch, report, err := r.RunBatch(ctx, "config", []string{"default", "run01", "run02"})
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range report.Failures() {
		fmt.Printf("%s: %s\n", o.Label, o.Kind)
	}
*/
package runner
