/*
Package plume runs a one-dimensional convective plume model over a batch of
configurations and compares the resulting vertical profiles.

Each run label names a directory holding two YAML records, the physical
constants and the simulation parameters. An integrator turns them into
profiles on a pressure coordinate; results are persisted as self-describing
artifacts carrying the configuration that produced them, then drawn together
in one comparison figure.

# Usage

	integ := process.New(process.Config{Command: "./plume-integrator"})
	exp := plume.New(integ,
		plume.WithConfigRoot("config"),
		plume.WithStore(file.New("output")),
		plume.WithFigureDir("figures"),
	)
	res, err := exp.Run(ctx, "default", "run01", "run02")
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range res.Report.Failures() {
		log.Printf("%s failed: %s", o.Label, o.Kind)
	}

The packages under pkg/ can be used on their own: pkg/config loads records,
pkg/runner executes batches, pkg/compare assembles datasets from any
ports.ResultReader and pkg/figure draws them.
*/
package plume
