/*
Package figure renders cross-run comparison figures.

Each requested field gets one panel. Every run is drawn against its pressure
coordinate converted to display units, with pressure increasing downwards. The
figure carries a single legend with one entry per run label, drawn once above
the panels, and is written as one PNG file per call.

	fig, err := figure.New().Render(dataset, figure.DefaultFields(), axis, "figures/default_comparison.png")
*/
package figure
