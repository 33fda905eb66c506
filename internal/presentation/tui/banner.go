package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tool banner to w, colored when w is a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`        _`, "#38bdf8"},
		{`  _ __ | |_   _ _ __ ___   ___`, "#22d3ee"},
		{` | '_ \| | | | | '_ ' _ \ / _ \`, "#2dd4bf"},
		{` | |_) | | |_| | | | | | |  __/`, "#f59e0b"},
		{` | .__/|_|\__,_|_| |_| |_|\___|`, "#f97316"},
		{` |_|`, "#ef4444"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
