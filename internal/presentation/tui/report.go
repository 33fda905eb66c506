package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/muesli/termenv"
)

// ReportMarkdown renders the outcomes of a batch as a markdown table.
func ReportMarkdown(title string, report *domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if report == nil || len(report.Outcomes) == 0 {
		b.WriteString("_No runs._\n")
		return b.String()
	}

	b.WriteString("| Run | Status | Seconds | Location | Error |\n")
	b.WriteString("|-----|--------|---------|----------|-------|\n")
	for _, o := range report.Outcomes {
		seconds := "-"
		if o.Status != domain.StatusSkipped {
			seconds = fmt.Sprintf("%.3f", o.Duration.Seconds())
		}
		location := o.Location
		if location == "" {
			location = "-"
		}
		errText := "-"
		if o.Err != nil {
			errText = fmt.Sprintf("%s: %s", o.Kind, escapeCell(o.Err.Error()))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | `%s` | %s |\n", o.Label, o.Status, seconds, location, errText)
	}

	failed := len(report.Failures())
	fmt.Fprintf(&b, "\n%d of %d runs failed.\n", failed, len(report.Outcomes))
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// PrintSummary writes a one-line colored verdict for report.
func PrintSummary(w io.Writer, report *domain.Report) {
	out := termenv.NewOutput(w)
	total := len(report.Outcomes)
	failed := len(report.Failures())
	if failed == 0 {
		fmt.Fprintln(w, out.String(fmt.Sprintf("all %d runs ok", total)).Foreground(out.Color("2")).Bold())
		return
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("%d of %d runs failed", failed, total)).Foreground(out.Color("1")).Bold())
}
