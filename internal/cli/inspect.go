package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// Inspect prints the provenance and a per-field summary of one stored run.
func (a *App) Inspect(ctx context.Context, label string) error {
	store, closeStore, err := a.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := store.Load(ctx, label)
	if err != nil {
		return err
	}

	location := ""
	if l, ok := store.(ports.Locator); ok {
		location = l.Location(label)
	}
	return a.print(inspectMarkdown(label, location, result))
}

func inspectMarkdown(label, location string, result *domain.RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", label)
	if location != "" {
		fmt.Fprintf(&b, "Stored at `%s`, %d pressure levels.\n\n", location, result.Len())
	}

	batch := domain.NewBatch()
	_ = batch.Add(label, result)
	ds := compare.NewDataset(batch)

	names := result.FieldNames()
	for _, d := range compare.DefaultDerivations() {
		if ds.Has(label, d.Name) && !result.Has(d.Name) {
			names = append(names, d.Name)
		}
	}

	b.WriteString("## Fields\n\n| Field | Min | Max | Non-finite |\n|-------|-----|-----|------------|\n")
	for _, name := range names {
		_, values, err := ds.Field(label, name)
		if err != nil {
			continue
		}
		lo, hi, bad := summarize(values)
		if !result.Has(name) && ds.Derived(name) {
			name += " (derived)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", name, config.FormatDecimal(lo), config.FormatDecimal(hi), bad)
	}

	attrs := result.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("\n## Provenance\n\n| Key | Value |\n|-----|-------|\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %s |\n", k, attrs[k])
	}
	return b.String()
}

func summarize(values []float64) (lo, hi float64, nonFinite int) {
	lo, hi = math.NaN(), math.NaN()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			nonFinite++
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi, nonFinite
}
