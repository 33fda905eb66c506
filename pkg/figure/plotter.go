package figure

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FieldSource supplies aligned profiles per run. compare.Dataset implements it.
type FieldSource interface {
	Labels() []string
	Has(label, name string) bool
	Provides(name string) bool
	Field(label, name string) (pressure, values []float64, err error)
}

// Figure describes a rendered image.
type Figure struct {
	Path          string
	LegendEntries []string
	Panels        []string
}

// Defaults of the standard figure.
const (
	DefaultColumns = 3
	DefaultTitle   = "1D Model of Convective Plume"
	DefaultDPI     = 150
)

var (
	panelWidth  = 5 * vg.Inch
	panelHeight = 5 * vg.Inch
	titleHeight = 0.5 * vg.Inch
	legendRow   = vg.Points(16)
	lineWidth   = vg.Points(1.5)
	gridColor   = color.Gray{Y: 200}
)

// Plotter renders comparison figures.
type Plotter struct {
	columns int
	title   string
	dpi     int
	logger  *slog.Logger
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithColumns sets how many panels share a row.
func WithColumns(n int) Option {
	return func(p *Plotter) {
		p.columns = n
	}
}

// WithTitle sets the figure title. An empty title is not drawn.
func WithTitle(title string) Option {
	return func(p *Plotter) {
		p.title = title
	}
}

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option {
	return func(p *Plotter) {
		p.dpi = dpi
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plotter) {
		p.logger = logger
	}
}

// New creates a Plotter.
func New(opts ...Option) *Plotter {
	p := &Plotter{
		columns: DefaultColumns,
		title:   DefaultTitle,
		dpi:     DefaultDPI,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.columns < 1 {
		p.columns = DefaultColumns
	}
	return p
}

// Render draws every field for every run of source and writes a PNG to outputPath,
// creating its directory if needed.
//
// A field no run provides fails the whole figure with domain.ErrRender wrapping
// domain.ErrFieldNotFound. A field missing from only some runs is drawn for the others.
func (p *Plotter) Render(source FieldSource, specs []FieldSpec, axis Axis, outputPath string) (*Figure, error) {
	if err := p.check(source, specs, axis); err != nil {
		return nil, err
	}
	if axis.Label == "" {
		axis.Label = DefaultAxisLabel
	}

	labels := source.Labels()
	styles := make(map[string]draw.LineStyle, len(labels))
	legend := plot.NewLegend()
	legend.Top = true
	for i, label := range labels {
		style := plotter.DefaultLineStyle
		style.Color = plotutil.Color(i)
		style.Width = lineWidth
		styles[label] = style
		legend.Add(label, &plotter.Line{LineStyle: style})
	}

	panels := make([]*plot.Plot, len(specs))
	for i, spec := range specs {
		panel, err := p.panel(source, spec, axis, labels, styles)
		if err != nil {
			return nil, err
		}
		panels[i] = panel
	}

	rows := (len(specs) + p.columns - 1) / p.columns
	cols := min(p.columns, len(specs))
	header := legendRow*vg.Length(len(labels)) + legendRow/2
	if p.title != "" {
		header += titleHeight
	}
	width := panelWidth * vg.Length(cols)
	height := panelHeight*vg.Length(rows) + header

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(p.dpi))
	dc := draw.New(img)

	body := draw.Crop(dc, 0, 0, 0, -header)
	top := draw.Crop(dc, 0, 0, height-header, 0)
	if p.title != "" {
		p.drawTitle(top)
		top = draw.Crop(top, 0, 0, 0, -titleHeight)
	}
	legend.Draw(top)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	for i, panel := range panels {
		panel.Draw(tiles.At(body, i%cols, i/cols))
	}

	if err := writePNG(img, outputPath); err != nil {
		return nil, err
	}
	p.logger.Info("figure saved", "path", outputPath, "runs", len(labels), "panels", len(specs))

	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return &Figure{Path: outputPath, LegendEntries: labels, Panels: names}, nil
}

func (p *Plotter) check(source FieldSource, specs []FieldSpec, axis Axis) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: no fields requested", domain.ErrRender)
	}
	if len(source.Labels()) == 0 {
		return fmt.Errorf("%w: no runs to plot", domain.ErrRender)
	}
	if !finitePositive(axis.Scale) || !finitePositive(axis.Start) {
		return fmt.Errorf("%w: invalid pressure axis (scale %v, start %v)", domain.ErrRender, axis.Scale, axis.Start)
	}
	var missing []error
	for _, spec := range specs {
		if !source.Provides(spec.Name) {
			missing = append(missing, fmt.Errorf("%q", spec.Name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %w: no run provides %w", domain.ErrRender, domain.ErrFieldNotFound, errors.Join(missing...))
	}
	return nil
}

func (p *Plotter) panel(source FieldSource, spec FieldSpec, axis Axis, labels []string, styles map[string]draw.LineStyle) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = spec.Title
	pl.X.Label.Text = spec.XLabel()
	pl.Y.Label.Text = axis.Label
	pl.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	pl.Add(grid)

	for _, label := range labels {
		if !source.Has(label, spec.Name) {
			p.logger.Debug("run lacks field", "run", label, "field", spec.Name)
			continue
		}
		pressure, values, err := source.Field(label, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of run %q: %w", domain.ErrRender, spec.Name, label, err)
		}

		pts := make(plotter.XYs, 0, len(values))
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: v, Y: pressure[i] * axis.Scale})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of run %q: %w", domain.ErrRender, spec.Name, label, err)
		}
		line.LineStyle = styles[label]
		pl.Add(line)
	}

	// Fixed after Add, which widens the ranges to the data.
	pl.Y.Min = 0
	pl.Y.Max = axis.Start * axis.Scale
	return pl, nil
}

func (p *Plotter) drawTitle(c draw.Canvas) {
	style := plot.New().Title.TextStyle
	style.Font.Size = vg.Points(16)
	style.XAlign = draw.XCenter
	style.YAlign = draw.YTop
	c.FillText(style, vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: c.Max.Y}, p.title)
}

func writePNG(img *vgimg.Canvas, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: failed to create figure directory: %w", domain.ErrRender, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to encode png: %w", domain.ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
