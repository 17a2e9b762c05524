// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders a benchtab.Table as PNG charts of time and
// memory per operation.
//
// Line draws one line per group against the input size, with time and
// memory stacked in a single image. Bar draws a grouped bar chart per
// metric with a logarithmic y-axis, one category per size token.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mazrean/benchgraph/benchtab"
)

// LineFile is the name of the image written by Line.
const LineFile = "benchmarks.png"

// ErrNoData is returned when asked to chart an empty Table.
var ErrNoData = errors.New("no benchmark results to chart")

// Options configures how charts are rendered.
type Options struct {
	// Dir is the directory charts are written to. It is created if
	// it does not exist. If empty, the current directory is used.
	Dir string

	// Width and Height are the size of one chart. Line stacks two
	// charts, so its image is twice Height tall. Zero means
	// DefaultWidth or DefaultHeight.
	Width, Height vg.Length

	// LogScale makes Line use logarithmic y-axes. Bar charts are
	// always logarithmic.
	LogScale bool
}

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

func (o Options) size() (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (o Options) path(name string) (string, error) {
	if o.Dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(o.Dir, 0777); err != nil {
		return "", err
	}
	return filepath.Join(o.Dir, name), nil
}

// Line renders t as two stacked line charts, time per operation above
// memory per operation, and writes them to LineFile in opts.Dir. The
// x-axis is the input size in MB. Repeated measurements of a size are
// drawn at their median. It returns the path of the written file.
func Line(t *benchtab.Table, opts Options) (string, error) {
	if t.Len() == 0 {
		return "", ErrNoData
	}
	colors, err := groupColors(t.Len())
	if err != nil {
		return "", err
	}

	var plots [][]*plot.Plot
	for _, m := range benchtab.Metrics {
		p, err := linePlot(t, m, opts, colors)
		if err != nil {
			return "", err
		}
		plots = append(plots, []*plot.Plot{p})
	}

	w, h := opts.size()
	img := vgimg.New(w, vg.Length(len(plots))*h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		plots[j][0].Draw(canvases[j][0])
	}

	path, err := opts.path(LineFile)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// linePlot builds the line chart of metric m. On a linear axis values
// are plotted in the unit they were reported in, such as ns. On a log
// axis the tick labels carry SI prefixes of the base unit.
func linePlot(t *benchtab.Table, m benchtab.Metric, opts Options, colors []color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = m.String()
	p.X.Label.Text = "File size (MB)"
	unit := reportedUnit(m)
	if opts.LogScale {
		unit = baseUnit(m)
	}
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", m, unit)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	summaries := make([][]benchtab.Point, t.Len())
	var all []float64
	for i, s := range t.Series() {
		summaries[i] = s.Summarize(m)
		for _, pt := range summaries[i] {
			all = append(all, pt.Center)
		}
	}
	axis := newLogAxis(all)
	if opts.LogScale {
		p.Y.Tick.Marker = logTicks{axis, m}
	}

	for i, s := range t.Series() {
		var xys plotter.XYs
		for _, pt := range summaries[i] {
			y := pt.Center
			if opts.LogScale {
				if y <= 0 {
					continue
				}
				y = axis.y(y)
			}
			xys = append(xys, plotter.XY{X: float64(pt.Size), Y: y})
		}
		if len(xys) == 0 {
			continue
		}
		l, sc, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Group, err)
		}
		l.Color = colors[i]
		sc.Color = colors[i]
		sc.Shape = glyphs[i%len(glyphs)]
		p.Add(l, sc)
		p.Legend.Add(s.Group, l, sc)
	}
	return p, nil
}

// Bar renders one grouped bar chart per metric and writes each to
// "<metric>.png" in opts.Dir, that is time.png and memory.png. The
// x categories are t.SizeAxis() in order. A group with no measurement
// at a size has no bar there. It returns the paths of the written
// files.
func Bar(t *benchtab.Table, opts Options) ([]string, error) {
	if t.Len() == 0 {
		return nil, ErrNoData
	}
	colors, err := groupColors(t.Len())
	if err != nil {
		return nil, err
	}
	categories := t.SizeAxis()
	w, h := opts.size()

	// The bars of one category fill 80% of it, taking the data area
	// to be 80% of the image.
	barWidth := w * 0.8 * 0.8 / vg.Length(len(categories)*t.Len())
	if limit := vg.Points(40); barWidth > limit {
		barWidth = limit
	}

	var paths []string
	for _, m := range benchtab.Metrics {
		p := plot.New()
		p.Title.Text = m.String()
		p.X.Label.Text = "File size"
		p.Y.Label.Text = fmt.Sprintf("%s (%s)", m, baseUnit(m))
		p.Legend.Top = true
		p.Legend.Left = true

		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		p.Add(grid)

		centers := make([]map[string]float64, t.Len())
		var all []float64
		for i, s := range t.Series() {
			centers[i] = make(map[string]float64)
			for _, pt := range s.Summarize(m) {
				centers[i][pt.SizeToken] = pt.Center
				all = append(all, pt.Center)
			}
		}
		axis := newLogAxis(all)

		for i, s := range t.Series() {
			vals := make(plotter.Values, len(categories))
			for j, tok := range categories {
				if v, ok := centers[i][tok]; ok {
					vals[j] = axis.y(v)
				}
			}
			bars, err := plotter.NewBarChart(vals, barWidth)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Group, err)
			}
			bars.Color = colors[i]
			bars.LineStyle.Width = 0
			bars.Offset = vg.Length(float64(i)-float64(t.Len()-1)/2) * barWidth
			p.Add(bars)
			p.Legend.Add(s.Group, bars)
		}

		p.NominalX(categories...)
		p.X.Min = -0.5
		p.X.Max = float64(len(categories)) - 0.5
		p.Y.Min = 0
		p.Y.Max = math.Max(math.Ceil(p.Y.Max), 1)
		p.Y.Tick.Marker = logTicks{axis, m}

		path, err := opts.path(m.Name() + ".png")
		if err != nil {
			return nil, err
		}
		if err := p.Save(w, h, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

var glyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	draw.CrossGlyph{},
}

// groupColors returns n colors from a qualitative palette, repeating
// the palette if there are more groups than colors.
func groupColors(n int) ([]color.Color, error) {
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Dark2", 8)
	if err != nil {
		return nil, err
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}
