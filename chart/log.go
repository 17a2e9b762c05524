// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"strings"

	"gonum.org/v1/plot"

	"github.com/mazrean/benchgraph/benchtab"
	"github.com/mazrean/benchgraph/benchunit"
)

// A logAxis maps measurements onto a linear axis in log10 space.
//
// plot.LogScale cannot draw bars, which extend down to zero, so bar
// charts plot log10(v) - base instead, where base is one decade below
// the smallest measurement. Every positive measurement then gets a
// visible bar.
type logAxis struct {
	base float64
}

func newLogAxis(vals []float64) logAxis {
	min := math.Inf(1)
	for _, v := range vals {
		if v > 0 && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return logAxis{}
	}
	return logAxis{math.Floor(math.Log10(min)) - 1}
}

// y returns the axis position of v. Non-positive values map to 0.
func (a logAxis) y(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Max(math.Log10(v)-a.base, 0)
}

// logTicks is a plot.Ticker for an axis laid out by a logAxis. Powers
// of ten get labeled ticks, and when the axis spans few enough decades
// the multiples in between get unlabeled ones.
type logTicks struct {
	axis   logAxis
	metric benchtab.Metric
}

const maxMinorDecades = 6

func (t logTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	minor := max-min <= maxMinorDecades
	for e := math.Floor(min); e <= math.Ceil(max); e++ {
		if e >= min && e <= max {
			ticks = append(ticks, plot.Tick{
				Value: e,
				Label: tickLabel(math.Pow(10, e+t.axis.base), t.metric),
			})
		}
		if !minor {
			continue
		}
		for k := 2; k < 10; k++ {
			y := e + math.Log10(float64(k))
			if y >= min && y <= max {
				ticks = append(ticks, plot.Tick{Value: y})
			}
		}
	}
	return ticks
}

// tickLabel formats v, measured in m's unit, as a short label such as
// "10µs" or "1MB".
func tickLabel(v float64, m benchtab.Metric) string {
	v, _ = benchunit.Tidy(v, m.Unit())
	s := benchunit.CommonScale([]float64{v}, benchunit.Decimal)
	if v/s.Factor >= 0.99995 {
		s.Prec = 0
	}
	return s.Format(v) + baseUnit(m)
}

// reportedUnit returns the unit m is measured in by "go test", without
// the per-op suffix: "ns" or "B".
func reportedUnit(m benchtab.Metric) string {
	return strings.TrimSuffix(m.Unit(), "/op")
}

// baseUnit returns the unit of m's measurements after benchunit.Tidy.
func baseUnit(m benchtab.Metric) string {
	if m == benchtab.Time {
		return "s"
	}
	return "B"
}
