// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"io"
	"strconv"

	"github.com/mazrean/benchgraph/benchunit"
	"github.com/mazrean/benchgraph/internal/texttab"
)

// WriteText writes t to w as an aligned text table with one row per
// group and size. Repeated measurements of a size are shown as their
// median, with the sample count in the last column.
func (t *Table) WriteText(w io.Writer) error {
	var tab texttab.Table
	tab.Row().Cell("group").Cell("size", texttab.Right).
		Cell(Time.Unit(), texttab.Right).Cell(Mem.Unit(), texttab.Right).
		Cell("n", texttab.Right)
	for _, s := range t.series {
		times := s.Summarize(Time)
		mems := s.Summarize(Mem)
		for i, p := range times {
			group := ""
			if i == 0 {
				group = s.Group
			}
			tab.Row().Cell(group).
				Cell(p.SizeToken, texttab.Right).
				Cell(formatValue(p.Center, Time), texttab.Right).
				Cell(formatValue(mems[i].Center, Mem), texttab.Right).
				Cell(strconv.Itoa(p.N), texttab.Right)
		}
	}
	return tab.Format(w)
}

// formatValue renders v, measured in m's unit, with an SI or binary
// prefix and a base unit suffix.
func formatValue(v float64, m Metric) string {
	switch m {
	case Time:
		sec, _ := benchunit.Tidy(v, m.Unit())
		return benchunit.Scale(sec, benchunit.Decimal) + "s"
	case Mem:
		return benchunit.Scale(v, benchunit.ClassOf(m.Unit())) + "B"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
