// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables with aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows [][]textCell
	cols int
}

type textCell struct {
	value      string
	leftMargin string
	alignment  align
}

// A CellOption changes how a single cell is laid out.
type CellOption func(c *textCell)

// Right aligns a cell to the right edge of its column. Cells are
// left-aligned by default.
var Right CellOption = func(c *textCell) { c.alignment = alignRight }

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) lpad(s string, w int) string {
	if a == alignRight {
		return fmt.Sprintf("%*s", w, s)
	}
	return s
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	row := &t.rows[len(t.rows)-1]
	// Cells are separated by a single space, which is dropped
	// before the first column and before empty cells.
	lMargin := " "
	if len(*row) == 0 || value == "" {
		lMargin = ""
	}
	c := textCell{value, lMargin, alignLeft}
	for _, o := range opts {
		o(&c)
	}
	*row = append(*row, c)
	if len(*row) > t.cols {
		t.cols = len(*row)
	}
	return t
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	lmargin := make([]int, t.cols)
	width := make([]int, t.cols)
	for _, row := range t.rows {
		for col, cell := range row {
			lmargin[col] = max(lmargin[col], utf8.RuneCountInString(cell.leftMargin))
			width[col] = max(width[col], utf8.RuneCountInString(cell.value))
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		// Blank trailing cells print nothing, so lines never
		// end in spaces.
		last := len(row) - 1
		for last >= 0 && strings.TrimSpace(row[last].value) == "" {
			last--
		}
		for col := 0; col <= last; col++ {
			cell := row[col]
			fmt.Fprintf(&line, "%*s", lmargin[col], cell.leftMargin)
			s := cell.alignment.lpad(cell.value, width[col])
			line.WriteString(s)
			if col < last {
				fmt.Fprintf(&line, "%*s", width[col]-utf8.RuneCountInString(s), "")
			}
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
