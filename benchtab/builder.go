// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab aggregates benchmark results into a table of
// per-operation time and memory, grouped by benchmark group and input
// size.
//
// Benchmark names are expected to have the form
// "<Group>/<Size>-<GOMAXPROCS>", where Size is a token such as "10MB"
// or "1GB" (see benchunit.ParseSize). The group is normalized with
// NormalizeGroup.
package benchtab

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mazrean/benchgraph/benchfmt"
	"github.com/mazrean/benchgraph/benchunit"
)

// A DupPolicy says what a Builder does when a group reports the same
// size token more than once.
type DupPolicy int

const (
	// DupAppend records every measurement. Repeated sizes show up
	// as repeated entries in the Series.
	DupAppend DupPolicy = iota
	// DupReplace overwrites the earlier measurement of the same
	// size, keeping the position where the size was first seen.
	DupReplace
)

func (p DupPolicy) String() string {
	switch p {
	case DupAppend:
		return "append"
	case DupReplace:
		return "replace"
	}
	return fmt.Sprintf("DupPolicy(%d)", int(p))
}

// ParseDupPolicy parses the String form of a DupPolicy.
func ParseDupPolicy(s string) (DupPolicy, error) {
	switch s {
	case "append":
		return DupAppend, nil
	case "replace":
		return DupReplace, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (want append or replace)", s)
}

// A Builder collects benchmark results into a Table.
type Builder struct {
	policy DupPolicy

	series []*Series
	index  map[string]int

	// pos maps group index and size token to the position of that
	// token in the group's Series, for DupReplace.
	pos []map[string]int

	axis     []string
	axisSeen map[string]bool
}

// NewBuilder returns an empty Builder that handles repeated sizes
// according to policy.
func NewBuilder(policy DupPolicy) *Builder {
	return &Builder{
		policy:   policy,
		index:    make(map[string]int),
		axisSeen: make(map[string]bool),
	}
}

// Add records the time and memory per operation of result.
//
// It returns an error if the name has no size segment, if the size
// token cannot be parsed, or if the result lacks a whole-number ns/op
// or B/op measurement. Errors are prefixed with the result's position. On
// error the Builder is unchanged.
func (b *Builder) Add(result *benchfmt.Result) error {
	fileName, line := result.Pos()
	fail := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s:%d: %s", fileName, line, fmt.Sprintf(format, args...))
	}

	base, parts := result.Name.Parts()
	if len(parts) == 0 || parts[0][0] != '/' {
		return fail("benchmark %s has no input size", result.Name)
	}
	// The Reader strips the marker, and NormalizeGroup expects the
	// name as printed.
	group := NormalizeGroup(benchfmt.Marker + string(base))
	sizeTok, _, _ := strings.Cut(string(parts[0][1:]), "-")
	size, err := benchunit.ParseSize(sizeTok)
	if err != nil {
		return fmt.Errorf("%s:%d: %w", fileName, line, err)
	}

	var vals [2]float64
	for i, m := range Metrics {
		v, ok := result.Value(m.Unit())
		if !ok {
			return fail("benchmark %s has no %s measurement", result.Name, m.Unit())
		}
		if v != math.Trunc(v) {
			return fail("benchmark %s: %s value %v is not an integer", result.Name, m.Unit(), v)
		}
		vals[i] = v
	}

	gi, ok := b.index[group]
	if !ok {
		gi = len(b.series)
		b.index[group] = gi
		b.series = append(b.series, &Series{Group: group})
		b.pos = append(b.pos, make(map[string]int))
	}
	s := b.series[gi]

	if i, ok := b.pos[gi][sizeTok]; ok && b.policy == DupReplace {
		s.Sizes[i] = size
		s.Time[i] = vals[Time]
		s.Mem[i] = vals[Mem]
	} else {
		if !ok {
			b.pos[gi][sizeTok] = len(s.SizeTokens)
		}
		s.SizeTokens = append(s.SizeTokens, sizeTok)
		s.Sizes = append(s.Sizes, size)
		s.Time = append(s.Time, vals[Time])
		s.Mem = append(s.Mem, vals[Mem])
	}

	if !b.axisSeen[sizeTok] {
		b.axisSeen[sizeTok] = true
		b.axis = append(b.axis, sizeTok)
	}
	return nil
}

// AddFiles adds every result read from files. It stops at the first
// read or aggregation error.
func (b *Builder) AddFiles(files *benchfmt.Files) error {
	for files.Scan() {
		if err := b.Add(files.Result()); err != nil {
			return err
		}
	}
	return files.Err()
}

// Table returns the Table built so far. Later calls to Add do not
// affect the returned Table.
func (b *Builder) Table() *Table {
	t := &Table{
		series: make([]*Series, len(b.series)),
		index:  make(map[string]int, len(b.index)),
		axis:   append([]string(nil), b.axis...),
	}
	for i, s := range b.series {
		t.series[i] = s.clone()
	}
	for k, v := range b.index {
		t.index[k] = v
	}
	return t
}

// Parse reads a benchmark report from r and aggregates it into a
// Table. fileName is used in error messages.
func Parse(r io.Reader, fileName string, policy DupPolicy) (*Table, error) {
	b := NewBuilder(policy)
	reader := benchfmt.NewReader(r, fileName)
	for reader.Scan() {
		if err := b.Add(reader.Result()); err != nil {
			return nil, err
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return b.Table(), nil
}
