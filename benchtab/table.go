// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// A Metric selects one of the per-operation measurements recorded in
// a Table.
type Metric int

const (
	// Time is the time per operation, in nanoseconds.
	Time Metric = iota
	// Mem is the memory allocated per operation, in bytes.
	Mem
)

// Metrics lists every Metric in display order.
var Metrics = []Metric{Time, Mem}

// Unit returns the benchmark unit the metric is read from.
func (m Metric) Unit() string {
	switch m {
	case Time:
		return "ns/op"
	case Mem:
		return "B/op"
	}
	panic(fmt.Sprintf("bad Metric %d", int(m)))
}

// Name returns a short lower-case name, suitable for file names.
func (m Metric) Name() string {
	switch m {
	case Time:
		return "time"
	case Mem:
		return "memory"
	}
	return fmt.Sprintf("metric%d", int(m))
}

func (m Metric) String() string {
	switch m {
	case Time:
		return "Time per operation"
	case Mem:
		return "Memory per operation"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// A Series holds the measurements of one group, in input order.
// Sizes, Time and Mem are parallel to SizeTokens.
//
// A Series obtained from a Table must not be modified.
type Series struct {
	// Group is the normalized group label.
	Group string

	// SizeTokens are the input size tokens as written in the
	// benchmark names, e.g. "10MB".
	SizeTokens []string

	// Sizes are the input sizes in megabytes.
	Sizes []int64

	// Time is the time per operation in nanoseconds.
	Time []float64

	// Mem is the memory per operation in bytes.
	Mem []float64
}

// Len returns the number of recorded measurements.
func (s *Series) Len() int {
	return len(s.SizeTokens)
}

// Values returns the measurements of metric m.
func (s *Series) Values(m Metric) []float64 {
	switch m {
	case Time:
		return s.Time
	case Mem:
		return s.Mem
	}
	panic(fmt.Sprintf("bad Metric %d", int(m)))
}

func (s *Series) clone() *Series {
	return &Series{
		Group:      s.Group,
		SizeTokens: append([]string(nil), s.SizeTokens...),
		Sizes:      append([]int64(nil), s.Sizes...),
		Time:       append([]float64(nil), s.Time...),
		Mem:        append([]float64(nil), s.Mem...),
	}
}

// A Point summarizes every measurement of one metric at one input
// size.
type Point struct {
	SizeToken string
	Size      int64

	// Center is the median of the measurements.
	Center float64
	// Lo and Hi are the smallest and largest measurements.
	Lo, Hi float64
	// N is the number of measurements.
	N int
}

// Summarize collapses repeated measurements of the same size token,
// as produced by "go test -count", into one Point per size. Points
// are in the order their size token first appears in s.
func (s *Series) Summarize(m Metric) []Point {
	vals := s.Values(m)
	var order []string
	samples := make(map[string][]float64)
	sizes := make(map[string]int64)
	for i, tok := range s.SizeTokens {
		if _, ok := samples[tok]; !ok {
			order = append(order, tok)
			sizes[tok] = s.Sizes[i]
		}
		samples[tok] = append(samples[tok], vals[i])
	}

	points := make([]Point, 0, len(order))
	for _, tok := range order {
		sample := stats.Sample{Xs: samples[tok]}
		lo, hi := sample.Bounds()
		points = append(points, Point{
			SizeToken: tok,
			Size:      sizes[tok],
			Center:    sample.Quantile(0.5),
			Lo:        lo,
			Hi:        hi,
			N:         len(samples[tok]),
		})
	}
	return points
}

// A Table is the aggregated result of a benchmark report: one Series
// per group, in the order groups first appear in the input. A Table
// is immutable once built.
type Table struct {
	series []*Series
	index  map[string]int
	axis   []string
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.series)
}

// Groups returns the group labels in first-seen order.
func (t *Table) Groups() []string {
	groups := make([]string, len(t.series))
	for i, s := range t.series {
		groups[i] = s.Group
	}
	return groups
}

// Series returns every group's Series in first-seen order.
// The returned Series must not be modified.
func (t *Table) Series() []*Series {
	return append([]*Series(nil), t.series...)
}

// Group returns the Series for the given group label.
func (t *Table) Group(group string) (*Series, bool) {
	i, ok := t.index[group]
	if !ok {
		return nil, false
	}
	return t.series[i], true
}

// SizeAxis returns every distinct size token across all groups, in
// the order each was first seen. It is the shared category axis for
// charts that compare groups side by side.
func (t *Table) SizeAxis() []string {
	return append([]string(nil), t.axis...)
}
