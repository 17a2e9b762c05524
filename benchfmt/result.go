// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads the textual report printed by
// "go test -bench".
//
// Only benchmark result lines are interpreted. Configuration lines,
// test output and anything else that does not start with the
// "Benchmark" marker are skipped. Unlike a general-purpose benchmark
// format reader, a malformed benchmark line is fatal: Reader stops at
// the first one and reports it from Err.
package benchfmt

// A Result is a single benchmark result and all of its measurements.
//
// Results returned by a Reader are reused by the next call to Scan.
// Callers that need to retain any part of a Result must copy it.
type Result struct {
	// Name is the full name of this benchmark, without the leading
	// "Benchmark" marker, including all sub-benchmark configuration
	// and the GOMAXPROCS suffix.
	Name Name

	// Iters is the number of iterations this benchmark's results
	// were averaged over.
	Iters int

	// Values is this benchmark's measurements and their units, in
	// the order they appeared on the line.
	Values []Value

	// fileName and line record where this Result was read from.
	fileName string
	line     int
}

// A Value is a single value/unit measurement from a benchmark result.
// Units are kept exactly as reported, e.g. "ns/op" or "B/op".
type Value struct {
	Value float64
	Unit  string
}

// Pos returns the file name and line number of a Result that was read
// by a Reader. For Results that were not read from a file, it returns
// "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Value returns the measurement for the given unit.
func (r *Result) Value(unit string) (float64, bool) {
	for _, v := range r.Values {
		if v.Unit == unit {
			return v.Value, true
		}
	}
	return 0, false
}

// A Name is a full benchmark name, including all sub-benchmark
// configuration.
type Name []byte

// String returns the full benchmark name as a string.
func (n Name) String() string {
	return string(n)
}

// Parts splits a benchmark name into the base name and sub-benchmark
// configuration parts. Each part is either "/<string>" for a
// sub-benchmark, or "-<gomaxprocs>", which can only appear last.
//
// Concatenating the base name and the parts reconstructs the full
// name.
func (n Name) Parts() (baseName []byte, parts [][]byte) {
	buf, gomaxprocs := n.splitGomaxprocs()
	var nameParts [][]byte
	prev := 0
	for i, c := range buf {
		if c == '/' {
			nameParts = append(nameParts, buf[prev:i])
			prev = i
		}
	}
	nameParts = append(nameParts, buf[prev:])
	if gomaxprocs != nil {
		nameParts = append(nameParts, gomaxprocs)
	}
	return nameParts[0], nameParts[1:]
}

func (n Name) splitGomaxprocs() (prefix, gomaxprocs []byte) {
	for i := len(n) - 1; i >= 0; i-- {
		if n[i] == '-' && i < len(n)-1 {
			return n[:i], n[i:]
		}
		if !('0' <= n[i] && n[i] <= '9') {
			break
		}
	}
	return n, nil
}
