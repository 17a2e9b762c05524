// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseAll(t *testing.T, data string) ([]*Result, error) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []*Result
	for r.Scan() {
		res := r.Result()
		// Copy without position information for comparisons.
		out = append(out, &Result{
			Name:   append(Name(nil), res.Name...),
			Iters:  res.Iters,
			Values: append([]Value(nil), res.Values...),
		})
	}
	return out, r.Err()
}

type resultBuilder struct {
	res *Result
}

func r(fullName string, iters int) *resultBuilder {
	return &resultBuilder{&Result{Name: Name(fullName), Iters: iters}}
}

func (b *resultBuilder) v(value float64, unit string) *resultBuilder {
	b.res.Values = append(b.res.Values, Value{Value: value, Unit: unit})
	return b
}

var resultCmp = cmp.Comparer(func(a, b *Result) bool {
	return a.Name.String() == b.Name.String() &&
		a.Iters == b.Iters &&
		cmp.Equal(a.Values, b.Values)
})

func TestReader(t *testing.T) {
	for _, test := range []struct {
		name, input string
		want        []*Result
	}{
		{
			"basic",
			`goos: linux
goarch: amd64
pkg: github.com/mazrean/formstream
BenchmarkFormStreamFastPath/1MB-8 	 1000	   1186449 ns/op	   31440 B/op	     105 allocs/op
BenchmarkStdMultipart_ReadForm/10MB-8 	 100	  11843256 ns/op	10528640 B/op	      66 allocs/op
PASS
ok  	github.com/mazrean/formstream	12.345s
`,
			[]*Result{
				r("FormStreamFastPath/1MB-8", 1000).
					v(1186449, "ns/op").v(31440, "B/op").v(105, "allocs/op").res,
				r("StdMultipart_ReadForm/10MB-8", 100).
					v(11843256, "ns/op").v(10528640, "B/op").v(66, "allocs/op").res,
			},
		},
		{
			"weird",
			`
BenchmarkSpaces    1   1   ns/op
BenchmarkFraction 1000000000 0.2531 ns/op
BenchmarkEmSpace  1  1  ns/op
`,
			[]*Result{
				r("Spaces", 1).v(1, "ns/op").res,
				r("Fraction", 1000000000).v(0.2531, "ns/op").res,
				r("EmSpace", 1).v(1, "ns/op").res,
			},
		},
		{
			// A unit binds to the number right before it.
			"unbound value",
			"BenchmarkFormStreamWriter/10MB-8 100 123 ns/op 5 456 B/op\n",
			[]*Result{
				r("FormStreamWriter/10MB-8", 100).v(123, "ns/op").v(456, "B/op").res,
			},
		},
		{
			// Only lines starting with the marker count.
			"verbose",
			`=== RUN   BenchmarkOne
    BenchmarkOne 1 1 ns/op
BenchmarkOne 100 1 ns/op
--- BENCH: BenchmarkOne
`,
			[]*Result{
				r("One", 100).v(1, "ns/op").res,
			},
		},
		{
			"no benchmarks",
			"hello\n\nPASS\n",
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseAll(t, test.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, got, resultCmp); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderSyntaxError(t *testing.T) {
	for _, test := range []struct {
		input string
		want  SyntaxError
	}{
		{"BenchmarkTrailingSpaceNoIter \n", SyntaxError{"test", 1, "missing iteration count"}},
		{"BenchmarkFormStreamWriter/10MB-8\n", SyntaxError{"test", 1, "missing iteration count"}},
		{"=== RUN   BenchmarkOne\nBenchmarkOne\nBenchmarkOne 100 1 ns/op\n", SyntaxError{"test", 2, "missing iteration count"}},
		{"x\nBenchmarkBadIter abc\n", SyntaxError{"test", 2, "parsing iteration count: invalid syntax"}},
		{"BenchmarkHugeIter 9999999999999999999999999999999\n", SyntaxError{"test", 1, "parsing iteration count: value out of range"}},
		{"BenchmarkMissingVal 100\n", SyntaxError{"test", 1, "missing measurements"}},
		{"BenchmarkBadVal 100 abc\n", SyntaxError{"test", 1, "parsing measurement: invalid syntax"}},
		{"BenchmarkMissingUnit 100 1\n", SyntaxError{"test", 1, "missing units"}},
		{"BenchmarkOK 1 1 ns/op\nBenchmarkMissingUnit2 100 1 ns/op 2\n", SyntaxError{"test", 2, "missing units"}},
	} {
		_, err := parseAll(t, test.input)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: want *SyntaxError, got %v", test.input, err)
			continue
		}
		if *se != test.want {
			t.Errorf("%q: want %+v, got %+v", test.input, test.want, *se)
		}
	}
}

func TestReaderStopsAtError(t *testing.T) {
	r := NewReader(strings.NewReader("BenchmarkA 1 1 ns/op\nBenchmarkB x\nBenchmarkC 1 1 ns/op\n"), "test")
	n := 0
	for r.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("want 1 result before the error, got %d", n)
	}
	if r.Err() == nil {
		t.Fatal("want error, got nil")
	}
	if r.Scan() {
		t.Error("Scan succeeded after a syntax error")
	}
}

func TestReaderPos(t *testing.T) {
	r := NewReader(strings.NewReader("pkg: x\n\nBenchmarkA 1 1 ns/op\n"), "bench.txt")
	if !r.Scan() {
		t.Fatalf("no result: %v", r.Err())
	}
	file, line := r.Result().Pos()
	if file != "bench.txt" || line != 3 {
		t.Errorf("want bench.txt:3, got %s:%d", file, line)
	}
}
