// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchgraph charts the time and memory per operation of benchmarks
// that are parameterized by input size.
//
// Usage:
//
//	benchgraph [flags] [inputs...]
//
// Each input should contain the output of "go test -bench -benchmem"
// for benchmarks named "Benchmark<Group>/<Size>", where Size is a
// number of megabytes ("10MB") or gigabytes ("1GB"). If no inputs are
// given, benchgraph reads standard input.
//
// Group names are shortened for display: "FormStream<X>" is shown as
// "FormStream(X)" and "StdMultipart_<X>" as "std(with X)".
//
// With the default -style bar, benchgraph writes two grouped bar
// charts with logarithmic y-axes, time.png and memory.png, to the
// output directory. With -style line, it writes a single image,
// benchmarks.png, with a line chart of time per operation above a line
// chart of memory per operation, plotted against the input size.
//
// The flags are:
//
//	-style bar|line
//		Chart style. Default bar.
//	-o dir
//		Write charts to dir. Default docs/images.
//	-dup append|replace
//		What to do when a group reports the same size more than once.
//		"replace" keeps the last measurement and "append" keeps all of
//		them, charting their median. The default is replace for bar
//		charts and append for line charts.
//	-log
//		Use logarithmic y-axes for line charts.
//	-text
//		Also print the aggregated measurements to standard output.
//	-width in, -height in
//		Size of each chart in inches. Default 8 by 6.
//
// Benchgraph stops at the first malformed benchmark line or
// unrecognized size and writes no charts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gonum.org/v1/plot/vg"

	"github.com/mazrean/benchgraph/benchfmt"
	"github.com/mazrean/benchgraph/benchtab"
	"github.com/mazrean/benchgraph/chart"
)

func usage(w io.Writer, flags *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(w, "Usage: benchgraph [flags] [inputs...]\n\n")
		flags.PrintDefaults()
	}
}

func main() {
	log.SetPrefix("benchgraph: ")
	log.SetFlags(0)
	err := benchgraph(os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func benchgraph(stdin io.Reader, w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("benchgraph", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = usage(wErr, flags)
	flagStyle := flags.String("style", "bar", "chart `style`: bar or line")
	flagOut := flags.String("o", "docs/images", "write charts to `dir`")
	flagDup := flags.String("dup", "", "duplicate size `policy`: append or replace (default replace for bar, append for line)")
	flagLog := flags.Bool("log", false, "use logarithmic y-axes for line charts")
	flagText := flags.Bool("text", false, "print the aggregated measurements to stdout")
	flagWidth := flags.Float64("width", 8, "chart `width` in inches")
	flagHeight := flags.Float64("height", 6, "chart `height` in inches")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var policy benchtab.DupPolicy
	switch *flagStyle {
	default:
		return fmt.Errorf("-style must be bar or line")
	case "bar":
		policy = benchtab.DupReplace
	case "line":
		policy = benchtab.DupAppend
	}
	if *flagDup != "" {
		var err error
		if policy, err = benchtab.ParseDupPolicy(*flagDup); err != nil {
			return fmt.Errorf("parsing -dup: %w", err)
		}
	}
	if *flagWidth <= 0 || *flagHeight <= 0 {
		return fmt.Errorf("-width and -height must be positive")
	}

	b := benchtab.NewBuilder(policy)
	files := benchfmt.Files{Paths: flags.Args(), AllowStdin: true, Stdin: stdin}
	if err := b.AddFiles(&files); err != nil {
		return err
	}
	t := b.Table()

	if *flagText {
		if err := t.WriteText(w); err != nil {
			return err
		}
	}

	opts := chart.Options{
		Dir:      *flagOut,
		Width:    vg.Length(*flagWidth) * vg.Inch,
		Height:   vg.Length(*flagHeight) * vg.Inch,
		LogScale: *flagLog,
	}
	switch *flagStyle {
	case "bar":
		_, err := chart.Bar(t, opts)
		return err
	case "line":
		_, err := chart.Line(t, opts)
		return err
	}
	return nil
}
