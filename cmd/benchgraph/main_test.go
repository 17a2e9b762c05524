// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazrean/benchgraph/benchunit"
	"github.com/mazrean/benchgraph/chart"
)

func TestBar(t *testing.T) {
	chdir(t, "testdata")
	out := golden(t, "barText", "-text", "formstream.txt")
	exists(t, out, "time.png", "memory.png")
	missing(t, out, chart.LineFile)
}

func TestLine(t *testing.T) {
	chdir(t, "testdata")
	out := golden(t, "lineText", "-style", "line", "-text", "formstream.txt")
	exists(t, out, chart.LineFile)
	missing(t, out, "time.png", "memory.png")

	out = golden(t, "lineLog", "-style", "line", "-log", "-width", "4", "-height", "3", "formstream.txt")
	exists(t, out, chart.LineFile)
}

func TestDupOverride(t *testing.T) {
	// Bar charts with every sample kept print the same table as
	// line charts do by default.
	chdir(t, "testdata")
	golden(t, "lineText", "-dup", "append", "-text", "formstream.txt")
	golden(t, "barText", "-style", "line", "-dup", "replace", "-text", "formstream.txt")
}

func TestStdin(t *testing.T) {
	chdir(t, "testdata")
	data, err := os.ReadFile("formstream.txt")
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile("barText.stdout")
	if err != nil {
		t.Fatal(err)
	}
	var got, gotErr bytes.Buffer
	outDir := filepath.Join(t.TempDir(), "docs", "images")
	if err := benchgraph(bytes.NewReader(data), &got, &gotErr, []string{"-o", outDir, "-text"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(want, got.Bytes()) {
		t.Errorf("want:\n%sgot:\n%s", want, got.Bytes())
	}
	exists(t, outDir, "time.png", "memory.png")
}

func TestErrors(t *testing.T) {
	chdir(t, "testdata")
	for _, test := range []struct {
		args []string
		want string
	}{
		{[]string{"kb.txt"}, "kb.txt:4: unknown size unit: 5KB"},
		{[]string{"nobench.txt"}, "no benchmark results to chart"},
		{[]string{"does-not-exist.txt"}, "no such file or directory"},
		{[]string{"-style", "pie", "formstream.txt"}, "-style must be bar or line"},
		{[]string{"-dup", "merge", "formstream.txt"}, `parsing -dup: unknown duplicate policy "merge"`},
		{[]string{"-width", "0", "formstream.txt"}, "-width and -height must be positive"},
	} {
		outDir := t.TempDir()
		var got, gotErr bytes.Buffer
		args := append([]string{"-o", outDir}, test.args...)
		err := benchgraph(strings.NewReader(""), &got, &gotErr, args)
		if err == nil {
			t.Errorf("benchgraph %s: want error containing %q, got success", strings.Join(test.args, " "), test.want)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("benchgraph %s: want error containing %q, got %q", strings.Join(test.args, " "), test.want, err)
		}
		entries, _ := os.ReadDir(outDir)
		if len(entries) != 0 {
			t.Errorf("benchgraph %s: wrote %d files despite error", strings.Join(test.args, " "), len(entries))
		}
	}
}

func TestSizeErrorType(t *testing.T) {
	chdir(t, "testdata")
	var got, gotErr bytes.Buffer
	err := benchgraph(nil, &got, &gotErr, []string{"-o", t.TempDir(), "kb.txt"})
	var se *benchunit.SizeError
	if !errors.As(err, &se) || se.Token != "5KB" {
		t.Errorf("want *benchunit.SizeError for 5KB, got %v", err)
	}
}

func TestHelp(t *testing.T) {
	var got, gotErr bytes.Buffer
	err := benchgraph(nil, &got, &gotErr, []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("want flag.ErrHelp, got %v", err)
	}
	if !strings.HasPrefix(gotErr.String(), "Usage: benchgraph") {
		t.Errorf("want usage on stderr, got %q", gotErr.String())
	}
}

// golden runs benchgraph with args, writing charts to a fresh
// directory, and compares its output to name.stdout and name.stderr.
// It returns the chart directory. The caller must be in testdata.
func golden(t *testing.T, name string, args ...string) string {
	t.Helper()

	outDir := t.TempDir()
	var got, gotErr bytes.Buffer
	t.Logf("benchgraph %s", strings.Join(args, " "))
	if err := benchgraph(nil, &got, &gotErr, append([]string{"-o", outDir}, args...)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	compare(t, name, "stdout", got.Bytes())
	compare(t, name, "stderr", gotErr.Bytes())
	return outDir
}

func exists(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
		} else if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func missing(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s: want not exist, got %v", name, err)
		}
	}
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	wantPath := name + "." + sub
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	if !diff(t, want, got) {
		return
	}
	// diff printed the error.

	// Write a "got" file for reference.
	gotPath := name + ".got-" + sub
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}

func diff(t *testing.T, want, got []byte) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return false
	}

	d := t.TempDir()
	wantPath, gotPath := filepath.Join(d, "want"), filepath.Join(d, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		t.Fatalf("error writing %s: %s", wantPath, err)
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, _ := cmd.CombinedOutput()
	if len(data) > 0 {
		t.Errorf("\n%s", data)
	} else {
		// Most likely, "diff not found" so print the bad
		// output so there is something.
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
	return true
}

// chdir changes the working directory to dir for the duration of the
// test, like testing.T.Chdir (which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
