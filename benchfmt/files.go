// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"io"
	"os"
)

// A Files reads benchmark results from a sequence of input files, as
// if they were one concatenated report.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	//
	// This is generally the desired behavior when the file list
	// comes from command-line flags.
	AllowStdin bool

	// Stdin overrides os.Stdin when AllowStdin is set.
	Stdin io.Reader

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet.
	inputs []string

	reader Reader
	file   io.ReadCloser
	err    error
}

func (f *Files) init() {
	f.inputs = []string{}
	if f.AllowStdin && len(f.Paths) == 0 {
		f.inputs = append(f.inputs, "-")
	}
	f.inputs = append(f.inputs, f.Paths...)
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func (f *Files) open(path string) (io.ReadCloser, error) {
	if f.AllowStdin && path == "-" {
		if f.Stdin != nil {
			return nopCloser{f.Stdin}, nil
		}
		return nopCloser{os.Stdin}, nil
	}
	return os.Open(path)
}

// Scan advances to the next result in the sequence of files and
// reports whether a result was read. The caller should use the Result
// method to get the result. If Scan reaches the end of the file
// sequence, or if an error occurs, it returns false. In this case,
// the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.init()
	}

	for {
		if f.file == nil {
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]

			file, err := f.open(path)
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			name := path
			if name == "-" {
				name = "<stdin>"
			}
			f.reader.Reset(file, name)
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		f.file.Close()
		f.file = nil
		if err != nil {
			f.err = err
			return false
		}
	}
}

// Result returns the result that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() *Result {
	return f.reader.Result()
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}
