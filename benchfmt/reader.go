// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A Reader reads benchmark result lines.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Result it returns; a caller should copy anything it needs to
// keep past the next call to Scan.
type Reader struct {
	s   *bufio.Scanner
	err error

	result  Result
	interns map[string]string
}

// A SyntaxError represents a malformed benchmark line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader that parses benchmark lines from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.result.fileName, r.result.line, msg}
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	// Benchmark lines with many custom metrics can be long.
	r.s.Buffer(nil, 1<<20)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	if r.interns == nil {
		r.interns = make(map[string]string)
	}
	r.result.Name = r.result.Name[:0]
	r.result.Iters = 0
	r.result.Values = r.result.Values[:0]
	r.result.fileName = fileName
	r.result.line = 0
}

// Marker is the prefix that identifies a benchmark result line.
const Marker = "Benchmark"

var benchmarkPrefix = []byte(Marker)

// Scan advances the reader to the next benchmark result and reports
// whether one was read. The caller should use Result to get it.
//
// If Scan reaches EOF, hits an I/O error, or finds a malformed
// benchmark line, it returns false, and Err reports the reason. After
// a malformed line Scan keeps returning false. A line holding only a
// benchmark name, such as "go test -v" prints when a benchmark starts,
// is malformed: it is missing its iteration count.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.result.line++
		line := r.s.Bytes()
		if !bytes.HasPrefix(line, benchmarkPrefix) {
			continue
		}
		if err := r.parseBenchmarkLine(line); err != nil {
			r.err = err
			return false
		}
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.result.fileName, r.result.line, err)
	}
	return false
}

// parseBenchmarkLine parses line as a benchmark result and updates
// r.result. The caller must have already checked that line begins
// with the marker.
//
// A unit binds to the number immediately before it, so in the
// standard "-benchmem" layout "N ns/op N B/op N allocs/op" every
// value finds its unit. A number that is followed by another number
// instead of a unit is superseded by it.
func (r *Reader) parseBenchmarkLine(line []byte) *SyntaxError {
	var f []byte
	var err error

	line = line[len(Marker):]

	r.result.Name, line = splitField(line)

	f, line = splitField(line)
	if len(f) == 0 {
		return r.newSyntaxError("missing iteration count")
	}
	r.result.Iters, err = strconv.Atoi(string(f))
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return r.newSyntaxError("parsing iteration count: " + err.Error())
	}

	r.result.Values = r.result.Values[:0]
	pending := false
	var val float64
	for {
		f, line = splitField(line)
		if len(f) == 0 {
			break
		}
		v, err := atof(f)
		if err == nil {
			val, pending = v, true
			continue
		}
		if !pending {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return r.newSyntaxError("parsing measurement: " + err.Error())
		}
		r.result.Values = append(r.result.Values, Value{Value: val, Unit: r.intern(f)})
		pending = false
	}
	if pending {
		return r.newSyntaxError("missing units")
	}
	if len(r.result.Values) == 0 {
		return r.newSyntaxError("missing measurements")
	}
	return nil
}

func (r *Reader) intern(x []byte) string {
	const maxIntern = 1024
	if s, ok := r.interns[string(x)]; ok {
		return s
	}
	if len(r.interns) >= maxIntern {
		// Evicting an arbitrary entry is fine; interning only
		// saves allocations.
		for k := range r.interns {
			delete(r.interns, k)
			break
		}
	}
	s := string(x)
	r.interns[s] = s
	return s
}

// Result returns the Result that was just read by Scan. It is
// overwritten by the next call to Scan.
func (r *Reader) Result() *Result {
	return &r.result
}

// Err returns the first error that stopped Scan, either an I/O error
// or a *SyntaxError. It returns nil after a clean EOF.
func (r *Reader) Err() error {
	return r.err
}

// atof parses x as a float64, with a fast path for the common case of
// a plain unsigned integer.
func atof(x []byte) (float64, error) {
	var val int64
	for _, ch := range x {
		digit := ch - '0'
		if digit >= 10 {
			goto fail
		}
		if val > (math.MaxInt64-10)/10 {
			goto fail
		}
		val = (val * 10) + int64(digit)
	}
	if len(x) > 0 {
		return float64(val), nil
	}

fail:
	return strconv.ParseFloat(string(x), 64)
}

const isSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

// splitField consumes and returns non-whitespace in x as field,
// consumes whitespace following the field, and then returns the
// remaining bytes of x.
func splitField(x []byte) (field, rest []byte) {
	var i int
	for i = 0; i < len(x); {
		if x[i] < utf8.RuneSelf {
			if (isSpace>>x[i])&1 != 0 {
				rest = x[i+1:]
				break
			}
			i++
		} else {
			r, n := utf8.DecodeRune(x[i:])
			if unicode.IsSpace(r) {
				rest = x[i+n:]
				break
			}
			i += n
		}
	}
	field = x[:i]

	for len(rest) > 0 {
		if rest[0] < utf8.RuneSelf {
			if (isSpace>>rest[0])&1 == 0 {
				break
			}
			rest = rest[1:]
		} else {
			r, n := utf8.DecodeRune(rest)
			if !unicode.IsSpace(r) {
				break
			}
			rest = rest[n:]
		}
	}
	return
}
