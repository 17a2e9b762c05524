// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates benchmark units: it parses the input
// size tokens that benchmarks are parameterized by and formats
// measurements with SI or binary prefixes.
package benchunit

import (
	"fmt"
	"strconv"
	"strings"
)

// A SizeError reports a size token that ParseSize cannot interpret.
type SizeError struct {
	Token string
	Msg   string
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Token)
}

// sizeSuffixes maps each accepted size suffix to its value in
// megabytes. Sizes are binary: 1GB is 1024MB.
var sizeSuffixes = []struct {
	suffix string
	mb     int64
}{
	{"MB", 1},
	{"GB", 1 << 10},
}

// ParseSize parses a benchmark input size token such as "10MB" or
// "1GB" and returns it in megabytes. The magnitude must be a
// non-negative integer and the suffix must be MB or GB.
func ParseSize(tok string) (int64, error) {
	for _, s := range sizeSuffixes {
		num, ok := strings.CutSuffix(tok, s.suffix)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil || n < 0 {
			return 0, &SizeError{tok, "invalid size magnitude"}
		}
		if n > (1<<63-1)/s.mb {
			return 0, &SizeError{tok, "size out of range"}
		}
		return n * s.mb, nil
	}
	return 0, &SizeError{tok, "unknown size unit"}
}
