// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"strings"

	"github.com/mazrean/benchgraph/benchfmt"
)

// Group prefixes that NormalizeGroup rewrites into readable labels.
const (
	formStreamPrefix   = "FormStream"
	stdMultipartPrefix = "StdMultipart"
)

// NormalizeGroup turns the first segment of a benchmark name into the
// label used to group its measurements.
//
// The "Benchmark" marker is stripped if present. Names starting with
// "FormStream" become "FormStream(<rest>)". Names starting with
// "StdMultipart" become "std(with <rest>)", where one "_" separating
// the prefix from the rest is dropped, so "StdMultipart_ReadForm" and
// "StdMultipartReadForm" both yield "std(with ReadForm)". Any other
// name is returned unchanged.
func NormalizeGroup(raw string) string {
	group := strings.TrimPrefix(raw, benchfmt.Marker)

	if rest, ok := strings.CutPrefix(group, formStreamPrefix); ok {
		return formStreamPrefix + "(" + rest + ")"
	}
	if rest, ok := strings.CutPrefix(group, stdMultipartPrefix); ok {
		rest = strings.TrimPrefix(rest, "_")
		return "std(with " + rest + ")"
	}
	return group
}
