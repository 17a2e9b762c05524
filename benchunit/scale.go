// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000, using SI prefixes such as "k" and "M".
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled by
	// powers of 1024, using IEC prefixes such as "Ki" and "Mi".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of unit. If unit measures bytes in the
// numerator, this is Binary. Otherwise, it is Decimal.
func ClassOf(unit string) Class {
	num, _, _ := strings.Cut(unit, "/")
	for _, tok := range strings.FieldsFunc(num, func(r rune) bool { return r == '*' || r == '-' }) {
		if tok == "B" || tok == "MB" || tok == "bytes" {
			return Binary
		}
	}
	return Decimal
}

// A Scaler represents a scaling factor for a number and
// its scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix according to the
// given scale. If the value has units, tidy it first so that prefixes
// apply to base units.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
}

var siFactors = []factor{
	{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
	{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"},
}

// Binary prefixes bottom out at the base unit; "0.5 B" reads better
// than a fractional prefix.
var iecFactors = []factor{
	{1 << 40, "Ti"}, {1 << 30, "Gi"}, {1 << 20, "Mi"}, {1 << 10, "Ki"}, {1, ""},
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// The scale is chosen by the non-zero value closest to zero, so every
// value shows at least three significant digits.
func CommonScale(vals []float64, cls Class) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}

	// Values that would round up to 1 of a prefix are shown with
	// that prefix.
	const round = 0.99995
	f := factors[len(factors)-1]
	for _, cand := range factors {
		if min >= cand.factor*round {
			f = cand
			break
		}
	}
	scaled := min / f.factor
	switch {
	case scaled >= 99.995:
		return Scaler{1, f.factor, f.prefix}
	case scaled >= 9.9995:
		return Scaler{2, f.factor, f.prefix}
	case scaled >= round:
		return Scaler{3, f.factor, f.prefix}
	}
	// Smaller than the smallest prefix: add digits until three are
	// significant.
	prec := 3
	for t := 0.99995; scaled < t && prec < 12; t /= 10 {
		prec++
	}
	return Scaler{prec, f.factor, f.prefix}
}
