// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

// Tidy normalizes a value in one of the units printed by the testing
// package into base units. For example, "ns/op" is re-scaled to
// "sec/op". It returns the re-scaled value and its new unit. Units
// already in base form, and units it does not know, are returned
// unchanged.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	switch unit {
	case "ns/op":
		return value * 1e-9, "sec/op"
	case "MB/s":
		return value * 1e6, "B/s"
	}
	return value, unit
}
