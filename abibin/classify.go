/*
 * classify.go, part of agate.
 *
 * Copyright 2026 The agate Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package abibin

import "sort"

// FileKind is what a file holds, as told by its format code.
type FileKind int

const (
	Unknown FileKind = iota
	Density
	Potential
)

func (k FileKind) String() string {
	switch k {
	case Density:
		return "density"
	case Potential:
		return "potential"
	}
	return "unknown"
}

// HasGrid is true for the kinds followed by real space grid records.
func (k FileKind) HasGrid() bool {
	return k == Density || k == Potential
}

var densityCodes = sortedCodes(52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 67, 68, 69, 110, 70, 64, 65, 66, 71)
var potentialCodes = sortedCodes(102, 103, 104, 105, 106, 107, 108, 109, 111, 112, 113, 114)

func sortedCodes(c ...int) []int {
	sort.Ints(c)
	return c
}

func isIn(codes []int, fform int) bool {
	i := sort.SearchInts(codes, fform)
	return i < len(codes) && codes[i] == fform
}

// Classify returns the kind of file with format code fform.
// Codes outside both sets are Unknown.
func Classify(fform int) FileKind {
	switch {
	case isIn(densityCodes, fform):
		return Density
	case isIn(potentialCodes, fform):
		return Potential
	}
	return Unknown
}

// DensityCodes returns the format codes of density files, sorted.
func DensityCodes() []int { return append([]int(nil), densityCodes...) }

// PotentialCodes returns the format codes of potential files, sorted.
func PotentialCodes() []int { return append([]int(nil), potentialCodes...) }
