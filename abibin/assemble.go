/*
 * assemble.go, part of agate.
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

import (
	"fmt"
	"math"

	"github.com/abinit/agate"
	v3 "github.com/abinit/agate/v3"
)

// Assemble builds the structure from the raw arrays of a header. znucl has
// one (possibly fractional) atomic number per species, truncated to an
// integer. Numbers with no known element are kept, their symbol is "X".
// typat is 1-based, as abinit writes it, and xred holds 3 reduced
// coordinates per atom. It does no I/O.
func Assemble(lat *agate.Lattice, znucl []float64, typat []int, xred []float64) (*agate.Crystal, error) {
	if len(xred) != 3*len(typat) {
		return nil, &DataError{msg: fmt.Sprintf("%d reduced coordinates for %d atoms", len(xred), len(typat)), cause: agate.ErrShape, deco: []string{"Assemble"}}
	}
	z := make([]int, len(znucl))
	for i, v := range znucl {
		if v < 0 || math.IsNaN(v) || v > math.MaxInt32 {
			return nil, &DataError{msg: fmt.Sprintf("species %d has atomic number %g", i, v), deco: []string{"Assemble"}}
		}
		z[i] = int(v)
	}
	types := make([]int, len(typat))
	for i, t := range typat {
		if t < 1 || t > len(z) {
			return nil, &DataError{msg: fmt.Sprintf("atom %d has species %d, valid range is [1, %d]", i, t, len(z)), cause: agate.ErrSpeciesIndex, deco: []string{"Assemble"}}
		}
		types[i] = t - 1
	}
	red, err := v3.NewMatrix(append([]float64(nil), xred...))
	if err != nil {
		return nil, &DataError{msg: "reduced coordinates", cause: err, deco: []string{"Assemble"}}
	}
	C, err := agate.NewCrystal(lat, z, types, red)
	if err != nil {
		return nil, &DataError{msg: "building structure", cause: err, deco: []string{"Assemble"}}
	}
	return C, nil
}
