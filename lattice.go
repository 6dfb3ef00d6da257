/*
 * lattice.go, part of agate.
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

package agate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Lattice is a direct lattice. The lattice vectors are the columns
// of the underlying 3x3 matrix, so for a point in reduced coordinates
// x, the cartesian position is Lattice·x.
type Lattice struct {
	m *mat.Dense
}

// NewLattice returns the lattice spanned by a, b and c.
func NewLattice(a, b, c [3]float64) *Lattice {
	m := mat.NewDense(3, 3, nil)
	for k, v := range [3][3]float64{a, b, c} {
		for i := 0; i < 3; i++ {
			m.Set(i, k, v[i])
		}
	}
	return &Lattice{m}
}

// LatticeFromDense copies d, a 3x3 matrix with the lattice vectors as columns.
func LatticeFromDense(d mat.Matrix) *Lattice {
	r, c := d.Dims()
	if r != 3 || c != 3 {
		panic(mat.ErrShape)
	}
	return &Lattice{mat.DenseCopyOf(d)}
}

// Vector returns the kth lattice vector (k in 0..2).
func (L *Lattice) Vector(k int) [3]float64 {
	return [3]float64{L.m.At(0, k), L.m.At(1, k), L.m.At(2, k)}
}

// At returns the (i,j) element of the lattice matrix.
func (L *Lattice) At(i, j int) float64 {
	return L.m.At(i, j)
}

// Dense returns a copy of the lattice matrix.
func (L *Lattice) Dense() *mat.Dense {
	return mat.DenseCopyOf(L.m)
}

// Det returns the determinant of the lattice matrix. Its absolute
// value is the cell volume.
func (L *Lattice) Det() float64 {
	return mat.Det(L.m)
}

// Degenerate returns true if the lattice vectors are linearly dependent, within
// floating point error relative to the vector lengths.
func (L *Lattice) Degenerate() bool {
	scale := 1.0
	for k := 0; k < 3; k++ {
		v := L.Vector(k)
		scale *= math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	if scale == 0 {
		return true
	}
	return math.Abs(L.Det()) <= appzero*scale
}

// Reciprocal returns the reciprocal lattice, the inverse transpose of the
// lattice matrix, without the 2π factor. Its columns are the reciprocal
// vectors, so the column i of the result dotted with lattice vector j is δij.
func (L *Lattice) Reciprocal() (*mat.Dense, error) {
	if L.Degenerate() {
		return nil, newCError(ErrDegenerateLattice, "Reciprocal", "lattice determinant %g", L.Det())
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L.m); err != nil {
		//A mat.Condition error still leaves a usable inverse, but we
		//refuse anything gonum considers singular.
		if c, ok := err.(mat.Condition); !ok || math.IsInf(float64(c), 1) {
			return nil, newCError(ErrDegenerateLattice, "Reciprocal", "inverting lattice: %v", err)
		}
	}
	ret := mat.NewDense(3, 3, nil)
	ret.Copy(inv.T())
	return ret, nil
}

// ToCartesian returns the cartesian position of the point with
// reduced coordinates red.
func (L *Lattice) ToCartesian(red [3]float64) [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		//explicit conversions keep the compiler from fusing the products.
		ret[i] = float64(L.m.At(i, 0)*red[0]) + float64(L.m.At(i, 1)*red[1]) + float64(L.m.At(i, 2)*red[2])
	}
	return ret
}

// ToReduced returns the reduced coordinates of the cartesian point cart.
// recip must be the reciprocal lattice of L.
func (L *Lattice) ToReduced(recip mat.Matrix, cart [3]float64) [3]float64 {
	var ret [3]float64
	for i := 0; i < 3; i++ {
		ret[i] = recip.At(0, i)*cart[0] + recip.At(1, i)*cart[1] + recip.At(2, i)*cart[2]
	}
	return ret
}
