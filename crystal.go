/*
 * crystal.go, part of agate.
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
	"fmt"
	"math"

	v3 "github.com/abinit/agate/v3"
	"gonum.org/v1/gonum/mat"
)

/*****Crystal type***/

//Crystal is a periodic structure: a lattice, a list of species and the atoms
//in the cell. Cartesian coordinates and the reciprocal lattice are always derived
//from the reduced coordinates and the lattice, never stored independently.
//A Crystal is not safe for concurrent modification, but it is never modified
//by this library after it is returned.
type Crystal struct {
	Lattice    *Lattice
	Acell      [3]float64 //scale factors, already absorbed in Lattice.
	Reciprocal *mat.Dense //inverse transpose of the lattice matrix.
	Znucl      []int      //atomic number of each species.
	Typat      []int      //species of each atom, in [0, len(Znucl)).
	Reduced    *v3.Matrix //one atom per row.
	Cartesian  *v3.Matrix //one atom per row.
}

//NewCrystal makes a crystal from its primitive data and derives the cartesian
//coordinates and the reciprocal lattice. reduced has one atom per row, and it is
//not copied. It returns error if the per-atom data disagree in length, if a
//species index is out of range, or if the lattice is degenerate.
func NewCrystal(lat *Lattice, znucl, typat []int, reduced *v3.Matrix) (*Crystal, error) {
	if lat == nil {
		return nil, newCError(nil, "NewCrystal", "nil lattice")
	}
	if reduced == nil {
		reduced = v3.Zeros(0)
	}
	natom := reduced.NVecs()
	if len(typat) != natom {
		return nil, newCError(ErrShape, "NewCrystal", "%d species indexes for %d atoms", len(typat), natom)
	}
	for i, t := range typat {
		if t < 0 || t >= len(znucl) {
			return nil, newCError(ErrSpeciesIndex, "NewCrystal", "atom %d has species %d, only %d species", i, t, len(znucl))
		}
	}
	recip, err := lat.Reciprocal()
	if err != nil {
		if e, ok := err.(Error); ok {
			e.Decorate("NewCrystal")
		}
		return nil, err
	}
	C := &Crystal{
		Lattice:    lat,
		Acell:      [3]float64{1, 1, 1},
		Reciprocal: recip,
		Znucl:      znucl,
		Typat:      typat,
		Reduced:    reduced,
	}
	C.Cartesian = C.ReducedToCartesian(reduced)
	return C, nil
}

//Len returns the number of atoms in the cell.
func (C *Crystal) Len() int {
	return len(C.Typat)
}

//NSpecies returns the number of species.
func (C *Crystal) NSpecies() int {
	return len(C.Znucl)
}

//Volume returns the volume of the cell, in the cube of the lattice units.
func (C *Crystal) Volume() float64 {
	return math.Abs(C.Lattice.Det())
}

//Symbols returns the element symbol of each atom.
func (C *Crystal) Symbols() []string {
	ret := make([]string, len(C.Typat))
	for i, t := range C.Typat {
		ret[i] = Symbol(C.Znucl[t])
	}
	return ret
}

//Masses returns the standard atomic mass of each atom. It returns error
//if an atom is a ghost or has no known mass.
func (C *Crystal) Masses() ([]float64, error) {
	ret := make([]float64, len(C.Typat))
	for i, s := range C.Symbols() {
		m, ok := Mass(s)
		if !ok {
			return nil, newCError(nil, "Masses", "no mass for atom %d (%s, Z=%d)", i, s, C.Znucl[C.Typat[i]])
		}
		ret[i] = m
	}
	return ret, nil
}

//ReducedToCartesian returns a new matrix with the cartesian version of red, which has one
//point per row.
func (C *Crystal) ReducedToCartesian(red *v3.Matrix) *v3.Matrix {
	n := red.NVecs()
	ret := v3.Zeros(n)
	for i := 0; i < n; i++ {
		ret.SetVec(i, C.Lattice.ToCartesian(red.Vec(i)))
	}
	return ret
}

//CartesianToReduced returns a new matrix with the reduced version of cart, which has one
//point per row.
func (C *Crystal) CartesianToReduced(cart *v3.Matrix) *v3.Matrix {
	n := cart.NVecs()
	ret := v3.Zeros(n)
	for i := 0; i < n; i++ {
		ret.SetVec(i, C.Lattice.ToReduced(C.Reciprocal, cart.Vec(i)))
	}
	return ret
}

//Copy returns a deep copy of the crystal.
func (C *Crystal) Copy() *Crystal {
	if C == nil {
		panic("Attempted to copy a nil crystal")
	}
	ret := &Crystal{
		Lattice:    LatticeFromDense(C.Lattice.m),
		Acell:      C.Acell,
		Reciprocal: mat.DenseCopyOf(C.Reciprocal),
		Znucl:      append([]int(nil), C.Znucl...),
		Typat:      append([]int(nil), C.Typat...),
		Reduced:    C.Reduced.Clone(),
		Cartesian:  C.Cartesian.Clone(),
	}
	return ret
}

//String returns a short description of the crystal.
func (C *Crystal) String() string {
	return fmt.Sprintf("crystal: %d atoms, %d species, volume %.4f", C.Len(), C.NSpecies(), C.Volume())
}

var _ Masser = (*Crystal)(nil)
