/*
 * series.go, part of agate.
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

	"github.com/abinit/agate"
	v3 "github.com/abinit/agate/v3"
)

// Series reads a list of abinit files, for instance the densities of the
// steps of a relaxation, as a trajectory: one frame per file. All files
// must have the same number of atoms. It implements agate.Traj.
type Series struct {
	names    []string
	opts     []Option
	next     int
	natoms   int
	pending  *Result //the first file, decoded to learn the number of atoms.
	last     *Result
	sel      []int //atoms put in the output of Next, all if nil.
	readable bool
}

// NewSeries returns a Series over the files in names. The first one is
// decoded right away.
func NewSeries(names []string, opts ...Option) (*Series, error) {
	if len(names) == 0 {
		return nil, &DataError{msg: "no files in series", deco: []string{"NewSeries"}}
	}
	res, err := DecodeFile(names[0], opts...)
	if err != nil {
		return nil, errDecorate(err, "NewSeries")
	}
	S := &Series{
		names:    append([]string(nil), names...),
		opts:     opts,
		natoms:   res.Crystal.Len(),
		pending:  res,
		readable: true,
	}
	return S, nil
}

// Select restricts the coordinates Next puts in its output to the atoms
// in indexes, in that order. An empty indexes selects all atoms again.
func (S *Series) Select(indexes []int) error {
	for _, i := range indexes {
		if i < 0 || i >= S.natoms {
			return &DataError{msg: fmt.Sprintf("atom %d selected, frames have %d", i, S.natoms), cause: agate.ErrShape, deco: []string{"Series.Select"}}
		}
	}
	S.sel = append([]int(nil), indexes...)
	return nil
}

// Readable returns true while there are frames left.
func (S *Series) Readable() bool { return S.readable }

// Len returns the number of atoms Next puts in its output: all the atoms
// of a frame, or the selected ones.
func (S *Series) Len() int {
	if S.sel != nil {
		return len(S.sel)
	}
	return S.natoms
}

// Last returns the result of the file read by the last call to Next.
func (S *Series) Last() *Result { return S.last }

// Next decodes the next file and puts the cartesian coordinates in
// output, if not nil. If a box is given, the 9 components of the lattice
// vectors are put there, vector after vector. After the last file it
// returns an error that implements agate.LastFrameError. An output of
// the wrong size is an error, and the frame is not consumed.
func (S *Series) Next(output *v3.Matrix, box ...[]float64) error {
	if S.next >= len(S.names) {
		S.readable = false
		return &lastFrameError{filename: S.names[len(S.names)-1], deco: []string{"Next"}}
	}
	name := S.names[S.next]
	if output != nil && output.NVecs() != S.Len() {
		return &DataError{msg: fmt.Sprintf("output has %d vectors, frames have %d", output.NVecs(), S.Len()), cause: agate.ErrShape, filename: name, deco: []string{"Series.Next"}}
	}
	res := S.pending
	S.pending = nil
	if res == nil {
		var err error
		res, err = DecodeFile(name, S.opts...)
		if err != nil {
			S.readable = false
			return errDecorate(err, "Series.Next")
		}
	}
	S.next++
	S.last = res
	C := res.Crystal
	if C.Len() != S.natoms {
		S.readable = false
		return &DataError{msg: fmt.Sprintf("%d atoms, the series has %d", C.Len(), S.natoms), cause: agate.ErrShape, filename: name, deco: []string{"Series.Next"}}
	}
	switch {
	case output == nil || output.NVecs() == 0:
	case S.sel != nil:
		if err := output.SomeVecsSafe(C.Cartesian, S.sel); err != nil {
			return &DataError{msg: "selecting atoms", cause: err, filename: name, deco: []string{"Series.Next"}}
		}
	default:
		output.Copy(C.Cartesian)
	}
	if len(box) > 0 && len(box[0]) >= 9 {
		for k := 0; k < 3; k++ {
			v := C.Lattice.Vector(k)
			copy(box[0][3*k:3*k+3], v[:])
		}
	}
	return nil
}

var _ agate.Traj = (*Series)(nil)
