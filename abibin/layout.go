/*
 * layout.go, part of agate.
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
	"sort"
)

// Kind is the element type of a field group.
type Kind int

const (
	Int32 Kind = iota
	Float64
	Char
)

// Size returns the size in bytes of one element.
func (k Kind) Size() int64 {
	switch k {
	case Int32:
		return 4
	case Float64:
		return 8
	default:
		return 1
	}
}

func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Float64:
		return "float64"
	case Char:
		return "char"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Dim names a dimension read from the first records of a file. Later
// layouts are parameterized by them.
type Dim int

const (
	AtomCount        Dim = iota // natom
	SpeciesCount                // ntypat
	SpinCount                   // nsppol
	KptCount                    // nkpt
	SymCount                    // nsym
	PspCount                    // npsp
	BandCount                   // mband
	ShiftOrigCount              // nshiftk_orig
	ShiftCount                  // nshiftk
	SpinDensityCount            // nspden
	GridPoints                  // ngfft1*ngfft2*ngfft3
	numDims
)

var dimNames = [numDims]string{"natom", "ntypat", "nsppol", "nkpt", "nsym", "npsp", "mband", "nshiftk_orig", "nshiftk", "nspden", "nfft"}

func (d Dim) String() string {
	if d < 0 || d >= numDims {
		return fmt.Sprintf("Dim(%d)", int(d))
	}
	return dimNames[d]
}

// Dimensions maps each Dim to its value. A dimension is set once, from the
// file, and never changes afterwards.
type Dimensions struct {
	vals [numDims]int
	set  [numDims]bool
}

// Set sets dim to v. It fails if v is negative or dim was already set.
func (D *Dimensions) Set(dim Dim, v int) error {
	if dim < 0 || dim >= numDims {
		return &LayoutError{msg: fmt.Sprintf("unknown dimension %v", dim), cause: ErrUnresolvedDimension, deco: []string{"Dimensions.Set"}}
	}
	if v < 0 {
		return &DataError{msg: fmt.Sprintf("%v = %d", dim, v), cause: ErrNegativeDimension, deco: []string{"Dimensions.Set"}}
	}
	if D.set[dim] {
		return &LayoutError{msg: fmt.Sprintf("dimension %v set twice", dim), deco: []string{"Dimensions.Set"}}
	}
	D.vals[dim] = v
	D.set[dim] = true
	return nil
}

// Get returns the value of dim and whether it has been set.
func (D *Dimensions) Get(dim Dim) (int, bool) {
	if D == nil || dim < 0 || dim >= numDims {
		return 0, false
	}
	return D.vals[dim], D.set[dim]
}

// Value returns the value of dim, or 0 if it is not set.
func (D *Dimensions) Value(dim Dim) int {
	v, _ := D.Get(dim)
	return v
}

// Count is the number of elements of a field group: Factor times the
// product of Dims. A Count with no Dims is a literal.
type Count struct {
	Factor int
	Dims   []Dim
}

// Lit is a literal count.
func Lit(n int) Count { return Count{Factor: n} }

// Of is factor times the product of dims.
func Of(factor int, dims ...Dim) Count { return Count{Factor: factor, Dims: dims} }

//counts above this are capped. They can never match a 32 bit marker anyway.
const maxCount = math.MaxInt64 / 16

// Resolve computes the count using d.
func (c Count) Resolve(d *Dimensions) (int64, error) {
	n := int64(c.Factor)
	if n < 0 {
		return 0, &LayoutError{msg: fmt.Sprintf("negative literal count %d", c.Factor), deco: []string{"Count.Resolve"}}
	}
	for _, dim := range c.Dims {
		v, ok := d.Get(dim)
		if !ok {
			return 0, &LayoutError{msg: fmt.Sprintf("dimension %v is not known yet", dim), cause: ErrUnresolvedDimension, deco: []string{"Count.Resolve"}}
		}
		n = satMul(n, int64(v))
	}
	return n, nil
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > maxCount/b {
		return maxCount
	}
	return a * b
}

// Group is a run of elements of the same kind inside a record.
type Group struct {
	Name  string
	Kind  Kind
	Count Count
}

// LayoutSpec is the ordered list of field groups of one record.
// Layouts are plain data, they never read anything.
type LayoutSpec struct {
	Name   string
	Groups []Group
}

// ResolvedGroup is a Group with its count computed.
type ResolvedGroup struct {
	Name string
	Kind Kind
	N    int64
}

// Resolved is a LayoutSpec with every count computed, ready to be read.
type Resolved struct {
	Name   string
	Level  int
	Groups []ResolvedGroup
	Bytes  int64 //what the markers around the record must say.
}

// Resolve computes every count of s with d, for the record at level.
func (s LayoutSpec) Resolve(level int, d *Dimensions) (Resolved, error) {
	r := Resolved{Name: s.Name, Level: level, Groups: make([]ResolvedGroup, len(s.Groups))}
	for i, g := range s.Groups {
		n, err := g.Count.Resolve(d)
		if err != nil {
			return Resolved{}, errDecorate(err, fmt.Sprintf("LayoutSpec.Resolve: %s.%s", s.Name, g.Name))
		}
		r.Groups[i] = ResolvedGroup{Name: g.Name, Kind: g.Kind, N: n}
		r.Bytes = satAdd(r.Bytes, satMul(n, g.Kind.Size()))
	}
	return r, nil
}

func satAdd(a, b int64) int64 {
	if a > maxCount-b {
		return maxCount
	}
	return a + b
}

// Record identifies a record of the header, or a repeated block.
type Record int

const (
	RecVersion  Record = iota + 1 //codvsn, headform, fform
	RecDims                       //scalars, dimensions and lattice
	RecSymmetry                   //per k-point, per symmetry and per atom arrays
	RecScalars                    //residm, xred, etot, fermie, amu
	RecKptMeta                    //k-point grid definition
	RecPsp                        //one per pseudopotential
	RecGrid                       //one per density/potential component
)

//name of the values in a grid record.
const gridField = "rho"

const (
	pspLevelBase  = 60
	gridLevelBase = 100
)

// Level returns the diagnostic level of the record: its position in
// the file, 60+i for pseudopotential i and 100+i for grid component i,
// both counted from 0.
func (r Record) Level(iter int) int {
	switch r {
	case RecPsp:
		return pspLevelBase + iter
	case RecGrid:
		return gridLevelBase + iter
	}
	return int(r)
}

// VersionLayout is the first record, the same for every header format.
var VersionLayout = LayoutSpec{
	Name: "version",
	Groups: []Group{
		{"codvsn", Char, Lit(6)},
		{"headform", Int32, Lit(1)},
		{"fform", Int32, Lit(1)},
	},
}

// Table holds the layouts of one header format.
type Table struct {
	Headform int
	Records  map[Record]LayoutSpec
}

// Layout returns the resolved layout of rec, iteration iter (only
// meaningful for repeated records), using d.
func (T *Table) Layout(rec Record, iter int, d *Dimensions) (Resolved, error) {
	spec, ok := T.Records[rec]
	if rec == RecVersion && !ok {
		spec, ok = VersionLayout, true
	}
	if !ok {
		return Resolved{}, &LayoutError{msg: fmt.Sprintf("headform %d has no layout for record %d", T.Headform, rec), deco: []string{"Table.Layout"}}
	}
	return spec.Resolve(rec.Level(iter), d)
}

// LayoutLookup gives the layout table for a header format.
type LayoutLookup interface {
	Lookup(headform int) (*Table, error)
}

// Layouts is a LayoutLookup over a set of tables. A table applies to its
// own header format and every later one, until the next table.
type Layouts []*Table

// Lookup returns the table with the greatest Headform not above headform.
func (L Layouts) Lookup(headform int) (*Table, error) {
	sorted := append(Layouts(nil), L...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Headform < sorted[j].Headform })
	var ret *Table
	for _, t := range sorted {
		if t.Headform <= headform {
			ret = t
		}
	}
	if ret == nil {
		return nil, &LayoutError{msg: fmt.Sprintf("no layout for header format %d", headform), cause: ErrUnsupportedHeadform, deco: []string{"Layouts.Lookup"}}
	}
	return ret, nil
}

// StandardLayouts returns the layouts known to this package.
func StandardLayouts() Layouts {
	return Layouts{Headform80()}
}

// Headform80 is the header written by abinit with header format 80 and later.
func Headform80() *Table {
	return &Table{
		Headform: 80,
		Records: map[Record]LayoutSpec{
			RecVersion: VersionLayout,
			RecDims: {
				Name: "dims",
				Groups: []Group{
					{"bantot", Int32, Lit(1)},
					{"date", Int32, Lit(1)},
					{"intxc", Int32, Lit(1)},
					{"ixc", Int32, Lit(1)},
					{"natom", Int32, Lit(1)},
					{"ngfft", Int32, Lit(3)},
					{"nkpt", Int32, Lit(1)},
					{"nspden", Int32, Lit(1)},
					{"nspinor", Int32, Lit(1)},
					{"nsppol", Int32, Lit(1)},
					{"nsym", Int32, Lit(1)},
					{"npsp", Int32, Lit(1)},
					{"ntypat", Int32, Lit(1)},
					{"occopt", Int32, Lit(1)},
					{"pertcase", Int32, Lit(1)},
					{"usepaw", Int32, Lit(1)},
					{"ecut", Float64, Lit(1)},
					{"ecutdg", Float64, Lit(1)},
					{"ecutsm", Float64, Lit(1)},
					{"ecut_eff", Float64, Lit(1)},
					{"qptn", Float64, Lit(3)},
					{"rprimd", Float64, Lit(9)},
					{"stmbias", Float64, Lit(1)},
					{"tphysel", Float64, Lit(1)},
					{"tsmear", Float64, Lit(1)},
					{"usewvl", Int32, Lit(1)},
					{"nshiftk_orig", Int32, Lit(1)},
					{"nshiftk", Int32, Lit(1)},
					{"mband", Int32, Lit(1)},
				},
			},
			RecSymmetry: {
				Name: "symmetry",
				Groups: []Group{
					{"istwfk", Int32, Of(1, KptCount)},
					{"nband", Int32, Of(1, KptCount, SpinCount)},
					{"npwarr", Int32, Of(1, KptCount)},
					{"so_psp", Int32, Of(1, PspCount)},
					{"symafm", Int32, Of(1, SymCount)},
					{"symrel", Int32, Of(9, SymCount)},
					{"typat", Int32, Of(1, AtomCount)},
					{"kptns", Float64, Of(3, KptCount)},
					{"occ", Float64, Of(1, BandCount, KptCount, SpinCount)},
					{"tnons", Float64, Of(3, SymCount)},
					{"znucltypat", Float64, Of(1, SpeciesCount)},
					{"wtk", Float64, Of(1, KptCount)},
				},
			},
			RecScalars: {
				Name: "scalars",
				Groups: []Group{
					{"residm", Float64, Lit(1)},
					{"xred", Float64, Of(3, AtomCount)},
					{"etot", Float64, Lit(1)},
					{"fermie", Float64, Lit(1)},
					{"amu", Float64, Of(1, SpeciesCount)},
				},
			},
			RecKptMeta: {
				Name: "kptmeta",
				Groups: []Group{
					{"kptopt", Int32, Lit(1)},
					{"pawcpxocc", Int32, Lit(1)},
					{"nelect", Float64, Lit(1)},
					{"charge", Float64, Lit(1)},
					{"icoulomb", Int32, Lit(1)},
					{"kptrlatt", Int32, Lit(9)},
					{"kptrlatt_orig", Int32, Lit(9)},
					{"shiftk_orig", Float64, Of(3, ShiftOrigCount)},
					{"shiftk", Float64, Of(3, ShiftCount)},
				},
			},
			RecPsp: {
				Name: "psp",
				Groups: []Group{
					{"title", Char, Lit(132)},
					{"znuclpsp", Float64, Lit(1)},
					{"zionpsp", Float64, Lit(1)},
					{"pspso", Int32, Lit(1)},
					{"pspdat", Int32, Lit(1)},
					{"pspcod", Int32, Lit(1)},
					{"pspxc", Int32, Lit(1)},
					{"lmn_size", Int32, Lit(1)},
					{"md5", Char, Lit(32)},
				},
			},
			RecGrid: {
				Name: "grid",
				Groups: []Group{
					{gridField, Float64, Of(1, GridPoints)},
				},
			},
		},
	}
}
