/*
 * encoder_test.go, part of agate.
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
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

//encoder writes synthetic abinit files using the same layout tables the
//decoder reads them with.
type encoder struct {
	buf   bytes.Buffer
	order binary.ByteOrder
	table *Table
	dims  Dimensions
	spans []span
}

//span is where a record is in the output, markers included.
type span struct {
	level      int
	start, end int
}

type values map[string]interface{}

func newEncoder(order binary.ByteOrder) *encoder {
	if order == nil {
		order = binary.LittleEndian
	}
	return &encoder{order: order, table: Headform80()}
}

func (e *encoder) u32(v uint32) {
	var b [4]byte
	e.order.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) record(rec Record, iter int, v values) {
	spec, err := e.table.Layout(rec, iter, &e.dims)
	if err != nil {
		panic(err)
	}
	start := e.buf.Len()
	e.u32(uint32(spec.Bytes))
	for _, g := range spec.Groups {
		e.group(g, v[g.Name])
	}
	e.u32(uint32(spec.Bytes))
	e.spans = append(e.spans, span{level: spec.Level, start: start, end: e.buf.Len()})
}

func (e *encoder) group(g ResolvedGroup, v interface{}) {
	n := int(g.N)
	switch g.Kind {
	case Int32:
		ints, _ := v.([]int32)
		if v != nil && len(ints) != n {
			panic(fmt.Sprintf("group %s: %d values, want %d", g.Name, len(ints), n))
		}
		for i := 0; i < n; i++ {
			var x int32
			if ints != nil {
				x = ints[i]
			}
			e.u32(uint32(x))
		}
	case Float64:
		fl, _ := v.([]float64)
		if v != nil && len(fl) != n {
			panic(fmt.Sprintf("group %s: %d values, want %d", g.Name, len(fl), n))
		}
		for i := 0; i < n; i++ {
			var x float64
			if fl != nil {
				x = fl[i]
			}
			var b [8]byte
			e.order.PutUint64(b[:], math.Float64bits(x))
			e.buf.Write(b[:])
		}
	case Char:
		s, _ := v.(string)
		if len(s) > n {
			panic(fmt.Sprintf("group %s: %q longer than %d", g.Name, s, n))
		}
		e.buf.WriteString(s + strings.Repeat(" ", n-len(s)))
	}
}

func i32(v ...int) []int32 {
	ret := make([]int32, len(v))
	for i, x := range v {
		ret[i] = int32(x)
	}
	return ret
}

func flat9(v [][9]int) []int32 {
	var ret []int32
	for _, x := range v {
		ret = append(ret, i32(x[:]...)...)
	}
	if ret == nil {
		ret = []int32{}
	}
	return ret
}

func flat3(v [][3]float64) []float64 {
	ret := []float64{}
	for _, x := range v {
		ret = append(ret, x[:]...)
	}
	return ret
}

func f64(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

//encode writes the whole header in h, followed by the grid components, if any.
func (e *encoder) encode(h *Header, grid [][]float64) []byte {
	e.record(RecVersion, 0, values{"codvsn": h.Codvsn, "headform": i32(h.Headform), "fform": i32(h.Fform)})
	e.record(RecDims, 0, values{
		"bantot": i32(h.Bantot), "date": i32(h.Date), "intxc": i32(h.Intxc), "ixc": i32(h.Ixc),
		"natom": i32(h.Natom), "ngfft": i32(h.Ngfft[:]...), "nkpt": i32(h.Nkpt), "nspden": i32(h.Nspden),
		"nspinor": i32(h.Nspinor), "nsppol": i32(h.Nsppol), "nsym": i32(h.Nsym), "npsp": i32(h.Npsp),
		"ntypat": i32(h.Ntypat), "occopt": i32(h.Occopt), "pertcase": i32(h.Pertcase), "usepaw": i32(h.Usepaw),
		"ecut": []float64{h.Ecut}, "ecutdg": []float64{h.Ecutdg}, "ecutsm": []float64{h.Ecutsm},
		"ecut_eff": []float64{h.EcutEff}, "qptn": h.Qptn[:], "rprimd": h.Rprimd[:],
		"stmbias": []float64{h.Stmbias}, "tphysel": []float64{h.Tphysel}, "tsmear": []float64{h.Tsmear},
		"usewvl": i32(h.Usewvl), "nshiftk_orig": i32(h.NshiftkOrig), "nshiftk": i32(h.Nshiftk), "mband": i32(h.Mband),
	})
	nfft := h.Ngfft[0] * h.Ngfft[1] * h.Ngfft[2]
	for _, s := range []struct {
		d Dim
		v int
	}{{AtomCount, h.Natom}, {SpeciesCount, h.Ntypat}, {SpinCount, h.Nsppol}, {KptCount, h.Nkpt},
		{SymCount, h.Nsym}, {PspCount, h.Npsp}, {BandCount, h.Mband}, {ShiftOrigCount, h.NshiftkOrig},
		{ShiftCount, h.Nshiftk}, {SpinDensityCount, h.Nspden}, {GridPoints, nfft}} {
		if err := e.dims.Set(s.d, s.v); err != nil {
			panic(err)
		}
	}
	e.record(RecSymmetry, 0, values{
		"istwfk": i32(h.Istwfk...), "nband": i32(h.Nband...), "npwarr": i32(h.Npwarr...),
		"so_psp": i32(h.SoPsp...), "symafm": i32(h.Symafm...), "symrel": flat9(h.Symrel),
		"typat": i32(h.Typat...), "kptns": flat3(h.Kptns), "occ": f64(h.Occ), "tnons": flat3(h.Tnons),
		"znucltypat": f64(h.Znucltypat), "wtk": f64(h.Wtk),
	})
	e.record(RecScalars, 0, values{
		"residm": []float64{h.Residm}, "xred": f64(h.Xred), "etot": []float64{h.Etot},
		"fermie": []float64{h.Fermie}, "amu": f64(h.Amu),
	})
	e.record(RecKptMeta, 0, values{
		"kptopt": i32(h.Kptopt), "pawcpxocc": i32(h.Pawcpxocc), "nelect": []float64{h.Nelect},
		"charge": []float64{h.Charge}, "icoulomb": i32(h.Icoulomb), "kptrlatt": i32(h.Kptrlatt[:]...),
		"kptrlatt_orig": i32(h.KptrlattOrig[:]...), "shiftk_orig": flat3(h.ShiftkOrig), "shiftk": flat3(h.Shiftk),
	})
	for i, p := range h.Pseudos {
		e.record(RecPsp, i, values{
			"title": p.Title, "znuclpsp": []float64{p.Znuclpsp}, "zionpsp": []float64{p.Zionpsp},
			"pspso": i32(p.Pspso), "pspdat": i32(p.Pspdat), "pspcod": i32(p.Pspcod), "pspxc": i32(p.Pspxc),
			"lmn_size": i32(p.LmnSize), "md5": p.MD5,
		})
	}
	for s, g := range grid {
		e.record(RecGrid, s, values{gridField: g})
	}
	return e.buf.Bytes()
}

func encodeHeader(h *Header, grid [][]float64) ([]byte, []span) {
	e := newEncoder(nil)
	b := e.encode(h, grid)
	return b, e.spans
}

//silicon returns the header of a 2 atom silicon density file.
func silicon() *Header {
	const a = 10.26 / 2
	return &Header{
		Codvsn:       "9.10.3",
		Headform:     80,
		Fform:        52,
		Bantot:       6,
		Date:         20260101,
		Ixc:          11,
		Natom:        2,
		Ngfft:        [3]int{2, 2, 2},
		Nkpt:         2,
		Nspden:       1,
		Nspinor:      1,
		Nsppol:       1,
		Nsym:         2,
		Npsp:         1,
		Ntypat:       1,
		Occopt:       1,
		Ecut:         12,
		Ecutdg:       12,
		EcutEff:      12,
		Rprimd:       [9]float64{0, a, a, a, 0, a, a, a, 0},
		Tsmear:       0.01,
		NshiftkOrig:  1,
		Nshiftk:      1,
		Mband:        3,
		Istwfk:       []int{1, 1},
		Nband:        []int{3, 3},
		Npwarr:       []int{120, 118},
		SoPsp:        []int{1},
		Symafm:       []int{1, 1},
		Symrel:       [][9]int{{1, 0, 0, 0, 1, 0, 0, 0, 1}, {-1, 0, 0, 0, -1, 0, 0, 0, -1}},
		Typat:        []int{1, 1},
		Kptns:        [][3]float64{{0, 0, 0}, {0.5, 0, 0}},
		Occ:          []float64{2, 2, 2, 2, 2, 2},
		Tnons:        [][3]float64{{0, 0, 0}, {0.25, 0.25, 0.25}},
		Znucltypat:   []float64{14},
		Wtk:          []float64{0.25, 0.75},
		Residm:       1e-18,
		Xred:         []float64{0, 0, 0, 0.25, 0.25, 0.25},
		Etot:         -8.8,
		Fermie:       0.2,
		Amu:          []float64{28.0855},
		Kptopt:       1,
		Nelect:       8,
		Kptrlatt:     [9]int{2, 0, 0, 0, 2, 0, 0, 0, 2},
		KptrlattOrig: [9]int{2, 0, 0, 0, 2, 0, 0, 0, 2},
		ShiftkOrig:   [][3]float64{{0.5, 0.5, 0.5}},
		Shiftk:       [][3]float64{{0.5, 0.5, 0.5}},
		Pseudos: []Pseudo{{
			Title:    "Si ONCVPSP-3.3.0",
			Znuclpsp: 14,
			Zionpsp:  4,
			Pspdat:   20180412,
			Pspcod:   8,
			Pspxc:    11,
			MD5:      "0123456789abcdef0123456789abcdef",
		}},
	}
}
