/*
 * header.go, part of agate.
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

import "fmt"

// Header is the whole decoded header of an abinit binary file, with the
// names abinit uses. Per-atom species indexes are kept 1-based, as in the
// file; the Crystal in a Result has them 0-based.
type Header struct {
	//record 1
	Codvsn   string
	Headform int
	Fform    int

	//record 2
	Bantot      int
	Date        int
	Intxc       int
	Ixc         int
	Natom       int
	Ngfft       [3]int
	Nkpt        int
	Nspden      int
	Nspinor     int
	Nsppol      int
	Nsym        int
	Npsp        int
	Ntypat      int
	Occopt      int
	Pertcase    int
	Usepaw      int
	Ecut        float64
	Ecutdg      float64
	Ecutsm      float64
	EcutEff     float64
	Qptn        [3]float64
	Rprimd      [9]float64 //lattice vectors, one after the other.
	Stmbias     float64
	Tphysel     float64
	Tsmear      float64
	Usewvl      int
	NshiftkOrig int
	Nshiftk     int
	Mband       int

	//record 3
	Istwfk     []int
	Nband      []int
	Npwarr     []int
	SoPsp      []int
	Symafm     []int
	Symrel     [][9]int
	Typat      []int
	Kptns      [][3]float64
	Occ        []float64
	Tnons      [][3]float64
	Znucltypat []float64
	Wtk        []float64

	//record 4
	Residm float64
	Xred   []float64
	Etot   float64
	Fermie float64
	Amu    []float64

	//record 5
	Kptopt       int
	Pawcpxocc    int
	Nelect       float64
	Charge       float64
	Icoulomb     int
	Kptrlatt     [9]int
	KptrlattOrig [9]int
	ShiftkOrig   [][3]float64
	Shiftk       [][3]float64

	Pseudos []Pseudo
}

// Pseudo is the description of one pseudopotential, from its own record.
type Pseudo struct {
	Title    string
	Znuclpsp float64
	Zionpsp  float64
	Pspso    int
	Pspdat   int
	Pspcod   int
	Pspxc    int
	LmnSize  int
	MD5      string
}

func (P Pseudo) String() string {
	return fmt.Sprintf("%s (Z=%g, Zion=%g, pspcod %d)", P.Title, P.Znuclpsp, P.Zionpsp, P.Pspcod)
}

func toInts(v []int32) []int {
	ret := make([]int, len(v))
	for i, x := range v {
		ret[i] = int(x)
	}
	return ret
}

func toInts9(v []int32) [9]int {
	var ret [9]int
	for i := range ret {
		ret[i] = int(v[i])
	}
	return ret
}

func toInts9s(v []int32) [][9]int {
	ret := make([][9]int, len(v)/9)
	for i := range ret {
		ret[i] = toInts9(v[9*i:])
	}
	return ret
}

func toVecs(v []float64) [][3]float64 {
	ret := make([][3]float64, len(v)/3)
	for i := range ret {
		ret[i] = [3]float64{v[3*i], v[3*i+1], v[3*i+2]}
	}
	return ret
}

func (H *Header) setVersion(f *Fields) error {
	H.Codvsn = f.Chars("codvsn")
	H.Headform = f.Int("headform")
	H.Fform = f.Int("fform")
	return f.Err()
}

func (H *Header) setSymmetry(f *Fields, d *Dimensions) error {
	nkpt := d.Value(KptCount)
	nsym := d.Value(SymCount)
	H.Istwfk = toInts(f.Ints("istwfk", nkpt))
	H.Nband = toInts(f.Ints("nband", nkpt*d.Value(SpinCount)))
	H.Npwarr = toInts(f.Ints("npwarr", nkpt))
	H.SoPsp = toInts(f.Ints("so_psp", d.Value(PspCount)))
	H.Symafm = toInts(f.Ints("symafm", nsym))
	H.Symrel = toInts9s(f.Ints("symrel", 9*nsym))
	H.Typat = toInts(f.Ints("typat", d.Value(AtomCount)))
	H.Kptns = toVecs(f.Floats("kptns", 3*nkpt))
	H.Occ = f.Floats("occ", -1)
	H.Tnons = toVecs(f.Floats("tnons", 3*nsym))
	H.Znucltypat = f.Floats("znucltypat", d.Value(SpeciesCount))
	H.Wtk = f.Floats("wtk", nkpt)
	return f.Err()
}

func (H *Header) setScalars(f *Fields, d *Dimensions) error {
	H.Residm = f.Float("residm")
	H.Xred = f.Floats("xred", 3*d.Value(AtomCount))
	H.Etot = f.Float("etot")
	H.Fermie = f.Float("fermie")
	H.Amu = f.Floats("amu", d.Value(SpeciesCount))
	return f.Err()
}

func (H *Header) setKptMeta(f *Fields, d *Dimensions) error {
	H.Kptopt = f.Int("kptopt")
	H.Pawcpxocc = f.Int("pawcpxocc")
	H.Nelect = f.Float("nelect")
	H.Charge = f.Float("charge")
	H.Icoulomb = f.Int("icoulomb")
	H.Kptrlatt = toInts9(f.Ints("kptrlatt", 9))
	H.KptrlattOrig = toInts9(f.Ints("kptrlatt_orig", 9))
	H.ShiftkOrig = toVecs(f.Floats("shiftk_orig", 3*d.Value(ShiftOrigCount)))
	H.Shiftk = toVecs(f.Floats("shiftk", 3*d.Value(ShiftCount)))
	return f.Err()
}

func readPseudo(f *Fields) (Pseudo, error) {
	p := Pseudo{
		Title:    f.Chars("title"),
		Znuclpsp: f.Float("znuclpsp"),
		Zionpsp:  f.Float("zionpsp"),
		Pspso:    f.Int("pspso"),
		Pspdat:   f.Int("pspdat"),
		Pspcod:   f.Int("pspcod"),
		Pspxc:    f.Int("pspxc"),
		LmnSize:  f.Int("lmn_size"),
		MD5:      f.Chars("md5"),
	}
	return p, f.Err()
}
