/*
 * dims.go, part of agate.
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
)

// ExtractDimensions fills h and d from the fields of the dimensions record.
// Every dimension comes from the file, none is guessed. It returns
// the lattice, with rprimd vector k as column k.
func ExtractDimensions(f *Fields, h *Header, d *Dimensions) (*agate.Lattice, error) {
	h.Bantot = f.Int("bantot")
	h.Date = f.Int("date")
	h.Intxc = f.Int("intxc")
	h.Ixc = f.Int("ixc")
	h.Natom = f.Int("natom")
	ng := f.Ints("ngfft", 3)
	h.Ngfft = [3]int{int(ng[0]), int(ng[1]), int(ng[2])}
	h.Nkpt = f.Int("nkpt")
	h.Nspden = f.Int("nspden")
	h.Nspinor = f.Int("nspinor")
	h.Nsppol = f.Int("nsppol")
	h.Nsym = f.Int("nsym")
	h.Npsp = f.Int("npsp")
	h.Ntypat = f.Int("ntypat")
	h.Occopt = f.Int("occopt")
	h.Pertcase = f.Int("pertcase")
	h.Usepaw = f.Int("usepaw")
	h.Ecut = f.Float("ecut")
	h.Ecutdg = f.Float("ecutdg")
	h.Ecutsm = f.Float("ecutsm")
	h.EcutEff = f.Float("ecut_eff")
	copy(h.Qptn[:], f.Floats("qptn", 3))
	copy(h.Rprimd[:], f.Floats("rprimd", 9))
	h.Stmbias = f.Float("stmbias")
	h.Tphysel = f.Float("tphysel")
	h.Tsmear = f.Float("tsmear")
	h.Usewvl = f.Int("usewvl")
	h.NshiftkOrig = f.Int("nshiftk_orig")
	h.Nshiftk = f.Int("nshiftk")
	h.Mband = f.Int("mband")
	if err := f.Err(); err != nil {
		return nil, errDecorate(err, "ExtractDimensions")
	}
	nfft, err := gridPoints(h.Ngfft)
	if err != nil {
		return nil, errDecorate(err, "ExtractDimensions")
	}
	set := []struct {
		dim Dim
		v   int
	}{
		{AtomCount, h.Natom},
		{SpeciesCount, h.Ntypat},
		{SpinCount, h.Nsppol},
		{KptCount, h.Nkpt},
		{SymCount, h.Nsym},
		{PspCount, h.Npsp},
		{BandCount, h.Mband},
		{ShiftOrigCount, h.NshiftkOrig},
		{ShiftCount, h.Nshiftk},
		{SpinDensityCount, h.Nspden},
		{GridPoints, nfft},
	}
	for _, s := range set {
		if err := d.Set(s.dim, s.v); err != nil {
			return nil, errDecorate(err, "ExtractDimensions")
		}
	}
	r := h.Rprimd
	return agate.NewLattice(
		[3]float64{r[0], r[1], r[2]},
		[3]float64{r[3], r[4], r[5]},
		[3]float64{r[6], r[7], r[8]}), nil
}

//gridPoints returns ngfft1*ngfft2*ngfft3, checking that it is a sane count.
func gridPoints(ngfft [3]int) (int, error) {
	n := int64(1)
	for _, v := range ngfft {
		if v < 0 {
			return 0, &DataError{msg: fmt.Sprintf("ngfft = %v", ngfft), cause: ErrNegativeDimension}
		}
		n = satMul(n, int64(v))
	}
	if n > math.MaxInt32 {
		return 0, &DataError{msg: fmt.Sprintf("ngfft = %v gives %d grid points", ngfft, n)}
	}
	return int(n), nil
}
