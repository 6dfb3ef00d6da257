/*
 * grid.go, part of agate.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Grid is the real space function stored after the header of density and
// potential files: one component per spin density, each with
// Ngfft[0]*Ngfft[1]*Ngfft[2] values, first index fastest.
type Grid struct {
	Ngfft  [3]int
	Data   [][]float64
	Volume float64 //of the cell, to integrate.
}

// Components returns the number of spin density components.
func (G *Grid) Components() int { return len(G.Data) }

// Points returns the number of grid points per component.
func (G *Grid) Points() int { return G.Ngfft[0] * G.Ngfft[1] * G.Ngfft[2] }

// At returns the value of component s at grid point (i, j, k).
func (G *Grid) At(s, i, j, k int) float64 {
	if i < 0 || j < 0 || k < 0 || i >= G.Ngfft[0] || j >= G.Ngfft[1] || k >= G.Ngfft[2] {
		panic(fmt.Sprintf("grid point (%d,%d,%d) out of %v", i, j, k, G.Ngfft))
	}
	return G.Data[s][i+G.Ngfft[0]*(j+G.Ngfft[1]*k)]
}

// Mean returns the average of component s, NaN for an empty grid.
func (G *Grid) Mean(s int) float64 {
	if len(G.Data[s]) == 0 {
		return math.NaN()
	}
	return stat.Mean(G.Data[s], nil)
}

// Min returns the smallest value of component s, NaN for an empty grid.
func (G *Grid) Min(s int) float64 {
	if len(G.Data[s]) == 0 {
		return math.NaN()
	}
	return floats.Min(G.Data[s])
}

// Max returns the largest value of component s, NaN for an empty grid.
func (G *Grid) Max(s int) float64 {
	if len(G.Data[s]) == 0 {
		return math.NaN()
	}
	return floats.Max(G.Data[s])
}

// Integral integrates component s over the cell. For a density in
// electrons per bohr^3 it gives the number of electrons.
func (G *Grid) Integral(s int) float64 {
	n := len(G.Data[s])
	if n == 0 {
		return 0
	}
	return floats.Sum(G.Data[s]) * G.Volume / float64(n)
}
