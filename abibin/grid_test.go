/*
 * grid_test.go, part of agate.
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(Te *testing.T) {
	h := silicon()
	h.Fform = 102
	h.Nspden = 2
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	down := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	data, spans := encodeHeader(h, [][]float64{up, down})
	D := NewDecoder(bytes.NewReader(data), quiet, WithGrid(true))
	res, err := D.Decode()
	require.NoError(Te, err)
	assert.Equal(Te, Done, D.State())
	assert.Equal(Te, Potential, res.Kind)
	G := res.Grid
	require.NotNil(Te, G)
	assert.Equal(Te, 2, G.Components())
	assert.Equal(Te, 8, G.Points())
	assert.Equal(Te, up, G.Data[0])
	assert.Equal(Te, 4.5, G.Mean(0))
	assert.Equal(Te, 1.0, G.Min(0))
	assert.Equal(Te, 8.0, G.Max(0))
	//first index runs fastest.
	assert.Equal(Te, 2.0, G.At(0, 1, 0, 0))
	assert.Equal(Te, 3.0, G.At(0, 0, 1, 0))
	assert.Equal(Te, 5.0, G.At(0, 0, 0, 1))
	vol := res.Crystal.Volume()
	assert.InDelta(Te, 0.5*vol, G.Integral(1), 1e-9)
	assert.InDelta(Te, 36*vol/8, G.Integral(0), 1e-9)

	//without the option the grid is left alone.
	res, err = Decode(bytes.NewReader(data), quiet)
	require.NoError(Te, err)
	assert.Nil(Te, res.Grid)

	//a broken grid record is reported at its own level.
	last := spans[len(spans)-1]
	assert.Equal(Te, 101, last.level)
	_, err = Decode(bytes.NewReader(data[:last.end-1]), quiet, WithGrid(true))
	var fe *FramingError
	require.True(Te, errors.As(err, &fe), "%v", err)
	assert.Equal(Te, -101, fe.Level)
}

func TestGridSkipped(Te *testing.T) {
	h := silicon()
	h.Usepaw = 1
	data, _ := encodeHeader(h, nil)
	D := NewDecoder(bytes.NewReader(data), quiet, WithGrid(true))
	res, err := D.Decode()
	require.NoError(Te, err)
	assert.Nil(Te, res.Grid)
	require.Len(Te, res.Warnings, 1)
	assert.Contains(Te, res.Warnings[0], "PAW")

	h = silicon()
	h.Fform = 2 //wavefunction
	data, _ = encodeHeader(h, nil)
	res, err = Decode(bytes.NewReader(data), quiet, WithGrid(true))
	require.NoError(Te, err)
	assert.Nil(Te, res.Grid)
	assert.Len(Te, res.Warnings, 2)
}
