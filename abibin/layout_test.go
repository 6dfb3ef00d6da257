/*
 * layout_test.go, part of agate.
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedSizes(Te *testing.T) {
	var d Dimensions
	t := Headform80()
	for _, c := range []struct {
		rec   Record
		iter  int
		level int
		bytes int64
	}{{RecVersion, 0, 1, 14}, {RecDims, 0, 2, 240}, {RecPsp, 1, 61, 200}, {RecPsp, 4, 64, 200}} {
		r, err := t.Layout(c.rec, c.iter, &d)
		require.NoError(Te, err)
		assert.Equal(Te, c.bytes, r.Bytes, "record %d", c.rec)
		assert.Equal(Te, c.level, r.Level)
	}
	_, err := t.Layout(RecSymmetry, 0, &d)
	assert.True(Te, errors.Is(err, ErrUnresolvedDimension), "%v", err)
	_, err = t.Layout(Record(42), 0, &d)
	var le *LayoutError
	assert.True(Te, errors.As(err, &le))
}

func TestResolve(Te *testing.T) {
	var d Dimensions
	require.NoError(Te, d.Set(KptCount, 4))
	require.NoError(Te, d.Set(BandCount, 10))
	require.NoError(Te, d.Set(SpinCount, 2))
	n, err := Of(1, BandCount, KptCount, SpinCount).Resolve(&d)
	require.NoError(Te, err)
	assert.Equal(Te, int64(80), n)
	n, err = Lit(9).Resolve(&d)
	require.NoError(Te, err)
	assert.Equal(Te, int64(9), n)
	//dimensions can't change once set.
	assert.Error(Te, d.Set(KptCount, 5))
	assert.Equal(Te, 4, d.Value(KptCount))
	assert.True(Te, errors.Is(d.Set(AtomCount, -2), ErrNegativeDimension))
	_, ok := d.Get(AtomCount)
	assert.False(Te, ok)
	spec := LayoutSpec{Name: "test", Groups: []Group{{"a", Int32, Of(3, KptCount)}, {"b", Float64, Of(1, BandCount)}, {"c", Char, Lit(5)}}}
	r, err := spec.Resolve(7, &d)
	require.NoError(Te, err)
	assert.Equal(Te, int64(4*12+8*10+5), r.Bytes)
	assert.Equal(Te, 7, r.Level)
	assert.Equal(Te, "nkpt", KptCount.String())
}

func TestLookup(Te *testing.T) {
	old := &Table{Headform: 57, Records: map[Record]LayoutSpec{}}
	L := Layouts{Headform80(), old}
	t, err := L.Lookup(79)
	require.NoError(Te, err)
	assert.Equal(Te, 57, t.Headform)
	t, err = L.Lookup(200)
	require.NoError(Te, err)
	assert.Equal(Te, 80, t.Headform)
	_, err = L.Lookup(56)
	assert.True(Te, errors.Is(err, ErrUnsupportedHeadform))
	_, err = StandardLayouts().Lookup(79)
	assert.True(Te, errors.Is(err, ErrUnsupportedHeadform))
}

func TestCustomLayout(Te *testing.T) {
	//an old table that lacks record 2 fields fails cleanly.
	broken := &Table{Headform: 50, Records: map[Record]LayoutSpec{
		RecDims: {Name: "dims", Groups: []Group{{"natom", Int32, Lit(1)}}},
	}}
	e := newEncoder(nil)
	e.record(RecVersion, 0, values{"codvsn": "7.0.0", "headform": i32(50), "fform": i32(52)})
	e.table = broken
	e.record(RecDims, 0, values{"natom": i32(1)})
	_, err := Decode(bytes.NewReader(e.buf.Bytes()), quiet, WithLayouts(Layouts{broken}))
	var le *LayoutError
	require.True(Te, errors.As(err, &le), "%v", err)
	assert.True(Te, errors.Is(err, ErrMissingField))
}

func TestFramer(Te *testing.T) {
	var buf bytes.Buffer
	w := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	w(12)
	w(7)
	buf.Write([]byte("abcdefgh"))
	w(12)
	F := NewFramer(&buf, nil)
	m, err := F.Begin(1)
	require.NoError(Te, err)
	assert.Equal(Te, uint32(12), m)
	ints, err := F.ReadInts(1)
	require.NoError(Te, err)
	assert.Equal(Te, []int32{7}, ints)
	_, err = F.ReadDoubles(2)
	var le *LayoutError
	assert.True(Te, errors.As(err, &le), "reading past the record")
	c, err := F.ReadChars(8)
	require.NoError(Te, err)
	assert.Equal(Te, "abcdefgh", string(c))
	require.NoError(Te, F.End(m))
	assert.Equal(Te, int64(20), F.Offset())
	_, err = F.Begin(2)
	var fe *FramingError
	require.True(Te, errors.As(err, &fe))
	assert.True(Te, fe.Truncated)
	assert.Equal(Te, 2, fe.Level)
}

func TestFieldsMissing(Te *testing.T) {
	f := newFields("test")
	f.ints["n"] = []int32{3}
	assert.Equal(Te, 3, f.Int("n"))
	assert.NoError(Te, f.Err())
	assert.Equal(Te, []float64{0, 0}, f.Floats("x", 2))
	assert.Equal(Te, 0, f.Int("m"))
	require.Error(Te, f.Err())
	assert.Contains(Te, f.Err().Error(), "field x")
}
