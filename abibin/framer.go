/*
 * framer.go, part of agate.
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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

//size of the chunks in which large groups are read. A corrupt count can't
//make us allocate much more than what the stream actually contains.
const chunkSize = 1 << 16

// Framer reads Fortran unformatted sequential records: a 4 byte length
// marker, the payload and the same marker again. It streams, so only the
// record being read is ever in memory, and it never reads past the end of
// the current record: whatever follows the header is left in r.
type Framer struct {
	r         io.Reader
	order     binary.ByteOrder
	filename  string
	scratch   []byte
	offset    int64 //bytes consumed from the stream.
	level     int   //level of the open record, 0 if none.
	remaining int64 //payload bytes not read yet in the open record.
}

// NewFramer returns a Framer reading from r with the given byte order.
// The order defaults to little endian if nil.
func NewFramer(r io.Reader, order binary.ByteOrder) *Framer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Framer{r: r, order: order, scratch: make([]byte, chunkSize)}
}

// Offset returns the number of bytes consumed so far.
func (F *Framer) Offset() int64 { return F.offset }

func (F *Framer) truncated(level int, expected int64) error {
	return &FramingError{Level: level, Truncated: true, Expected: expected, Offset: F.offset, filename: F.filename}
}

//full reads exactly len(b) bytes. Running out of data is reported as a
//truncation at level.
func (F *Framer) full(b []byte, level int, expected int64) error {
	n, err := io.ReadFull(F.r, b)
	F.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return F.truncated(level, expected)
	}
	if err != nil {
		return errors.Wrapf(err, "abinit file %s: reading record %d", F.filename, level)
	}
	return nil
}

func (F *Framer) marker(level int, expected int64) (uint32, error) {
	b := F.scratch[:4]
	if err := F.full(b, level, expected); err != nil {
		return 0, err
	}
	return F.order.Uint32(b), nil
}

// Begin reads the opening marker of the record at level and returns it.
// Level is positive and only used for diagnostics.
func (F *Framer) Begin(level int) (uint32, error) {
	if F.level != 0 {
		return 0, &LayoutError{msg: fmt.Sprintf("record %d opened while %d is still open", level, F.level), filename: F.filename, deco: []string{"Framer.Begin"}}
	}
	m, err := F.marker(level, -1)
	if err != nil {
		return 0, err
	}
	F.level = level
	F.remaining = int64(m)
	return m, nil
}

// End reads the closing marker of the open record and checks it against
// expected. It fails if the payload was not read completely.
func (F *Framer) End(expected uint32) error {
	level := F.level
	if level == 0 {
		return &LayoutError{msg: "no open record", filename: F.filename, deco: []string{"Framer.End"}}
	}
	if F.remaining != 0 {
		return &LayoutError{msg: fmt.Sprintf("record %d closed with %d bytes unread", level, F.remaining), filename: F.filename, deco: []string{"Framer.End"}}
	}
	F.level = 0
	m, err := F.marker(-level, int64(expected))
	if err != nil {
		return err
	}
	if m != expected {
		return &FramingError{Level: -level, Marker: m, Expected: int64(expected), Offset: F.offset, filename: F.filename}
	}
	return nil
}

//payload checks that n elements of size bytes fit in the open record.
func (F *Framer) payload(n int64, size int64) error {
	if F.level == 0 {
		return &LayoutError{msg: "read outside a record", filename: F.filename, deco: []string{"Framer.payload"}}
	}
	if n < 0 || n > F.remaining/size {
		return &LayoutError{msg: fmt.Sprintf("reading %d elements of %d bytes, %d left in record %d", n, size, F.remaining, F.level), filename: F.filename, deco: []string{"Framer.payload"}}
	}
	return nil
}

//chunks reads n elements of size bytes in pieces, calling fn on each piece.
func (F *Framer) chunks(n int64, size int64, fn func(b []byte)) error {
	if err := F.payload(n, size); err != nil {
		return err
	}
	per := int64(chunkSize) / size
	for n > 0 {
		k := n
		if k > per {
			k = per
		}
		b := F.scratch[:k*size]
		if err := F.full(b, F.level, F.remaining); err != nil {
			return err
		}
		F.remaining -= k * size
		n -= k
		fn(b)
	}
	return nil
}

func capHint(n int64) int {
	if n > chunkSize {
		return chunkSize
	}
	return int(n)
}

// ReadInts reads n 32 bit integers from the open record.
func (F *Framer) ReadInts(n int64) ([]int32, error) {
	ret := make([]int32, 0, capHint(n))
	err := F.chunks(n, 4, func(b []byte) {
		for i := 0; i < len(b); i += 4 {
			ret = append(ret, int32(F.order.Uint32(b[i:])))
		}
	})
	return ret, err
}

// ReadDoubles reads n IEEE-754 doubles from the open record.
func (F *Framer) ReadDoubles(n int64) ([]float64, error) {
	ret := make([]float64, 0, capHint(n))
	err := F.chunks(n, 8, func(b []byte) {
		for i := 0; i < len(b); i += 8 {
			ret = append(ret, math.Float64frombits(F.order.Uint64(b[i:])))
		}
	})
	return ret, err
}

// ReadChars reads n bytes of text from the open record.
func (F *Framer) ReadChars(n int64) ([]byte, error) {
	ret := make([]byte, 0, capHint(n))
	err := F.chunks(n, 1, func(b []byte) {
		ret = append(ret, b...)
	})
	return ret, err
}

// ReadRecord reads a whole record described by spec. The opening marker
// must equal the size of the layout, and the closing marker must equal
// the opening one.
func (F *Framer) ReadRecord(spec Resolved) (*Fields, error) {
	m, err := F.Begin(spec.Level)
	if err != nil {
		return nil, err
	}
	if int64(m) != spec.Bytes {
		F.level = 0
		return nil, &FramingError{Level: spec.Level, Marker: m, Expected: spec.Bytes, Offset: F.offset, filename: F.filename}
	}
	f := newFields(spec.Name)
	for _, g := range spec.Groups {
		switch g.Kind {
		case Int32:
			v, err := F.ReadInts(g.N)
			if err != nil {
				return nil, errDecorate(err, "ReadRecord: "+g.Name)
			}
			f.ints[g.Name] = v
		case Float64:
			v, err := F.ReadDoubles(g.N)
			if err != nil {
				return nil, errDecorate(err, "ReadRecord: "+g.Name)
			}
			f.floats[g.Name] = v
		case Char:
			v, err := F.ReadChars(g.N)
			if err != nil {
				return nil, errDecorate(err, "ReadRecord: "+g.Name)
			}
			f.chars[g.Name] = v
		default:
			return nil, &LayoutError{msg: fmt.Sprintf("group %s has unknown kind %v", g.Name, g.Kind), filename: F.filename, deco: []string{"ReadRecord"}}
		}
	}
	if err := F.End(m); err != nil {
		return nil, err
	}
	return f, nil
}

// Fields holds the decoded groups of one record, by name. Accessors never
// fail, instead the first missing or short field is remembered and
// returned by Err.
type Fields struct {
	record string
	ints   map[string][]int32
	floats map[string][]float64
	chars  map[string][]byte
	err    error
}

func newFields(record string) *Fields {
	return &Fields{
		record: record,
		ints:   make(map[string][]int32),
		floats: make(map[string][]float64),
		chars:  make(map[string][]byte),
	}
}

func (f *Fields) missing(name string, n, got int) {
	if f.err != nil {
		return
	}
	f.err = &LayoutError{msg: fmt.Sprintf("record %s: field %s has %d elements, want %d", f.record, name, got, n), cause: ErrMissingField}
}

// Err returns the first error found by an accessor, if any.
func (f *Fields) Err() error { return f.err }

// Ints returns the int group name, which must have n elements. A negative n skips the check.
func (f *Fields) Ints(name string, n int) []int32 {
	v, ok := f.ints[name]
	if !ok || (n >= 0 && len(v) != n) {
		f.missing(name, n, len(v))
		return make([]int32, maxInt(n, 0))
	}
	return v
}

// Int returns the single value of the int group name.
func (f *Fields) Int(name string) int {
	return int(f.Ints(name, 1)[0])
}

// Floats returns the float group name, which must have n elements. A negative n skips the check.
func (f *Fields) Floats(name string, n int) []float64 {
	v, ok := f.floats[name]
	if !ok || (n >= 0 && len(v) != n) {
		f.missing(name, n, len(v))
		return make([]float64, maxInt(n, 0))
	}
	return v
}

// Float returns the single value of the float group name.
func (f *Fields) Float(name string) float64 {
	return f.Floats(name, 1)[0]
}

// Chars returns the text group name with trailing blanks and NULs removed.
func (f *Fields) Chars(name string) string {
	v, ok := f.chars[name]
	if !ok {
		f.missing(name, -1, 0)
		return ""
	}
	return strings.TrimRight(string(v), " \x00")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
