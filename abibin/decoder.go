/*
 * decoder.go, part of agate.
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
	"io"

	"github.com/abinit/agate"
	"github.com/abinit/agate/internal/logging"
)

// State is the position of a Decoder in the file.
type State int

const (
	Start State = iota
	VersionRead
	DimensionsRead
	SymmetryAndCoordsRead
	ExtraScalarsRead
	KptMetaRead
	PspBlock
	GridRead
	Done
	Failed
)

var stateNames = [...]string{"Start", "VersionRead", "DimensionsRead", "SymmetryAndCoordsRead", "ExtraScalarsRead", "KptMetaRead", "PspBlock", "GridRead", "Done", "Failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal is true for Done and Failed.
func (s State) Terminal() bool { return s == Done || s == Failed }

// Result is what a successful decoding gives.
type Result struct {
	Crystal  *agate.Crystal
	Header   *Header
	Kind     FileKind
	Grid     *Grid    //nil unless requested and present.
	Warnings []string //non fatal problems, in the order found.
}

// Decoder reads the header of one abinit binary file. It runs once,
// from Start to Done or Failed, and never goes back. A Decoder must
// not be used from more than one goroutine; different decoders are
// independent.
type Decoder struct {
	fr    *Framer
	opts  options
	log   *logging.Logger
	state State
	path  []State
	table *Table
	dims  Dimensions
	res   *Result
	lat   *agate.Lattice
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := applyOptions(opts)
	fr := NewFramer(r, o.order)
	fr.filename = o.filename
	return &Decoder{fr: fr, opts: o, log: o.log, path: []State{Start}, res: &Result{Header: &Header{}}}
}

// State returns the current state of the decoder.
func (D *Decoder) State() State { return D.state }

// Path returns the states the decoder has gone through, starting with
// Start. PspBlock appears once per pseudopotential record.
func (D *Decoder) Path() []State { return append([]State(nil), D.path...) }

func (D *Decoder) setState(s State) {
	D.state = s
	D.path = append(D.path, s)
}

// Dimensions returns the dimensions read so far.
func (D *Decoder) Dimensions() Dimensions { return D.dims }

func (D *Decoder) warn(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	D.res.Warnings = append(D.res.Warnings, s)
	D.log.Warnf("%s: %s", D.opts.filename, s)
}

func (D *Decoder) fail(err error, caller string) error {
	D.setState(Failed)
	setFilename(err, D.opts.filename)
	D.log.Errorf("%s: %v", D.opts.filename, err)
	return errDecorate(err, caller)
}

func (D *Decoder) record(rec Record, iter int) (*Fields, error) {
	spec, err := D.table.Layout(rec, iter, &D.dims)
	if err != nil {
		return nil, err
	}
	D.log.Debugf("%s: record %s (level %d), %d bytes at %d", D.opts.filename, spec.Name, spec.Level, spec.Bytes, D.fr.Offset())
	return D.fr.ReadRecord(spec)
}

// Decode reads the header and builds the structure. On error the
// decoder is Failed and no partial result is returned. Calling Decode
// again returns ErrDecoderUsed.
func (D *Decoder) Decode() (*Result, error) {
	if D.state != Start {
		return nil, ErrDecoderUsed
	}
	steps := []struct {
		name string
		run  func() error
		next State
	}{
		{"version", D.readVersion, VersionRead},
		{"dimensions", D.readDimensions, DimensionsRead},
		{"symmetry", D.readSymmetry, SymmetryAndCoordsRead},
		{"scalars", D.readScalars, ExtraScalarsRead},
		{"kptmeta", D.readKptMeta, KptMetaRead},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return nil, D.fail(err, "Decode: "+s.name)
		}
		D.setState(s.next)
	}
	//readPseudos moves to PspBlock once per record, and not at all without them.
	if err := D.readPseudos(); err != nil {
		return nil, D.fail(err, "Decode: pseudopotentials")
	}
	if D.opts.grid {
		if err := D.readGrid(); err != nil {
			return nil, D.fail(err, "Decode: grid")
		}
		D.setState(GridRead)
	}
	D.setState(Done)
	D.log.Infof("%s: %s file, %d atoms, %d species, %d bytes read", D.opts.filename, D.res.Kind, D.dims.Value(AtomCount), D.dims.Value(SpeciesCount), D.fr.Offset())
	return D.res, nil
}

func (D *Decoder) readVersion() error {
	spec, err := VersionLayout.Resolve(RecVersion.Level(0), &D.dims)
	if err != nil {
		return err
	}
	f, err := D.fr.ReadRecord(spec)
	if err != nil {
		return err
	}
	h := D.res.Header
	if err := h.setVersion(f); err != nil {
		return err
	}
	D.res.Kind = Classify(h.Fform)
	if D.res.Kind == Unknown {
		D.warn("%v", UnknownFormatCode{Fform: h.Fform, filename: D.opts.filename})
	}
	D.table, err = D.opts.layouts.Lookup(h.Headform)
	if err != nil {
		return err
	}
	D.log.Debugf("%s: abinit %s, headform %d (layout %d), fform %d", D.opts.filename, h.Codvsn, h.Headform, D.table.Headform, h.Fform)
	return nil
}

func (D *Decoder) readDimensions() error {
	f, err := D.record(RecDims, 0)
	if err != nil {
		return err
	}
	D.lat, err = ExtractDimensions(f, D.res.Header, &D.dims)
	return err
}

func (D *Decoder) readSymmetry() error {
	f, err := D.record(RecSymmetry, 0)
	if err != nil {
		return err
	}
	return D.res.Header.setSymmetry(f, &D.dims)
}

//readScalars reads the last record the structure needs, and builds it.
func (D *Decoder) readScalars() error {
	f, err := D.record(RecScalars, 0)
	if err != nil {
		return err
	}
	h := D.res.Header
	if err := h.setScalars(f, &D.dims); err != nil {
		return err
	}
	D.res.Crystal, err = Assemble(D.lat, h.Znucltypat, h.Typat, h.Xred)
	return err
}

func (D *Decoder) readKptMeta() error {
	f, err := D.record(RecKptMeta, 0)
	if err != nil {
		return err
	}
	return D.res.Header.setKptMeta(f, &D.dims)
}

func (D *Decoder) readPseudos() error {
	h := D.res.Header
	n := D.dims.Value(PspCount)
	h.Pseudos = make([]Pseudo, 0, capHint(int64(n)))
	for i := 0; i < n; i++ {
		f, err := D.record(RecPsp, i)
		if err != nil {
			return err
		}
		p, err := readPseudo(f)
		if err != nil {
			return err
		}
		h.Pseudos = append(h.Pseudos, p)
		D.setState(PspBlock)
	}
	return nil
}

func (D *Decoder) readGrid() error {
	if !D.res.Kind.HasGrid() {
		D.warn("no grid in a %s file (fform %d)", D.res.Kind, D.res.Header.Fform)
		return nil
	}
	if D.res.Header.Usepaw != 0 {
		D.warn("grid not read: PAW data follows the header")
		return nil
	}
	h := D.res.Header
	G := &Grid{Ngfft: h.Ngfft, Volume: D.res.Crystal.Volume()}
	npts := D.dims.Value(GridPoints)
	for s := 0; s < D.dims.Value(SpinDensityCount); s++ {
		f, err := D.record(RecGrid, s)
		if err != nil {
			return err
		}
		G.Data = append(G.Data, f.Floats(gridField, npts))
		if err := f.Err(); err != nil {
			return err
		}
	}
	D.res.Grid = G
	return nil
}

// Decode reads the header in r.
func Decode(r io.Reader, opts ...Option) (*Result, error) {
	return NewDecoder(r, opts...).Decode()
}
