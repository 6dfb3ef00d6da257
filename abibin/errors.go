/*
 * errors.go, part of agate.
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
	"strings"

	"github.com/abinit/agate"
	"github.com/pkg/errors"
)

const formatName = "abinit"

var (
	// ErrTruncated is the cause of a FramingError when the stream ends inside a record.
	ErrTruncated = errors.New("unexpected end of stream")
	// ErrMarkerMismatch is the cause of a FramingError when a record marker
	// disagrees with the layout or with the other marker of the record.
	ErrMarkerMismatch = errors.New("record marker mismatch")
	// ErrUnresolvedDimension means a layout refers to a dimension not read yet.
	ErrUnresolvedDimension = errors.New("unresolved dimension")
	// ErrUnsupportedHeadform means no layout table covers the header format of the file.
	ErrUnsupportedHeadform = errors.New("unsupported header format")
	// ErrNegativeDimension means the file declares a negative count.
	ErrNegativeDimension = errors.New("negative dimension")
	// ErrMissingField means a layout lacks a field the decoder needs.
	ErrMissingField = errors.New("missing field")
	// ErrDecoderUsed is returned by Decode on a decoder that already ran.
	ErrDecoderUsed = errors.New("decoder already used")

	ErrDegenerateLattice = agate.ErrDegenerateLattice
	ErrSpeciesIndex      = agate.ErrSpeciesIndex
)

func joinDeco(deco []string) string {
	if len(deco) == 0 {
		return ""
	}
	return " (" + strings.Join(deco, " <- ") + ")"
}

// FramingError is returned when the record framing of a file is broken:
// the stream ends inside a record, or a marker has an unexpected value.
// Level is the record position for the opening marker, and minus the
// position for the closing one. Pseudopotential i, counting from 0, is at
// position 60+i and grid component i at 100+i.
type FramingError struct {
	Level     int
	Truncated bool
	Marker    uint32 //the marker read, if not truncated.
	Expected  int64  //what the marker should have been.
	Offset    int64  //bytes consumed when the error happened.
	filename  string
	deco      []string
}

func (err *FramingError) tag() string {
	if err.Level < 0 {
		return fmt.Sprintf("</H%d>", -err.Level)
	}
	return fmt.Sprintf("<H%d>", err.Level)
}

func (err *FramingError) Error() string {
	var what string
	if err.Truncated {
		what = ErrTruncated.Error()
	} else {
		what = fmt.Sprintf("%v: read %d, expected %d", ErrMarkerMismatch, err.Marker, err.Expected)
	}
	return fmt.Sprintf("abinit file %s: bad header %s at byte %d: %s%s", err.filename, err.tag(), err.Offset, what, joinDeco(err.deco))
}

// Unwrap returns ErrTruncated or ErrMarkerMismatch.
func (err *FramingError) Unwrap() error {
	if err.Truncated {
		return ErrTruncated
	}
	return ErrMarkerMismatch
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *FramingError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *FramingError) FileName() string { return err.filename }
func (err *FramingError) Format() string   { return formatName }
func (err *FramingError) Critical() bool   { return true }

// DataError is returned when the records are well framed but their content
// is not a valid structure: a species index out of range, a degenerate
// lattice, a negative count.
type DataError struct {
	msg      string
	cause    error
	filename string
	deco     []string
}

func (err *DataError) Error() string {
	s := fmt.Sprintf("abinit file %s: invalid data: %s", err.filename, err.msg)
	if err.cause != nil {
		s += ": " + err.cause.Error()
	}
	return s + joinDeco(err.deco)
}

func (err *DataError) Unwrap() error { return err.cause }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *DataError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *DataError) FileName() string { return err.filename }
func (err *DataError) Format() string   { return formatName }
func (err *DataError) Critical() bool   { return true }

// LayoutError is returned when no layout can describe the file, or a layout
// table is inconsistent with what the decoder needs.
type LayoutError struct {
	msg      string
	cause    error
	filename string
	deco     []string
}

func (err *LayoutError) Error() string {
	s := fmt.Sprintf("abinit file %s: layout: %s", err.filename, err.msg)
	if err.cause != nil {
		s += ": " + err.cause.Error()
	}
	return s + joinDeco(err.deco)
}

func (err *LayoutError) Unwrap() error { return err.cause }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *LayoutError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *LayoutError) FileName() string { return err.filename }
func (err *LayoutError) Format() string   { return formatName }
func (err *LayoutError) Critical() bool   { return true }

// UnknownFormatCode is the warning recorded when the format code of a file
// is neither a density nor a potential code. It is not fatal.
type UnknownFormatCode struct {
	Fform    int
	filename string
}

func (w UnknownFormatCode) Error() string {
	return fmt.Sprintf("abinit file %s: unknown format code %d", w.filename, w.Fform)
}

// lastFrameError is returned by Series.Next once every file was read.
type lastFrameError struct {
	filename string
	deco     []string
}

func (err *lastFrameError) Error() string { return "EOF" }

func (err *lastFrameError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *lastFrameError) FileName() string            { return err.filename }
func (err *lastFrameError) Format() string              { return formatName }
func (err *lastFrameError) Critical() bool              { return false }
func (err *lastFrameError) NormalLastFrameTermination() {}

// errDecorate adds caller to the decorations of err if it is one of our errors,
// otherwise it wraps err with caller as message.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(agate.Error); ok {
		e.Decorate(caller)
		return err
	}
	return errors.Wrap(err, caller)
}

// setFilename sets the file name in err if it is one of our errors and has none.
func setFilename(err error, name string) {
	switch e := err.(type) {
	case *FramingError:
		if e.filename == "" {
			e.filename = name
		}
	case *DataError:
		if e.filename == "" {
			e.filename = name
		}
	case *LayoutError:
		if e.filename == "" {
			e.filename = name
		}
	}
}

var (
	_ agate.TrajError      = (*FramingError)(nil)
	_ agate.TrajError      = (*DataError)(nil)
	_ agate.TrajError      = (*LayoutError)(nil)
	_ agate.LastFrameError = (*lastFrameError)(nil)
)
