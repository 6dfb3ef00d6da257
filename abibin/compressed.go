/*
 * compressed.go, part of agate.
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
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abinit/agate/internal/logging"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//file is a decompressing reader that also closes the file under it.
type file struct {
	io.Reader
	closers []func() error
}

func (f *file) Close() error {
	var first error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//the zstd decoder's Close returns nothing.
func zstdCloser(d *zstd.Decoder) func() error {
	return func() error {
		d.Close()
		return nil
	}
}

// formatOf returns the compression format of name: "gz", "zst" or "plain".
// Abinit files often have no extension at all, they are plain.
func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return "gz"
	case ".zst", ".zstd":
		return "zst"
	}
	return "plain"
}

// Open opens the file name, decompressing it if needed. If format is
// empty it is deduced from the extension: .gz is gzip, .zst is
// zstandard, anything else is read as is.
func Open(name, format string) (io.ReadCloser, error) {
	return open(name, format, logging.Default())
}

func open(name, format string, log *logging.Logger) (io.ReadCloser, error) {
	fk := strings.ToLower(format)
	if fk == "" {
		fk = formatOf(name)
	}
	fh, err := os.Open(name)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	reader := bufio.NewReader(fh)
	ret := &file{closers: []func() error{fh.Close}}
	switch fk {
	case "gz", "gzip":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			fh.Close()
			return nil, errDecorate(err, "Open: "+name)
		}
		ret.Reader = gz
		ret.closers = append(ret.closers, gz.Close)
	case "zst", "zstd":
		zs, err := zstd.NewReader(reader)
		if err != nil {
			fh.Close()
			return nil, errDecorate(err, "Open: "+name)
		}
		ret.Reader = zs
		ret.closers = append(ret.closers, zstdCloser(zs))
	case "plain":
		ret.Reader = reader
	default:
		//if it's not a plain file, there will be a framing error later.
		log.Warnf("format %q not supported, %s will be read as a plain file", fk, name)
		ret.Reader = reader
	}
	return ret, nil
}

// DecodeFile opens the file name, decompressing it as set with WithFormat,
// and decodes its header.
func DecodeFile(name string, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	r, err := open(name, o.format, o.log)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	all := append(append([]Option(nil), opts...), WithFilename(name))
	return Decode(r, all...)
}
