/*
 * options.go, part of agate.
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
	"log"

	"github.com/abinit/agate/internal/logging"
)

// LogLevel is the verbosity of the decoder log.
type LogLevel = logging.Level

const (
	LogError = logging.LevelError
	LogWarn  = logging.LevelWarn
	LogInfo  = logging.LevelInfo
	LogDebug = logging.LevelDebug
)

type options struct {
	order    binary.ByteOrder
	layouts  LayoutLookup
	log      *logging.Logger
	grid     bool
	filename string
	format   string
}

func defaultOptions() options {
	return options{
		order:   binary.LittleEndian,
		layouts: StandardLayouts(),
		log:     logging.Default(),
	}
}

// Option configures a Decoder.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithByteOrder sets the byte order of markers and values. Abinit files
// are little endian unless written on a big endian machine.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithLayouts replaces the layout tables.
func WithLayouts(l LayoutLookup) Option {
	return func(o *options) {
		if l != nil {
			o.layouts = l
		}
	}
}

// WithLogger sends the decoder messages up to level to l.
// A nil l silences the decoder.
func WithLogger(l *log.Logger, level LogLevel) Option {
	return func(o *options) {
		if l == nil {
			o.log = logging.Discard()
			return
		}
		o.log = logging.Wrap(l, level)
	}
}

// WithGrid also decodes the real space grid that follows the header of
// density and potential files.
func WithGrid(read bool) Option {
	return func(o *options) {
		o.grid = read
	}
}

// WithFilename sets the name used in errors and messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithFormat sets the compression of files opened by name: "plain", "gz"
// or "zst". The default, "", guesses from the extension.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}
