/*
 * doc.go, part of agate.
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

/*
Package abibin decodes the header of the binary files written by abinit
(densities, potentials, wavefunctions) and builds the crystal structure
they describe.

The files are Fortran unformatted sequential files: every record is
framed by two 4 byte markers holding its length. The content of each
record is described by a LayoutSpec, a list of groups of integers, doubles
or characters whose sizes depend on dimensions read from earlier records.
Layouts are kept in tables, one per header format, so new formats only
need a new table.

Decoding goes through a fixed sequence of states:

	Start -> VersionRead -> DimensionsRead -> SymmetryAndCoordsRead ->
	ExtraScalarsRead -> KptMetaRead -> PspBlock -> [GridRead] -> Done

Any error leads to Failed, and nothing is returned.

A file is decoded with

	res, err := abibin.DecodeFile("run_o_DEN")

gzip and zstandard compressed files are read transparently. Many files can be
decoded concurrently with DecodeFiles, and a list of files can be read
as a trajectory with Series.

Errors are *FramingError, *DataError or *LayoutError. They all implement
agate.TrajError, and wrap the sentinel errors of this package, so
errors.Is can be used on them.
*/
package abibin
