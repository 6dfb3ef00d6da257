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

/*Package agate reads the structures stored in the binary files written by the abinit
package (densities, potentials, wavefunction headers) and keeps them as Crystal objects,
ready for analysis and visualization.

	**agate Capabilities**

    Decodes the Fortran-record header shared by abinit binary files: version,
	dimensions, symmetries, k-points, occupations, pseudopotential metadata
	(package abibin).

    Builds a Crystal from the decoded data: lattice, reciprocal lattice,
	species, reduced and cartesian coordinates.

    Reads the density or potential grid that follows the header in norm-conserving
	calculations.

    Reads plain, gzip or zstd compressed files, one at a time, in parallel batches,
	or as a trajectory of one structure per file.

agate uses its own matrix type for coordinates, v3.Matrix, based in gonum.org/v1/gonum/mat.
Each row of a v3.Matrix represents one point in space.

The lattice matrix has the lattice vectors as columns. All quantities are kept in the
units of the file (bohr for lengths). Unit conversion is left to the caller.*/
package agate
