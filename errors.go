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

package agate

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDegenerateLattice is returned when the lattice vectors are linearly dependent,
	// so the reciprocal lattice does not exist.
	ErrDegenerateLattice = errors.New("degenerate lattice: zero determinant")
	// ErrSpeciesIndex is returned when an atom refers to a species that does not exist.
	ErrSpeciesIndex = errors.New("species index out of range")
	// ErrShape is returned when per-atom arrays disagree in length.
	ErrShape = errors.New("inconsistent number of atoms")
)

// CError is the general error type of the agate package. It wraps a
// cause, so errors.Is works against the sentinels above.
type CError struct {
	msg   string
	deco  []string
	cause error
}

func (err *CError) Error() string {
	if err.cause == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %v", err.msg, err.cause)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Unwrap returns the sentinel the error was built on, if any.
func (err *CError) Unwrap() error { return err.cause }

func newCError(cause error, caller string, format string, args ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), deco: []string{caller}, cause: cause}
}
