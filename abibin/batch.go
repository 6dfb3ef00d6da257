/*
 * batch.go, part of agate.
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
	"context"

	"golang.org/x/sync/errgroup"
)

// DecodeFiles decodes the files in names concurrently, with at most limit
// files open at a time (no limit if limit < 1). Results are in the order
// of names. The first error cancels the files not started yet and is
// returned, with no results.
func DecodeFiles(ctx context.Context, names []string, limit int, opts ...Option) ([]*Result, error) {
	ret := make([]*Result, len(names))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := DecodeFile(name, opts...)
			if err != nil {
				return errDecorate(err, "DecodeFiles")
			}
			ret[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
