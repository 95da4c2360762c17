/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package query

import (
	"slices"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
)

// Offset is a resolved occurrence selector for a row_number() window:
// rank 1 under Desc is the most recent row, rank 1 under Asc the earliest.
type Offset struct {
	Rank      int
	Direction model.SortDirection
}

// ResolveRank maps a signed offset to a window rank and direction.
//
//	ResolveRank(1)  // {1, Asc}
//	ResolveRank(2)  // {2, Asc}
//	ResolveRank(0)  // {1, Desc}
//	ResolveRank(-1) // {2, Desc}
func ResolveRank(offset int) Offset {
	if offset >= 1 {
		return Offset{Rank: offset, Direction: model.Asc}
	}
	return Offset{Rank: 1 - offset, Direction: model.Desc}
}

// SelectByOffset sorts a copy of seq ascending by cmp and picks one element:
// offset 0 is the earliest, offset n>0 counts back from the latest (1 is the
// latest) and offset n<0 counts forward skipping the earliest (-1 is the
// second earliest). The result is false when the index falls outside the sequence.
func SelectByOffset[T any](seq []T, cmp func(a, b T) int, offset int) (T, bool) {
	var zero T
	n := len(seq)
	if n == 0 {
		return zero, false
	}
	sorted := slices.Clone(seq)
	slices.SortStableFunc(sorted, cmp)

	var index int
	switch {
	case offset == 0:
		index = 0
	case offset > 0:
		index = n - offset
	default:
		index = -offset
	}
	if index < 0 || index >= n {
		return zero, false
	}
	return sorted[index], true
}
