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

package model

import "strings"

// SortDirection is the direction of an order clause or of a row-number window.
type SortDirection int

const (
	Asc SortDirection = iota
	Desc
)

// ParseSortDirection accepts "asc" and "desc" in any case. Empty input means ascending.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return Asc, false
}

// SQL renders the keyword in lower case, as used in the subquery templates.
func (s SortDirection) SQL() string {
	if s == Desc {
		return "desc"
	}
	return "asc"
}

func (s SortDirection) String() string { return strings.ToUpper(s.SQL()) }

// SortingParam requests ordering by a dimension.
type SortingParam struct {
	Dimension DimensionIdentifier
	Direction SortDirection
}
