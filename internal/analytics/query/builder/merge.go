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

package builder

import (
	"slices"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
)

// mergedDimension is the unit a select field is rendered from. filtered is
// set once any dimension contributed to the key.
type mergedDimension struct {
	id       model.DimensionIdentifier
	filtered bool
}

// mergeByKey collapses headers and dimensions sharing a key. Keys appear in
// header order followed by dimension-only keys in dimension order. Repeated
// dimensions accumulate their restriction items and filters.
func mergeByKey(headers, dimensions []model.DimensionIdentifier, key func(model.DimensionIdentifier) string) []mergedDimension {
	byKey := make(map[string]*mergedDimension, len(headers)+len(dimensions))
	var order []string

	for _, h := range headers {
		k := key(h)
		if _, ok := byKey[k]; ok {
			continue
		}
		byKey[k] = &mergedDimension{id: h}
		order = append(order, k)
	}

	for _, d := range dimensions {
		k := key(d)
		m, ok := byKey[k]
		if !ok {
			byKey[k] = &mergedDimension{id: d, filtered: true}
			order = append(order, k)
			continue
		}
		if !m.filtered {
			m.id = d
			m.filtered = true
			continue
		}
		m.id.Dimension.Items = append(append(slices.Grow([]string(nil), len(m.id.Dimension.Items)+len(d.Dimension.Items)), m.id.Dimension.Items...), d.Dimension.Items...)
		m.id.Dimension.Filters = append(append(slices.Grow([]model.QueryFilter(nil), len(m.id.Dimension.Filters)+len(d.Dimension.Filters)), m.id.Dimension.Filters...), d.Dimension.Filters...)
	}

	merged := make([]mergedDimension, 0, len(order))
	for _, k := range order {
		merged = append(merged, *byKey[k])
	}
	return merged
}
