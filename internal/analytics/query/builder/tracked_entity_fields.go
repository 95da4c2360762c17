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
	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
	"github.com/lib/pq"
)

// Tracked entity attributes are columns of the main table named by their uid.
type trackedEntityRenderer struct{}

func (trackedEntityRenderer) key(id model.DimensionIdentifier) string { return id.Key() }

func (trackedEntityRenderer) columnName(id model.DimensionIdentifier) string {
	if id.Dimension.IsOfType(model.ParamStatic) {
		return id.Dimension.Static.ColumnName()
	}
	return id.Dimension.UID()
}

// value is the bare column name; the order subquery qualifies it with the main alias.
func (r trackedEntityRenderer) value(_ *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	return query.Raw(r.columnName(id)), nil
}

func (r trackedEntityRenderer) condition(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	column := query.Raw(pq.QuoteIdentifier(r.columnName(id)))
	return query.ValueCondition(ctx, column, id.Dimension.ValueType(), id.Dimension)
}

// NewTrackedEntityFieldsBuilder handles attributes, OU, CREATED and
// LAST_UPDATED of the tracked entity itself.
func NewTrackedEntityFieldsBuilder() SQLQueryBuilder {
	predicates := []DimensionPredicate{
		atLevel(model.LevelTrackedEntity),
		anyOf(
			isOfType(model.ParamAttribute),
			isStaticOneOf(model.OrgUnit, model.Created, model.LastUpdated),
		),
	}
	return &baseBuilder{
		name:             "TrackedEntityFieldsBuilder",
		headerFilters:    predicates,
		dimensionFilters: predicates,
		renderer:         trackedEntityRenderer{},
	}
}
