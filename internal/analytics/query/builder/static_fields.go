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
)

// staticRenderer renders static columns qualified by the alias of their row.
type staticRenderer struct {
	alias func(query.Aliases) string
}

func (r staticRenderer) key(id model.DimensionIdentifier) string { return id.Key() }

func (r staticRenderer) column(ctx *query.QueryContext, id model.DimensionIdentifier) query.Renderable {
	return query.QualifiedColumn(r.alias(ctx.Aliases()), id.Dimension.Static.ColumnName())
}

func (r staticRenderer) value(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	return r.column(ctx, id), nil
}

func (r staticRenderer) condition(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	return query.ValueCondition(ctx, r.column(ctx, id), id.Dimension.Static.ValueType(), id.Dimension)
}

// eventStaticRenderer reports EVENT_DATE as the occurred date falling back to
// the scheduled date. Conditions still test the occurred date column.
type eventStaticRenderer struct {
	staticRenderer
}

func (r eventStaticRenderer) value(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	if !id.Dimension.IsStatic(model.EventDate) {
		return r.staticRenderer.value(ctx, id)
	}
	alias := r.alias(ctx.Aliases())
	occurred := query.QualifiedColumn(alias, model.EventDate.ColumnName()).Render()
	scheduled := query.QualifiedColumn(alias, model.ScheduledDate.ColumnName()).Render()
	return query.Raw("coalesce(" + occurred + ", " + scheduled + ")"), nil
}

// NewEventStaticFieldsBuilder handles EVENT_DATE, SCHEDULED_DATE, OU and
// EVENT_STATUS addressed to an event.
func NewEventStaticFieldsBuilder() SQLQueryBuilder {
	predicates := []DimensionPredicate{
		atLevel(model.LevelEvent),
		isStaticOneOf(model.EventDate, model.ScheduledDate, model.OrgUnit, model.EventStatus),
	}
	return &baseBuilder{
		name:             "EventStaticFieldsBuilder",
		headerFilters:    predicates,
		dimensionFilters: predicates,
		renderer:         eventStaticRenderer{staticRenderer{alias: func(a query.Aliases) string { return a.Event }}},
	}
}

// NewEnrollmentStaticFieldsBuilder handles ENROLLMENT_DATE, INCIDENT_DATE,
// ENROLLMENT_STATUS and OU addressed to an enrollment.
func NewEnrollmentStaticFieldsBuilder() SQLQueryBuilder {
	predicates := []DimensionPredicate{
		atLevel(model.LevelEnrollment),
		isStaticOneOf(model.EnrollmentDate, model.IncidentDate, model.EnrollmentStatus, model.OrgUnit),
	}
	return &baseBuilder{
		name:             "EnrollmentStaticFieldsBuilder",
		headerFilters:    predicates,
		dimensionFilters: predicates,
		renderer:         staticRenderer{alias: func(a query.Aliases) string { return a.Enrollment }},
	}
}
