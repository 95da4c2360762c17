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
	"fmt"
	"strconv"
	"strings"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/lib/pq"
)

// The text of these templates is a contract with the analytics tables and is
// compared byte for byte in tests. ${...} placeholders are substituted in one pass.
const (
	enrollmentSelectTemplate = "select *, row_number() over ( partition by trackedentity order by enrollmentdate ${enrollmentDirection} ) as rn from ${enrollmentTable} where program = ${programUid} and ${teAlias}.trackedentity = trackedentity"
	eventSelectTemplate      = "select *, row_number() over ( partition by enrollment order by ${eventOrder} ${eventDirection} ) as rn from ${eventTable} where programstage = ${programStageUid}${scheduleGuard} and enrollment = (select enrollment from (${enrollmentSelect}) ${enrollmentAlias} where ${enrollmentAlias}.rn = ${enrollmentRank})"

	enrollmentOrderTemplate  = "(select ${field} from (${enrollmentSelect}) ${enrollmentAlias} where ${enrollmentAlias}.rn = ${enrollmentRank})"
	eventOrderTemplate       = "(select ${field} from (${eventSelect}) ${eventAlias} where ${eventAlias}.rn = ${eventRank})"
	dataElementOrderTemplate = "(select ${field} from ${eventTable} where event = (select event from (${eventSelect}) ${eventAlias} where ${eventAlias}.rn = ${eventRank}))"

	teExistsTemplate          = "exists(select 1 from ${teTable} where trackedentity = ${teAlias}.trackedentity and ${field})"
	enrollmentExistsTemplate  = "exists(select 1 from (${enrollmentSelect}) ${enrollmentAlias} where ${enrollmentAlias}.rn = ${enrollmentRank} and ${field})"
	eventExistsTemplate       = "exists(select 1 from (${eventSelect}) ${eventAlias} where ${eventAlias}.rn = ${eventRank} and ${field})"
	dataElementExistsTemplate = "exists(select 1 from ${eventTable} where event = (select event from (${eventSelect}) ${eventAlias} where ${eventAlias}.rn = ${eventRank}) and ${field})"

	scheduleGuard          = " and status != 'SCHEDULE'"
	occurredDateOrder      = "occurreddate"
	scheduleInclusiveOrder = "coalesce(occurreddate, scheduleddate)"
)

// BuildOrderSubQuery renders a scalar expression selecting fragment from the
// row addressed by the identifier's level and offsets.
//
// At tracked entity level the fragment is a column of the outer row and is
// rendered as a quoted identifier (t_1."field"). At the other levels the
// fragment is embedded as is inside the row-numbered derived tables.
func BuildOrderSubQuery(ctx *QueryContext, id model.DimensionIdentifier, fragment Renderable) (Renderable, error) {
	aliases := ctx.Aliases()
	switch id.Level() {
	case model.LevelTrackedEntity:
		return Raw(aliases.TrackedEntity + "." + pq.QuoteIdentifier(fragment.Render())), nil
	case model.LevelEnrollment:
		vars := enrollmentVars(ctx, id, aliases.Enrollment)
		vars["field"] = fragment.Render()
		return Raw(substitute(enrollmentOrderTemplate, vars)), nil
	case model.LevelEvent:
		vars := eventVars(ctx, id, aliases.Enrollment)
		vars["field"] = fragment.Render()
		return Raw(substitute(eventOrderTemplate, vars)), nil
	case model.LevelEventDataElement:
		vars := eventVars(ctx, id, aliases.Enrollment)
		vars["field"] = fragment.Render()
		return Raw(substitute(dataElementOrderTemplate, vars)), nil
	}
	return nil, fmt.Errorf("build order subquery for %q: %w", id.Key(), ErrUnsupportedDimensionLevel)
}

// BuildExistsValueSubquery renders an exists() predicate testing fragment on
// the row addressed by the identifier's level and offsets. Enrollment scopes
// nested under event filters use the EnrollmentSubquery alias.
func BuildExistsValueSubquery(ctx *QueryContext, id model.DimensionIdentifier, fragment Renderable) (Renderable, error) {
	aliases := ctx.Aliases()
	switch id.Level() {
	case model.LevelTrackedEntity:
		vars := map[string]string{
			"teTable": ctx.MainTable(),
			"teAlias": aliases.TrackedEntity,
			"field":   fragment.Render(),
		}
		return Raw(substitute(teExistsTemplate, vars)), nil
	case model.LevelEnrollment:
		vars := enrollmentVars(ctx, id, aliases.Enrollment)
		vars["field"] = fragment.Render()
		return Raw(substitute(enrollmentExistsTemplate, vars)), nil
	case model.LevelEvent:
		vars := eventVars(ctx, id, aliases.EnrollmentSubquery)
		vars["field"] = fragment.Render()
		return Raw(substitute(eventExistsTemplate, vars)), nil
	case model.LevelEventDataElement:
		vars := eventVars(ctx, id, aliases.EnrollmentSubquery)
		vars["field"] = fragment.Render()
		return Raw(substitute(dataElementExistsTemplate, vars)), nil
	}
	return nil, fmt.Errorf("build exists subquery for %q: %w", id.Key(), ErrUnsupportedDimensionLevel)
}

// DataElementValue renders the raw value of an event data element.
func DataElementValue(id model.DimensionIdentifier) (Renderable, error) {
	if !id.Dimension.IsOfType(model.ParamDataElement) {
		return nil, fmt.Errorf("data element value for %q: %w", id.Key(), ErrUnsupportedDimension)
	}
	return Raw("(eventdatavalues -> " + pq.QuoteLiteral(id.Dimension.UID()) + " ->> 'value')"), nil
}

// LegendValue renders the uid of the legend of the identifier's legend set whose
// range contains the numeric data element value. The legend set id is bound on ctx.
func LegendValue(ctx *QueryContext, id model.DimensionIdentifier) (Renderable, error) {
	legendSet := id.Dimension.LegendSet()
	if legendSet == nil {
		return nil, fmt.Errorf("legend value for %q: %w", id.Key(), ErrUnsupportedDimension)
	}
	value, err := DataElementValue(id)
	if err != nil {
		return nil, err
	}
	numeric := value.Render() + "::numeric"
	return Raw("(select l.uid from maplegend l" +
		" where l.maplegendsetid = " + ctx.Bind(legendSet.ID) +
		" and l.startvalue <= " + numeric +
		" and l.endvalue > " + numeric + ")"), nil
}

// QualifiedColumn renders alias."column".
func QualifiedColumn(alias, column string) Renderable {
	return Raw(alias + "." + pq.QuoteIdentifier(column))
}

func enrollmentVars(ctx *QueryContext, id model.DimensionIdentifier, enrollmentAlias string) map[string]string {
	offset := ResolveRank(id.Program.Offset())
	return map[string]string{
		"enrollmentSelect": substitute(enrollmentSelectTemplate, map[string]string{
			"enrollmentDirection": offset.Direction.SQL(),
			"enrollmentTable":     ctx.EnrollmentTable(),
			"programUid":          pq.QuoteLiteral(id.Program.UID()),
			"teAlias":             ctx.Aliases().TrackedEntity,
		}),
		"enrollmentAlias": enrollmentAlias,
		"enrollmentRank":  strconv.Itoa(offset.Rank),
	}
}

func eventVars(ctx *QueryContext, id model.DimensionIdentifier, enrollmentAlias string) map[string]string {
	offset := ResolveRank(id.ProgramStage.Offset())
	eventOrder, guard := occurredDateOrder, scheduleGuard
	if id.Dimension.IsOfType(model.ParamStatic) && id.Dimension.Static.IncludesScheduledEvents() {
		eventOrder, guard = scheduleInclusiveOrder, ""
	}
	vars := enrollmentVars(ctx, id, enrollmentAlias)
	vars["eventSelect"] = substitute(eventSelectTemplate, map[string]string{
		"eventOrder":       eventOrder,
		"eventDirection":   offset.Direction.SQL(),
		"eventTable":       ctx.EventTable(),
		"programStageUid":  pq.QuoteLiteral(id.ProgramStage.UID()),
		"scheduleGuard":    guard,
		"enrollmentSelect": vars["enrollmentSelect"],
		"enrollmentAlias":  enrollmentAlias,
		"enrollmentRank":   vars["enrollmentRank"],
	})
	vars["eventTable"] = ctx.EventTable()
	vars["eventAlias"] = ctx.Aliases().Event
	vars["eventRank"] = strconv.Itoa(offset.Rank)
	return vars
}

func substitute(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "${"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
