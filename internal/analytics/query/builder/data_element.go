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

// dataElementRenderer renders event data values. An item with a legend set
// resolves to the uid of the matching legend and gets its own key.
type dataElementRenderer struct{}

func (dataElementRenderer) key(id model.DimensionIdentifier) string {
	if ls := id.Dimension.LegendSet(); ls != nil {
		return id.Key() + "_" + ls.UID
	}
	return id.Key()
}

func (dataElementRenderer) value(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	if id.Dimension.HasLegendSet() {
		return query.LegendValue(ctx, id)
	}
	return query.DataElementValue(id)
}

// Legend restrictions match legend uids, so they compare as text.
func (r dataElementRenderer) condition(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error) {
	value, err := r.value(ctx, id)
	if err != nil {
		return nil, err
	}
	valueType := id.Dimension.ValueType()
	if id.Dimension.HasLegendSet() {
		valueType = model.ValueTypeText
	}
	return query.ValueCondition(ctx, value, valueType, id.Dimension)
}

// NewDataElementBuilder handles data elements addressed to an event. An item
// with a legend set yields one field keyed <key>_<legendSetUid> holding the
// legend uid, next to the raw value field when that is requested too. Legend
// names and other companion fields are not emitted.
func NewDataElementBuilder() SQLQueryBuilder {
	predicates := []DimensionPredicate{
		atLevel(model.LevelEventDataElement),
		isOfType(model.ParamDataElement),
	}
	return &baseBuilder{
		name:             "DataElementBuilder",
		headerFilters:    predicates,
		dimensionFilters: predicates,
		renderer:         dataElementRenderer{},
	}
}
