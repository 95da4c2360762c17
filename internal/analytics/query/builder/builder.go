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

// Package builder contains the per-dimension query builders. Each builder
// accepts the dimensions of one family and level and turns headers,
// filtered dimensions and sorting params into a RenderableSQLQuery fragment.
package builder

import (
	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
)

// DimensionPredicate decides whether an identifier is legal input for a builder.
type DimensionPredicate func(model.DimensionIdentifier) bool

// SQLQueryBuilder turns the accepted dimensions of one family into a query fragment.
type SQLQueryBuilder interface {
	// Name identifies the builder in logs and errors.
	Name() string
	// HeaderFilters must all pass for an identifier to be used as a header.
	HeaderFilters() []DimensionPredicate
	// DimensionFilters must all pass for an identifier to be used as a filter.
	DimensionFilters() []DimensionPredicate
	// SortingFilters must all pass for an identifier to be used as a sort key.
	SortingFilters() []DimensionPredicate
	BuildSQLQuery(ctx *query.QueryContext, headers, dimensions []model.DimensionIdentifier, sorting []model.SortingParam) (query.RenderableSQLQuery, error)
}

// Accepts reports whether id passes every predicate.
func Accepts(predicates []DimensionPredicate, id model.DimensionIdentifier) bool {
	for _, p := range predicates {
		if !p(id) {
			return false
		}
	}
	return true
}

func acceptedOnly(predicates []DimensionPredicate, ids []model.DimensionIdentifier) []model.DimensionIdentifier {
	var out []model.DimensionIdentifier
	for _, id := range ids {
		if Accepts(predicates, id) {
			out = append(out, id)
		}
	}
	return out
}

func acceptedSorting(predicates []DimensionPredicate, sorting []model.SortingParam) []model.SortingParam {
	var out []model.SortingParam
	for _, s := range sorting {
		if Accepts(predicates, s.Dimension) {
			out = append(out, s)
		}
	}
	return out
}

func atLevel(level model.Level) DimensionPredicate {
	return func(id model.DimensionIdentifier) bool { return id.Level() == level }
}

func isStaticOneOf(dims ...model.StaticDimension) DimensionPredicate {
	return func(id model.DimensionIdentifier) bool {
		if !id.Dimension.IsOfType(model.ParamStatic) {
			return false
		}
		for _, d := range dims {
			if id.Dimension.Static == d {
				return true
			}
		}
		return false
	}
}

func isOfType(kinds ...model.DimensionParamType) DimensionPredicate {
	return func(id model.DimensionIdentifier) bool {
		for _, k := range kinds {
			if id.Dimension.IsOfType(k) {
				return true
			}
		}
		return false
	}
}

func anyOf(predicates ...DimensionPredicate) DimensionPredicate {
	return func(id model.DimensionIdentifier) bool {
		for _, p := range predicates {
			if p(id) {
				return true
			}
		}
		return false
	}
}

// fieldRenderer supplies the SQL fragments of one dimension family.
type fieldRenderer interface {
	// key identifies the select field an identifier contributes to.
	key(id model.DimensionIdentifier) string
	// value is the fragment selected for headers and sorting.
	value(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error)
	// condition is the predicate fragment applied for filtered dimensions.
	condition(ctx *query.QueryContext, id model.DimensionIdentifier) (query.Renderable, error)
}

// baseBuilder implements SQLQueryBuilder over a fieldRenderer.
type baseBuilder struct {
	name             string
	headerFilters    []DimensionPredicate
	dimensionFilters []DimensionPredicate
	renderer         fieldRenderer
}

func (b *baseBuilder) Name() string { return b.name }

func (b *baseBuilder) HeaderFilters() []DimensionPredicate { return b.headerFilters }

func (b *baseBuilder) DimensionFilters() []DimensionPredicate { return b.dimensionFilters }

// SortingFilters are the dimension filters: anything filterable is sortable.
func (b *baseBuilder) SortingFilters() []DimensionPredicate { return b.dimensionFilters }

// BuildSQLQuery filters the inputs, merges them by key and renders one select
// field per key: headers without a filter are projected values, anything
// filtered is a single virtual exists() field. Sorting params become order
// clauses in input order.
func (b *baseBuilder) BuildSQLQuery(ctx *query.QueryContext, headers, dimensions []model.DimensionIdentifier, sorting []model.SortingParam) (query.RenderableSQLQuery, error) {
	merged := mergeByKey(
		acceptedOnly(b.headerFilters, headers),
		acceptedOnly(b.dimensionFilters, dimensions),
		b.renderer.key,
	)

	fields := make([]query.Field, 0, len(merged))
	for _, m := range merged {
		field, err := b.field(ctx, m)
		if err != nil {
			return query.RenderableSQLQuery{}, err
		}
		fields = append(fields, field)
	}

	accepted := acceptedSorting(b.SortingFilters(), sorting)
	orders := make([]query.OrderClause, 0, len(accepted))
	for _, s := range accepted {
		value, err := b.renderer.value(ctx, s.Dimension)
		if err != nil {
			return query.RenderableSQLQuery{}, err
		}
		expr, err := query.BuildOrderSubQuery(ctx, s.Dimension, value)
		if err != nil {
			return query.RenderableSQLQuery{}, err
		}
		orders = append(orders, query.NewOrderClause(expr, s.Direction))
	}

	return query.NewRenderableSQLQuery(fields, orders), nil
}

func (b *baseBuilder) field(ctx *query.QueryContext, m mergedDimension) (query.Field, error) {
	alias := b.renderer.key(m.id)
	if !m.filtered {
		value, err := b.renderer.value(ctx, m.id)
		if err != nil {
			return query.Field{}, err
		}
		expr, err := query.BuildOrderSubQuery(ctx, m.id, value)
		if err != nil {
			return query.Field{}, err
		}
		return query.NewField(expr, alias), nil
	}

	condition, err := b.renderer.condition(ctx, m.id)
	if err != nil {
		return query.Field{}, err
	}
	expr, err := query.BuildExistsValueSubquery(ctx, m.id, condition)
	if err != nil {
		return query.Field{}, err
	}
	return query.NewVirtualField(expr, alias), nil
}
