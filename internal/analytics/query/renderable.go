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
	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/lib/pq"
)

// Renderable produces SQL text.
type Renderable interface {
	Render() string
}

// Raw is SQL text rendered as is.
type Raw string

func (r Raw) Render() string { return string(r) }

// RenderableFunc adapts a function supplying SQL text.
type RenderableFunc func() string

func (f RenderableFunc) Render() string { return f() }

// Field is one select-list entry.
//
// A virtual field exists only to restrict the result: its expression is a
// predicate the composer places in the WHERE clause, and it never shows up in
// the header list.
type Field struct {
	expression Renderable
	alias      string
	virtual    bool
}

// NewField returns a projected field selected as "alias".
func NewField(expression Renderable, alias string) Field {
	return Field{expression: expression, alias: alias}
}

// NewVirtualField returns a predicate field for alias.
func NewVirtualField(expression Renderable, alias string) Field {
	return Field{expression: expression, alias: alias, virtual: true}
}

func (f Field) Alias() string { return f.alias }

func (f Field) IsVirtual() bool { return f.virtual }

func (f Field) Expression() Renderable { return f.expression }

// Render returns `<expression> as "<alias>"` for projected fields and the bare
// predicate for virtual ones.
func (f Field) Render() string {
	if f.virtual || f.alias == "" {
		return f.expression.Render()
	}
	return f.expression.Render() + " as " + pq.QuoteIdentifier(f.alias)
}

// OrderClause orders the result by a rendered expression.
type OrderClause struct {
	expression Renderable
	direction  model.SortDirection
}

func NewOrderClause(expression Renderable, direction model.SortDirection) OrderClause {
	return OrderClause{expression: expression, direction: direction}
}

func (o OrderClause) Expression() Renderable { return o.expression }

func (o OrderClause) Direction() model.SortDirection { return o.direction }

func (o OrderClause) Render() string {
	return o.expression.Render() + " " + o.direction.SQL()
}

// RenderableSQLQuery is the fragment one builder contributes to a statement.
// It is immutable after construction.
type RenderableSQLQuery struct {
	selectFields []Field
	orderClauses []OrderClause
}

// NewRenderableSQLQuery copies fields and orders into a new fragment.
func NewRenderableSQLQuery(fields []Field, orders []OrderClause) RenderableSQLQuery {
	return RenderableSQLQuery{
		selectFields: append([]Field(nil), fields...),
		orderClauses: append([]OrderClause(nil), orders...),
	}
}

// SelectFields returns a copy of the select fields in emission order.
func (q RenderableSQLQuery) SelectFields() []Field {
	return append([]Field(nil), q.selectFields...)
}

// OrderClauses returns a copy of the order clauses in input order.
func (q RenderableSQLQuery) OrderClauses() []OrderClause {
	return append([]OrderClause(nil), q.orderClauses...)
}

func (q RenderableSQLQuery) IsEmpty() bool {
	return len(q.selectFields) == 0 && len(q.orderClauses) == 0
}

// Headers lists the aliases of the projected (non-virtual) fields.
func (q RenderableSQLQuery) Headers() []string {
	var headers []string
	for _, f := range q.selectFields {
		if !f.virtual {
			headers = append(headers, f.alias)
		}
	}
	return headers
}

// Merge concatenates fragments in the given order.
func Merge(fragments ...RenderableSQLQuery) RenderableSQLQuery {
	var merged RenderableSQLQuery
	for _, f := range fragments {
		merged.selectFields = append(merged.selectFields, f.selectFields...)
		merged.orderClauses = append(merged.orderClauses, f.orderClauses...)
	}
	return merged
}
