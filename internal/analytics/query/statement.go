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
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/doug-martin/goqu/v9"
	// postgres dialect
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

// Paging limits the composed statement. Page is 1-based; a disabled paging
// returns every row.
type Paging struct {
	Page     int
	PageSize int
	Disabled bool
}

// ToSQL composes the fragment into one PostgreSQL statement over the tracked
// entity table of ctx. Projected fields become select columns, virtual fields
// are ANDed into the WHERE clause, and rows are ordered by the order clauses
// followed by the tracked entity uid so paging is stable.
//
// Returns the SQL text and the values bound on ctx, in placeholder order.
func (q RenderableSQLQuery) ToSQL(ctx *QueryContext, paging Paging) (string, []any, error) {
	teAlias := ctx.Aliases().TrackedEntity
	teColumn := goqu.L(teAlias + ".trackedentity")

	columns := []interface{}{teColumn}
	var where []exp.Expression
	for _, f := range q.selectFields {
		if f.IsVirtual() {
			where = append(where, goqu.L(f.Expression().Render()))
			continue
		}
		columns = append(columns, goqu.L(f.Expression().Render()).As(goqu.C(f.Alias())))
	}

	order := make([]exp.OrderedExpression, 0, len(q.orderClauses)+1)
	for _, o := range q.orderClauses {
		expr := goqu.L(o.Expression().Render())
		if o.Direction() == model.Desc {
			order = append(order, expr.Desc())
		} else {
			order = append(order, expr.Asc())
		}
	}
	order = append(order, teColumn.Asc())

	ds := goqu.Dialect("postgres").
		From(goqu.T(ctx.MainTable()).As(teAlias)).
		Select(columns...).
		Order(order...)
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	if !paging.Disabled {
		if paging.PageSize <= 0 || paging.Page <= 0 {
			return "", nil, common.NewErrBadRequest("TEQUERY-COMPOSE-PAGING Page and page size must be positive")
		}
		ds = ds.Limit(uint(paging.PageSize)).Offset(uint((paging.Page - 1) * paging.PageSize))
	}

	sql, _, err := ds.ToSQL()
	if err != nil {
		return "", nil, common.NewInternalServerError("TEQUERY-COMPOSE-TOSQL Failed to build statement: " + err.Error())
	}
	return sql, ctx.Params(), nil
}
