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
	"strconv"
	"strings"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/common"
)

// ValueCondition renders the predicate restricting column by the restriction
// items and value filters of param. Values are bound on ctx.
//
// Items of date typed columns are period identifiers; any other items are
// matched with in (...). A parameter without restrictions tests that the
// column has a value.
func ValueCondition(ctx *QueryContext, column Renderable, valueType model.ValueType, param model.DimensionParam) (Renderable, error) {
	col := column.Render()
	if !param.HasRestrictions() {
		return Raw(col + " is not null"), nil
	}

	var parts []string
	if len(param.Items) > 0 {
		part, err := itemsCondition(ctx, col, valueType, param.Items)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	for _, f := range param.Filters {
		part, err := filterCondition(ctx, col, valueType, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return Raw(strings.Join(parts, " and ")), nil
}

func itemsCondition(ctx *QueryContext, col string, valueType model.ValueType, items []string) (string, error) {
	if !valueType.IsDate() {
		return col + " in (" + bindAll(ctx, items) + ")", nil
	}
	ranges := make([]string, 0, len(items))
	for _, item := range items {
		p, err := ParsePeriod(strings.TrimSpace(item))
		if err != nil {
			return "", err
		}
		ranges = append(ranges, "("+col+" >= "+ctx.Bind(p.StartDate())+" and "+col+" < "+ctx.Bind(p.EndDate())+")")
	}
	if len(ranges) == 1 {
		return ranges[0], nil
	}
	return "(" + strings.Join(ranges, " or ") + ")", nil
}

var comparisonOperators = map[model.Operator]string{
	model.OperatorEQ: "=",
	model.OperatorNE: "!=",
	model.OperatorGT: ">",
	model.OperatorGE: ">=",
	model.OperatorLT: "<",
	model.OperatorLE: "<=",
}

func filterCondition(ctx *QueryContext, col string, valueType model.ValueType, f model.QueryFilter) (string, error) {
	switch f.Operator {
	case model.OperatorNV:
		return col + " is null", nil
	case model.OperatorLIKE, model.OperatorILIKE:
		return col + " " + strings.ToLower(string(f.Operator)) + " " + ctx.Bind("%"+f.Value+"%"), nil
	case model.OperatorIN:
		values := strings.Split(f.Value, ";")
		if valueType.IsNumeric() {
			placeholders, err := bindNumbers(ctx, values)
			if err != nil {
				return "", err
			}
			return col + "::numeric in (" + placeholders + ")", nil
		}
		return col + " in (" + bindAll(ctx, values) + ")", nil
	}

	sqlOperator, ok := comparisonOperators[f.Operator]
	if !ok {
		return "", common.NewErrBadRequest("TEQUERY-FILTER-OPERATOR Unsupported filter operator: " + string(f.Operator))
	}
	if valueType.IsNumeric() {
		placeholder, err := bindNumber(ctx, f.Value)
		if err != nil {
			return "", err
		}
		return col + "::numeric " + sqlOperator + " " + placeholder, nil
	}
	return col + " " + sqlOperator + " " + ctx.Bind(f.Value), nil
}

func bindAll(ctx *QueryContext, values []string) string {
	placeholders := make([]string, 0, len(values))
	for _, v := range values {
		placeholders = append(placeholders, ctx.Bind(strings.TrimSpace(v)))
	}
	return strings.Join(placeholders, ", ")
}

func bindNumbers(ctx *QueryContext, values []string) (string, error) {
	placeholders := make([]string, 0, len(values))
	for _, v := range values {
		p, err := bindNumber(ctx, v)
		if err != nil {
			return "", err
		}
		placeholders = append(placeholders, p)
	}
	return strings.Join(placeholders, ", "), nil
}

func bindNumber(ctx *QueryContext, value string) (string, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", common.NewErrBadRequest("TEQUERY-FILTER-NUMBER Invalid numeric filter value: " + value)
	}
	return ctx.Bind(n), nil
}
