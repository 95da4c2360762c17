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

// ValueType is the declared type of a data element or attribute value.
type ValueType string

const (
	ValueTypeText            ValueType = "TEXT"
	ValueTypeLongText        ValueType = "LONG_TEXT"
	ValueTypeNumber          ValueType = "NUMBER"
	ValueTypeInteger         ValueType = "INTEGER"
	ValueTypeIntegerPositive ValueType = "INTEGER_POSITIVE"
	ValueTypePercentage      ValueType = "PERCENTAGE"
	ValueTypeBoolean         ValueType = "BOOLEAN"
	ValueTypeDate            ValueType = "DATE"
	ValueTypeDateTime        ValueType = "DATETIME"
	ValueTypeOrgUnit         ValueType = "ORGANISATION_UNIT"
)

// IsNumeric reports whether values of this type compare numerically.
func (v ValueType) IsNumeric() bool {
	switch v {
	case ValueTypeNumber, ValueTypeInteger, ValueTypeIntegerPositive, ValueTypePercentage:
		return true
	}
	return false
}

// IsDate reports whether values of this type are dates or timestamps.
func (v ValueType) IsDate() bool {
	return v == ValueTypeDate || v == ValueTypeDateTime
}

// ItemKind distinguishes the data-bound query items.
type ItemKind int

const (
	ItemDataElement ItemKind = iota + 1
	ItemAttribute
)

// QueryItem references a data element or a tracked entity attribute.
type QueryItem struct {
	UID       string     `json:"uid"`
	Kind      ItemKind   `json:"kind"`
	ValueType ValueType  `json:"valueType"`
	LegendSet *LegendSet `json:"legendSet,omitempty"`
}

// Operator is a value-filter comparison operator.
type Operator string

const (
	OperatorEQ    Operator = "EQ"
	OperatorNE    Operator = "NE"
	OperatorGT    Operator = "GT"
	OperatorGE    Operator = "GE"
	OperatorLT    Operator = "LT"
	OperatorLE    Operator = "LE"
	OperatorIN    Operator = "IN"
	OperatorLIKE  Operator = "LIKE"
	OperatorILIKE Operator = "ILIKE"
	OperatorNV    Operator = "NV"
)

// ParseOperator resolves an operator name case-insensitively.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(strings.ToUpper(strings.TrimSpace(s)))
	switch op {
	case OperatorEQ, OperatorNE, OperatorGT, OperatorGE, OperatorLT, OperatorLE,
		OperatorIN, OperatorLIKE, OperatorILIKE, OperatorNV:
		return op, true
	}
	return "", false
}

// QueryFilter restricts a dimension value with an operator.
type QueryFilter struct {
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// DimensionParamType classifies what a DimensionParam refers to.
type DimensionParamType int

const (
	ParamStatic DimensionParamType = iota + 1
	ParamDataElement
	ParamAttribute
)

// DimensionParam is one requested dimension: either a static field or a query
// item, optionally carrying restriction items and value filters.
type DimensionParam struct {
	Static  StaticDimension
	Item    *QueryItem
	Items   []string
	Filters []QueryFilter
}

// StaticParam builds a DimensionParam for a static field.
func StaticParam(d StaticDimension, items ...string) DimensionParam {
	return DimensionParam{Static: d, Items: items}
}

// ItemParam builds a DimensionParam for a data element or attribute.
func ItemParam(item QueryItem, filters ...QueryFilter) DimensionParam {
	return DimensionParam{Item: &item, Filters: filters}
}

// IsOfType reports whether the parameter refers to the given kind.
func (p DimensionParam) IsOfType(kind DimensionParamType) bool {
	switch kind {
	case ParamStatic:
		return p.Item == nil && p.Static.IsValid()
	case ParamDataElement:
		return p.Item != nil && p.Item.Kind == ItemDataElement
	case ParamAttribute:
		return p.Item != nil && p.Item.Kind == ItemAttribute
	}
	return false
}

// IsStatic reports whether the parameter is the given static field.
func (p DimensionParam) IsStatic(d StaticDimension) bool {
	return p.IsOfType(ParamStatic) && p.Static == d
}

// QueryItem returns the referenced item, or nil for static fields.
func (p DimensionParam) QueryItem() *QueryItem { return p.Item }

// LegendSet returns the legend set of the referenced item, if any.
func (p DimensionParam) LegendSet() *LegendSet {
	if p.Item == nil {
		return nil
	}
	return p.Item.LegendSet
}

func (p DimensionParam) HasLegendSet() bool { return p.LegendSet() != nil }

// HasRestrictions reports whether the parameter carries items or filters.
func (p DimensionParam) HasRestrictions() bool {
	return len(p.Items) > 0 || len(p.Filters) > 0
}

// ValueType returns the value type of the item or static field.
func (p DimensionParam) ValueType() ValueType {
	if p.Item != nil {
		if p.Item.ValueType == "" {
			return ValueTypeText
		}
		return p.Item.ValueType
	}
	return p.Static.ValueType()
}

// UID returns the item UID, or the header name for static fields.
func (p DimensionParam) UID() string {
	if p.Item != nil {
		return p.Item.UID
	}
	return p.Static.HeaderName()
}
