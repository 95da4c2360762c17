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

// Package request decodes the JSON request document accepted by the CLI into
// the dimension identifiers and paging of one analytics query.
package request

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
	"github.com/dhis2/te-analytics-go/internal/common"
	jsoniter "github.com/json-iterator/go"
	"github.com/xeipuuv/gojsonschema"
)

// uidPattern matches the 11 character identifiers of metadata objects.
var uidPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{10}$`)

//go:embed request_schema.json
var schemaBytes []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewBytesLoader(schemaBytes))
})

// Document is the wire form of a query request.
//
//	{
//	  "trackedEntityType": "nEenWmSyUEp",
//	  "headers": [{"program": "IpHINAT79UW", "programStage": "A03MvHHogjR", "stageOffset": 1, "static": "EVENT_DATE"}],
//	  "dimensions": [{"item": {"uid": "w75KJ2mc4zz", "kind": "ATTRIBUTE"}, "filters": [{"operator": "LIKE", "value": "ann"}]}],
//	  "sorting": [{"dimension": {"static": "CREATED"}, "direction": "desc"}],
//	  "page": 1,
//	  "pageSize": 50
//	}
type Document struct {
	TrackedEntityType string        `json:"trackedEntityType"`
	Headers           []Dimension   `json:"headers"`
	Dimensions        []Dimension   `json:"dimensions"`
	Sorting           []SortingSpec `json:"sorting"`
	Page              int           `json:"page"`
	PageSize          int           `json:"pageSize"`
	Paging            *bool         `json:"paging"`
}

// Dimension is one dimension reference. Exactly one of Static or Item is set.
type Dimension struct {
	Program       string              `json:"program"`
	ProgramOffset int                 `json:"programOffset"`
	ProgramStage  string              `json:"programStage"`
	StageOffset   int                 `json:"stageOffset"`
	Static        string              `json:"static"`
	Item          *Item               `json:"item"`
	Items         []string            `json:"items"`
	Filters       []model.QueryFilter `json:"filters"`
}

// Item references a data element or attribute.
type Item struct {
	UID       string           `json:"uid"`
	Kind      string           `json:"kind"`
	ValueType model.ValueType  `json:"valueType"`
	LegendSet *model.LegendSet `json:"legendSet"`
}

type SortingSpec struct {
	Dimension Dimension `json:"dimension"`
	Direction string    `json:"direction"`
}

// Query is a decoded and validated request.
type Query struct {
	TrackedEntityType model.TrackedEntityType
	Headers           []model.DimensionIdentifier
	Dimensions        []model.DimensionIdentifier
	Sorting           []model.SortingParam
	Paging            query.Paging
}

// Decode reads a Document from r, validates it against the request schema and
// converts it with Parse.
func Decode(r io.Reader, cfg common.QueryConfig) (*Query, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, common.NewErrBadRequest("TEREQUEST-READ Cannot read request document: " + err.Error())
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewErrBadRequest("TEREQUEST-DECODE Invalid request document: " + err.Error())
	}
	return Parse(doc, cfg)
}

func validate(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return common.NewInternalServerError("TEREQUEST-SCHEMA Cannot compile request schema: " + err.Error())
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return common.NewErrBadRequest("TEREQUEST-DECODE Invalid request document: " + err.Error())
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return common.NewErrBadRequest("TEREQUEST-SCHEMA Request document violates schema: " + strings.Join(violations, "; "))
	}
	return nil
}

// Parse validates doc and resolves its dimensions. Missing paging values take
// the configured defaults and page sizes above the configured maximum are rejected.
func Parse(doc Document, cfg common.QueryConfig) (*Query, error) {
	if strings.TrimSpace(doc.TrackedEntityType) == "" {
		return nil, common.NewErrBadRequest("TEREQUEST-TET-MISSING trackedEntityType is required")
	}
	if !uidPattern.MatchString(doc.TrackedEntityType) {
		return nil, common.NewErrBadRequest(fmt.Sprintf("TEREQUEST-TET-INVALID trackedEntityType is not a valid uid: %q", doc.TrackedEntityType))
	}
	q := &Query{TrackedEntityType: model.TrackedEntityType{UID: doc.TrackedEntityType}}

	var err error
	if q.Headers, err = identifiers("headers", doc.Headers); err != nil {
		return nil, err
	}
	if q.Dimensions, err = identifiers("dimensions", doc.Dimensions); err != nil {
		return nil, err
	}
	for i, s := range doc.Sorting {
		id, err := s.Dimension.Identifier()
		if err != nil {
			return nil, common.NewErrBadRequest(fmt.Sprintf("TEREQUEST-SORTING sorting[%d]: %v", i, err))
		}
		direction, ok := model.ParseSortDirection(s.Direction)
		if !ok {
			return nil, common.NewErrBadRequest(fmt.Sprintf("TEREQUEST-SORTING sorting[%d]: invalid direction %q", i, s.Direction))
		}
		q.Sorting = append(q.Sorting, model.SortingParam{Dimension: id, Direction: direction})
	}

	q.Paging, err = paging(doc, cfg)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func identifiers(field string, dims []Dimension) ([]model.DimensionIdentifier, error) {
	ids := make([]model.DimensionIdentifier, 0, len(dims))
	for i, d := range dims {
		id, err := d.Identifier()
		if err != nil {
			return nil, common.NewErrBadRequest(fmt.Sprintf("TEREQUEST-DIMENSION %s[%d]: %v", field, i, err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func paging(doc Document, cfg common.QueryConfig) (query.Paging, error) {
	if doc.Paging != nil && !*doc.Paging {
		return query.Paging{Disabled: true}, nil
	}
	p := query.Paging{Page: doc.Page, PageSize: doc.PageSize}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = cfg.DefaultPageSize
	}
	if p.Page < 0 || p.PageSize < 0 {
		return query.Paging{}, common.NewErrBadRequest("TEREQUEST-PAGING page and pageSize must not be negative")
	}
	if cfg.MaxPageSize > 0 && p.PageSize > cfg.MaxPageSize {
		return query.Paging{}, common.NewErrBadRequest(fmt.Sprintf("TEREQUEST-PAGING pageSize %d exceeds maximum %d", p.PageSize, cfg.MaxPageSize))
	}
	return p, nil
}

// Identifier resolves the reference into a DimensionIdentifier.
func (d Dimension) Identifier() (model.DimensionIdentifier, error) {
	param, err := d.param()
	if err != nil {
		return model.DimensionIdentifier{}, err
	}

	program := model.None[model.Program]()
	if d.Program != "" {
		program = model.Of(model.Program{UID: d.Program}, d.ProgramOffset)
	}
	stage := model.None[model.ProgramStage]()
	if d.ProgramStage != "" {
		stage = model.Of(model.ProgramStage{UID: d.ProgramStage}, d.StageOffset)
	}
	return model.NewDimensionIdentifier(program, stage, param)
}

func (d Dimension) param() (model.DimensionParam, error) {
	filters, err := normalizeFilters(d.Filters)
	if err != nil {
		return model.DimensionParam{}, err
	}

	switch {
	case d.Static != "" && d.Item != nil:
		return model.DimensionParam{}, errors.New("static and item are mutually exclusive")
	case d.Static != "":
		static, ok := model.ParseStaticDimension(d.Static)
		if !ok {
			return model.DimensionParam{}, fmt.Errorf("unknown static dimension %q", d.Static)
		}
		param := model.StaticParam(static, d.Items...)
		param.Filters = filters
		return param, nil
	case d.Item != nil:
		kind, err := itemKind(d.Item.Kind)
		if err != nil {
			return model.DimensionParam{}, err
		}
		if d.Item.UID == "" {
			return model.DimensionParam{}, errors.New("item uid is required")
		}
		param := model.ItemParam(model.QueryItem{
			UID:       d.Item.UID,
			Kind:      kind,
			ValueType: model.ValueType(strings.ToUpper(string(d.Item.ValueType))),
			LegendSet: d.Item.LegendSet,
		}, filters...)
		param.Items = d.Items
		return param, nil
	}
	return model.DimensionParam{}, errors.New("either static or item is required")
}

func normalizeFilters(filters []model.QueryFilter) ([]model.QueryFilter, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	out := make([]model.QueryFilter, 0, len(filters))
	for _, f := range filters {
		op, ok := model.ParseOperator(string(f.Operator))
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", f.Operator)
		}
		out = append(out, model.QueryFilter{Operator: op, Value: f.Value})
	}
	return out, nil
}

func itemKind(s string) (model.ItemKind, error) {
	switch strings.ToUpper(s) {
	case "DATA_ELEMENT", "":
		return model.ItemDataElement, nil
	case "ATTRIBUTE":
		return model.ItemAttribute, nil
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}
