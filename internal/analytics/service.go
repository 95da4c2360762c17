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

// Package analytics wires request decoding, query assembly and execution of
// tracked entity analytics queries.
package analytics

import (
	"context"

	"github.com/dhis2/te-analytics-go/internal/analytics/persistence"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
	"github.com/dhis2/te-analytics-go/internal/analytics/query/builder"
	"github.com/dhis2/te-analytics-go/internal/analytics/request"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/rs/zerolog"
)

// Statement is an assembled SQL statement with its positional parameters.
type Statement struct {
	SQL     string   `json:"sql"`
	Params  []any    `json:"params"`
	Headers []string `json:"headers"`
}

// Service assembles statements with a fixed set of builders.
type Service struct {
	cfg      common.QueryConfig
	builders []builder.SQLQueryBuilder
}

// NewService uses builder.DefaultBuilders when builders is empty.
func NewService(cfg common.QueryConfig, builders ...builder.SQLQueryBuilder) *Service {
	if len(builders) == 0 {
		builders = builder.DefaultBuilders()
	}
	return &Service{cfg: cfg, builders: builders}
}

// Prepare assembles and composes the statement for q.
func (s *Service) Prepare(ctx context.Context, q *request.Query) (*Statement, error) {
	qctx, err := query.NewQueryContext(q.TrackedEntityType, query.WithAliases(query.AliasesFromConfig(s.cfg.Aliases)))
	if err != nil {
		return nil, err
	}

	assembled, err := builder.Assemble(ctx, qctx, s.builders, q.Headers, q.Dimensions, q.Sorting)
	if err != nil {
		return nil, err
	}
	sql, params, err := assembled.ToSQL(qctx, q.Paging)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("trackedEntityType", q.TrackedEntityType.UID).
		Int("fields", len(assembled.SelectFields())).
		Int("params", len(params)).
		Msg("assembled analytics statement")

	return &Statement{
		SQL:     sql,
		Params:  params,
		Headers: append([]string{"trackedentity"}, assembled.Headers()...),
	}, nil
}

// Execute prepares q and runs it with runner.
func (s *Service) Execute(ctx context.Context, runner *persistence.Runner, q *request.Query) (*persistence.Grid, error) {
	stmt, err := s.Prepare(ctx, q)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, stmt.SQL, stmt.Params)
}
