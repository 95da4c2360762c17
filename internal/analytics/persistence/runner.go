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

// Package persistence executes assembled analytics statements against the
// PostgreSQL analytics tables.
package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Grid is the tabular result of a query. Headers are the result column names
// in select order; text columns are returned as strings.
type Grid struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// Runner executes statements on a database pool.
type Runner struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRunner(db *sql.DB, logger zerolog.Logger) *Runner {
	return &Runner{db: db, logger: logger}
}

// Run executes statement with args and collects every row into a Grid.
func (r *Runner) Run(ctx context.Context, statement string, args []any) (*Grid, error) {
	queryID := uuid.NewString()
	logger := r.logger.With().Str("queryId", queryID).Logger()
	start := time.Now()

	logger.Debug().Str("sql", statement).Int("params", len(args)).Msg("executing analytics query")

	rows, err := r.db.QueryContext(ctx, statement, args...)
	if err != nil {
		logger.Error().Err(err).Msg("analytics query failed")
		return nil, common.NewInternalServerError("TERUN-QUERY Failed to execute query " + queryID + ": " + err.Error())
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, common.NewInternalServerError("TERUN-COLUMNS Failed to read result columns: " + err.Error())
	}

	grid := &Grid{Headers: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, common.NewInternalServerError("TERUN-SCAN Failed to scan result row: " + err.Error())
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		grid.Rows = append(grid.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewInternalServerError("TERUN-ROWS Failed to iterate result rows: " + err.Error())
	}

	logger.Info().
		Dur("duration", time.Since(start)).
		Int("rows", len(grid.Rows)).
		Msg("analytics query completed")
	return grid, nil
}
