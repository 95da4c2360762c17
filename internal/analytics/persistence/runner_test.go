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

package persistence

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunCollectsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	var logs bytes.Buffer
	sut := NewRunner(db, zerolog.New(&logs))

	mock.ExpectQuery(`SELECT t_1.trackedentity, .* FROM "analytics_te_tetuid"`).
		WithArgs("ouA").
		WillReturnRows(sqlmock.NewRows([]string{"trackedentity", "ou"}).
			AddRow("te1", []byte("ouA")).
			AddRow("te2", nil))

	grid, err := sut.Run(context.Background(),
		`SELECT t_1.trackedentity, t_1."ou" AS "ou" FROM "analytics_te_tetuid" AS "t_1" WHERE t_1."ou" = $1`,
		[]any{"ouA"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, []string{"trackedentity", "ou"}, grid.Headers)
	require.Len(t, grid.Rows, 2)
	require.Equal(t, []any{"te1", "ouA"}, grid.Rows[0])
	require.Nil(t, grid.Rows[1][1])
	require.Contains(t, logs.String(), `"rows":2`)
	require.Contains(t, logs.String(), `"queryId"`)
}

func TestRunEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"trackedentity"}))

	grid, err := NewRunner(db, zerolog.Nop()).Run(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)
	require.NotNil(t, grid.Rows)
	require.Empty(t, grid.Rows)
}

func TestRunQueryErrorIsInternal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("relation does not exist"))

	_, err = NewRunner(db, zerolog.Nop()).Run(context.Background(), "SELECT 1", nil)
	require.Error(t, err)
	require.True(t, common.IsInternalServerError(err))
	require.Contains(t, err.Error(), "relation does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRowErrorIsInternal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"trackedentity"}).
		AddRow("te1").
		RowError(0, errors.New("connection reset")))

	_, err = NewRunner(db, zerolog.Nop()).Run(context.Background(), "SELECT 1", nil)
	require.True(t, common.IsInternalServerError(err))
}
