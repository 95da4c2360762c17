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
	"context"
	"fmt"
	"strings"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultBuilders returns the builders for every supported dimension family,
// in the order their fields appear in the statement.
func DefaultBuilders() []SQLQueryBuilder {
	return []SQLQueryBuilder{
		NewTrackedEntityFieldsBuilder(),
		NewEnrollmentStaticFieldsBuilder(),
		NewEventStaticFieldsBuilder(),
		NewDataElementBuilder(),
	}
}

// goAssign runs fn within g and stores its result in dst on success.
func goAssign[T any](g *errgroup.Group, fn func() (T, error), dst *T) {
	g.Go(func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

// Assemble runs every builder over the request and merges their fragments in
// builder order. Identifiers no builder accepts are rejected as bad requests.
// Builders bind on a fork of qctx each; the forks are rebased onto qctx in
// builder order once all builders finished, so the statement and its
// parameters do not depend on scheduling.
func Assemble(ctx context.Context, qctx *query.QueryContext, builders []SQLQueryBuilder, headers, dimensions []model.DimensionIdentifier, sorting []model.SortingParam) (query.RenderableSQLQuery, error) {
	if err := checkAccepted(builders, headers, dimensions, sorting); err != nil {
		return query.RenderableSQLQuery{}, err
	}

	logger := zerolog.Ctx(ctx)
	fragments := make([]query.RenderableSQLQuery, len(builders))
	forks := make([]*query.QueryContext, len(builders))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range builders {
		i, b := i, b
		forks[i] = qctx.Fork()
		goAssign(g, func() (query.RenderableSQLQuery, error) {
			if err := gctx.Err(); err != nil {
				return query.RenderableSQLQuery{}, err
			}
			fragment, err := b.BuildSQLQuery(forks[i], headers, dimensions, sorting)
			if err != nil {
				return query.RenderableSQLQuery{}, fmt.Errorf("%s: %w", b.Name(), err)
			}
			logger.Debug().
				Str("builder", b.Name()).
				Int("fields", len(fragment.SelectFields())).
				Int("orders", len(fragment.OrderClauses())).
				Msg("built query fragment")
			return fragment, nil
		}, &fragments[i])
	}
	if err := g.Wait(); err != nil {
		return query.RenderableSQLQuery{}, err
	}
	for i := range fragments {
		fragments[i] = qctx.Rebase(forks[i], fragments[i])
	}
	return query.Merge(fragments...), nil
}

func checkAccepted(builders []SQLQueryBuilder, headers, dimensions []model.DimensionIdentifier, sorting []model.SortingParam) error {
	var rejected []string
	for _, h := range headers {
		if !anyBuilder(builders, SQLQueryBuilder.HeaderFilters, h) {
			rejected = append(rejected, "header "+h.Key())
		}
	}
	for _, d := range dimensions {
		if !anyBuilder(builders, SQLQueryBuilder.DimensionFilters, d) {
			rejected = append(rejected, "dimension "+d.Key())
		}
	}
	for _, s := range sorting {
		if !anyBuilder(builders, SQLQueryBuilder.SortingFilters, s.Dimension) {
			rejected = append(rejected, "sorting "+s.Dimension.Key())
		}
	}
	if len(rejected) > 0 {
		return common.NewErrBadRequest("TEQUERY-ASSEMBLE-UNSUPPORTED Unsupported dimensions: " + strings.Join(rejected, ", "))
	}
	return nil
}

func anyBuilder(builders []SQLQueryBuilder, filters func(SQLQueryBuilder) []DimensionPredicate, id model.DimensionIdentifier) bool {
	for _, b := range builders {
		if Accepts(filters(b), id) {
			return true
		}
	}
	return false
}
