package builder

import (
	"context"
	"strconv"
	"testing"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/analytics/query"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_BuilderOrder(t *testing.T) {
	headers := []model.DimensionIdentifier{
		dataElement(nil),
		eventStatic(model.EventDate),
		enrollmentStatic(model.EnrollmentDate),
		model.TrackedEntityDimension(model.StaticParam(model.OrgUnit)),
	}

	q, err := Assemble(context.Background(), newContext(t), DefaultBuilders(), headers, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ou",
		"programUid[0].enrollmentdate",
		"programUid[0].stageUid[1].eventdate",
		"programUid[0].stageUid[1].deUid",
	}, q.Headers())
}

func TestAssemble_ComposesStatement(t *testing.T) {
	ctx := newContext(t)
	q, err := Assemble(context.Background(), ctx, DefaultBuilders(),
		[]model.DimensionIdentifier{eventStatic(model.EventDate)},
		[]model.DimensionIdentifier{eventStatic(model.OrgUnit, "ouA")},
		[]model.SortingParam{{Dimension: enrollmentStatic(model.EnrollmentDate), Direction: model.Desc}},
	)
	require.NoError(t, err)

	sql, params, err := q.ToSQL(ctx, query.Paging{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Contains(t, sql, `AS "programUid[0].stageUid[1].eventdate"`)
	assert.Contains(t, sql, `WHERE exists(select 1 from (`)
	assert.Contains(t, sql, `ev."ou" in ($1)`)
	assert.Contains(t, sql, "LIMIT 10")
	assert.Equal(t, []any{"ouA"}, params)
}

func TestAssemble_DeterministicPlaceholders(t *testing.T) {
	const itemsPerDimension = 2000
	items := func(prefix string) []string {
		out := make([]string, itemsPerDimension)
		for i := range out {
			out[i] = prefix + strconv.Itoa(i)
		}
		return out
	}
	teItems, enItems, evItems := items("te"), items("en"), items("ev")
	dimensions := []model.DimensionIdentifier{
		eventStatic(model.OrgUnit, evItems...),
		enrollmentStatic(model.EnrollmentStatus, enItems...),
		model.TrackedEntityDimension(model.StaticParam(model.OrgUnit, teItems...)),
	}

	var want []any
	for _, group := range [][]string{teItems, enItems, evItems} {
		for _, item := range group {
			want = append(want, item)
		}
	}

	var first string
	for run := 0; run < 50; run++ {
		ctx := newContext(t)
		q, err := Assemble(context.Background(), ctx, DefaultBuilders(), nil, dimensions, nil)
		require.NoError(t, err)

		sql, params, err := q.ToSQL(ctx, query.Paging{Disabled: true})
		require.NoError(t, err)
		require.Equal(t, want, params, "parameters follow builder order")
		if run == 0 {
			first = sql
			continue
		}
		require.Equal(t, first, sql, "run %d", run)
	}
	assert.Contains(t, first, `"ou" in ($1, $2`)
	assert.Contains(t, first, "$"+strconv.Itoa(3*itemsPerDimension)+")")
}

func TestAssemble_RejectsUnsupportedDimensions(t *testing.T) {
	_, err := Assemble(context.Background(), newContext(t), DefaultBuilders(),
		nil,
		[]model.DimensionIdentifier{eventStatic(model.EnrollmentStatus)},
		nil,
	)
	require.Error(t, err)
	assert.True(t, common.IsErrBadRequest(err))
	assert.Contains(t, err.Error(), "dimension programUid[0].stageUid[1].enrollmentstatus")
}

func TestAssemble_PropagatesBuilderErrors(t *testing.T) {
	_, err := Assemble(context.Background(), newContext(t), DefaultBuilders(),
		nil,
		[]model.DimensionIdentifier{eventStatic(model.EventDate, "not-a-period")},
		nil,
	)
	require.Error(t, err)
	assert.True(t, common.IsErrBadRequest(err))
	assert.Contains(t, err.Error(), "EventStaticFieldsBuilder")
}

func TestAssemble_Empty(t *testing.T) {
	q, err := Assemble(context.Background(), newContext(t), DefaultBuilders(), nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())
}
