package builder

import (
	"testing"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeByKey_Order(t *testing.T) {
	a := eventStatic(model.EventDate)
	b := eventStatic(model.OrgUnit)
	c := eventStatic(model.EventStatus, "ACTIVE")

	merged := mergeByKey(
		[]model.DimensionIdentifier{a, b, a},
		[]model.DimensionIdentifier{c, b},
		model.DimensionIdentifier.Key,
	)

	require.Len(t, merged, 3)
	assert.Equal(t, a.Key(), merged[0].id.Key())
	assert.False(t, merged[0].filtered)
	assert.Equal(t, b.Key(), merged[1].id.Key())
	assert.True(t, merged[1].filtered)
	assert.Equal(t, c.Key(), merged[2].id.Key())
	assert.True(t, merged[2].filtered)
}

func TestMergeByKey_AccumulatesRestrictions(t *testing.T) {
	first := eventStatic(model.EventDate, "2021")
	second := eventStatic(model.EventDate, "2022")
	second.Dimension.Filters = []model.QueryFilter{{Operator: model.OperatorNE, Value: "2022-01-01"}}

	merged := mergeByKey(nil, []model.DimensionIdentifier{first, second}, model.DimensionIdentifier.Key)

	require.Len(t, merged, 1)
	assert.Equal(t, []string{"2021", "2022"}, merged[0].id.Dimension.Items)
	assert.Len(t, merged[0].id.Dimension.Filters, 1)
	assert.Equal(t, []string{"2021"}, first.Dimension.Items, "inputs must not be modified")
}

// Headers, dimensions or both for the same key always produce exactly one field.
func TestBuildSQLQuery_OneFieldPerKey(t *testing.T) {
	id := eventStatic(model.OrgUnit)
	cases := []struct {
		name       string
		headers    []model.DimensionIdentifier
		dimensions []model.DimensionIdentifier
		virtual    bool
	}{
		{name: "header", headers: []model.DimensionIdentifier{id}},
		{name: "repeated header", headers: []model.DimensionIdentifier{id, id}},
		{name: "dimension", dimensions: []model.DimensionIdentifier{id}, virtual: true},
		{name: "both", headers: []model.DimensionIdentifier{id}, dimensions: []model.DimensionIdentifier{id, id}, virtual: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewEventStaticFieldsBuilder().BuildSQLQuery(newContext(t), tc.headers, tc.dimensions, nil)
			require.NoError(t, err)
			fields := q.SelectFields()
			require.Len(t, fields, 1)
			assert.Equal(t, tc.virtual, fields[0].IsVirtual())
		})
	}
}
