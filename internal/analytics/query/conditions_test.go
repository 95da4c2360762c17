package query

import (
	"testing"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueCondition(t *testing.T) {
	column := Raw(`ev."col"`)

	tests := []struct {
		name      string
		valueType model.ValueType
		param     model.DimensionParam
		want      string
		params    []any
	}{
		{
			name:      "no restrictions",
			valueType: model.ValueTypeText,
			param:     model.DimensionParam{Static: model.OrgUnit},
			want:      `ev."col" is not null`,
		},
		{
			name:      "text items",
			valueType: model.ValueTypeOrgUnit,
			param:     model.StaticParam(model.OrgUnit, "ouA", " ouB "),
			want:      `ev."col" in ($1, $2)`,
			params:    []any{"ouA", "ouB"},
		},
		{
			name:      "single period",
			valueType: model.ValueTypeDate,
			param:     model.StaticParam(model.EventDate, "2022"),
			want:      `(ev."col" >= $1 and ev."col" < $2)`,
			params:    []any{"2022-01-01", "2023-01-01"},
		},
		{
			name:      "several periods",
			valueType: model.ValueTypeDate,
			param:     model.StaticParam(model.EventDate, "202201", "2022Q3"),
			want:      `((ev."col" >= $1 and ev."col" < $2) or (ev."col" >= $3 and ev."col" < $4))`,
			params:    []any{"2022-01-01", "2022-02-01", "2022-07-01", "2022-10-01"},
		},
		{
			name:      "numeric comparison",
			valueType: model.ValueTypeInteger,
			param:     model.DimensionParam{Filters: []model.QueryFilter{{Operator: model.OperatorGT, Value: "10"}}},
			want:      `ev."col"::numeric > $1`,
			params:    []any{float64(10)},
		},
		{
			name:      "text equality and like",
			valueType: model.ValueTypeText,
			param: model.DimensionParam{Filters: []model.QueryFilter{
				{Operator: model.OperatorEQ, Value: "a"},
				{Operator: model.OperatorILIKE, Value: "b"},
			}},
			want:   `ev."col" = $1 and ev."col" ilike $2`,
			params: []any{"a", "%b%"},
		},
		{
			name:      "numeric in",
			valueType: model.ValueTypeNumber,
			param:     model.DimensionParam{Filters: []model.QueryFilter{{Operator: model.OperatorIN, Value: "1;2.5"}}},
			want:      `ev."col"::numeric in ($1, $2)`,
			params:    []any{float64(1), 2.5},
		},
		{
			name:      "no value",
			valueType: model.ValueTypeText,
			param:     model.DimensionParam{Filters: []model.QueryFilter{{Operator: model.OperatorNV}}},
			want:      `ev."col" is null`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			got, err := ValueCondition(ctx, column, tt.valueType, tt.param)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Render())
			if tt.params == nil {
				assert.Empty(t, ctx.Params())
			} else {
				assert.Equal(t, tt.params, ctx.Params())
			}
		})
	}
}

func TestValueCondition_BadInput(t *testing.T) {
	tests := map[string]struct {
		valueType model.ValueType
		param     model.DimensionParam
	}{
		"unknown operator": {
			valueType: model.ValueTypeText,
			param:     model.DimensionParam{Filters: []model.QueryFilter{{Operator: "XX", Value: "1"}}},
		},
		"non numeric value": {
			valueType: model.ValueTypeNumber,
			param:     model.DimensionParam{Filters: []model.QueryFilter{{Operator: model.OperatorLT, Value: "abc"}}},
		},
		"bad period": {
			valueType: model.ValueTypeDate,
			param:     model.StaticParam(model.EventDate, "2022Q9"),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ValueCondition(newTestContext(t), Raw("c"), tt.valueType, tt.param)
			require.Error(t, err)
			assert.True(t, common.IsErrBadRequest(err))
		})
	}
}
