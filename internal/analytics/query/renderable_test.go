package query

import (
	"testing"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/stretchr/testify/assert"
)

func TestFieldRender(t *testing.T) {
	assert.Equal(t, `t_1."ou" as "ou"`, NewField(Raw(`t_1."ou"`), "ou").Render())
	assert.Equal(t, `x as "prg[0].stg[1].eventdate"`, NewField(Raw("x"), "prg[0].stg[1].eventdate").Render())
	assert.Equal(t, "exists(select 1)", NewVirtualField(Raw("exists(select 1)"), "ou").Render())
	assert.Equal(t, "a desc", NewOrderClause(Raw("a"), model.Desc).Render())
	assert.Equal(t, "b asc", NewOrderClause(RenderableFunc(func() string { return "b" }), model.Asc).Render())
}

func TestRenderableSQLQuery_MergeAndHeaders(t *testing.T) {
	first := NewRenderableSQLQuery(
		[]Field{NewField(Raw("a"), "a"), NewVirtualField(Raw("p"), "p")},
		[]OrderClause{NewOrderClause(Raw("a"), model.Asc)},
	)
	second := NewRenderableSQLQuery(
		[]Field{NewField(Raw("b"), "b")},
		[]OrderClause{NewOrderClause(Raw("b"), model.Desc)},
	)

	merged := Merge(first, second)
	assert.Equal(t, []string{"a", "b"}, merged.Headers())
	assert.Len(t, merged.SelectFields(), 3)
	orders := merged.OrderClauses()
	if assert.Len(t, orders, 2) {
		assert.Equal(t, "a asc", orders[0].Render())
		assert.Equal(t, "b desc", orders[1].Render())
	}

	assert.True(t, Merge().IsEmpty())
	assert.False(t, merged.IsEmpty())
}

func TestRenderableSQLQuery_Immutable(t *testing.T) {
	fields := []Field{NewField(Raw("a"), "a")}
	q := NewRenderableSQLQuery(fields, nil)
	fields[0] = NewField(Raw("z"), "z")

	got := q.SelectFields()
	got[0] = NewField(Raw("y"), "y")

	assert.Equal(t, []string{"a"}, q.Headers())
}
