package query

import (
	"errors"
	"testing"

	"github.com/dhis2/te-analytics-go/internal/analytics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	latestEnrollmentSelect = "select *, row_number() over ( partition by trackedentity order by enrollmentdate desc ) as rn" +
		" from analytics_te_enrollment_tetuid where program = 'programUid' and t_1.trackedentity = trackedentity"
	firstEventSelect = "select *, row_number() over ( partition by enrollment order by occurreddate asc ) as rn" +
		" from analytics_te_event_tetuid where programstage = 'stageUid' and status != 'SCHEDULE'" +
		" and enrollment = (select enrollment from (" + latestEnrollmentSelect + ") en where en.rn = 1)"
)

var (
	testProgram = model.Program{UID: "programUid"}
	testStage   = model.ProgramStage{UID: "stageUid"}
)

func newTestContext(t *testing.T) *QueryContext {
	t.Helper()
	ctx, err := NewQueryContext(model.TrackedEntityType{UID: "tetUid"})
	require.NoError(t, err)
	return ctx
}

func TestBuildOrderSubQuery_Enrollment(t *testing.T) {
	id := model.EnrollmentDimension(testProgram, 0, model.StaticParam(model.EnrollmentDate))

	got, err := BuildOrderSubQuery(newTestContext(t), id, Raw("field"))
	require.NoError(t, err)

	want := "(select field from (" + latestEnrollmentSelect + ") en where en.rn = 1)"
	assert.Equal(t, want, got.Render())
}

func TestBuildOrderSubQuery_EnrollmentOffsets(t *testing.T) {
	tests := []struct {
		offset    int
		direction string
		rank      string
	}{
		{offset: 1, direction: "asc", rank: "1"},
		{offset: 3, direction: "asc", rank: "3"},
		{offset: -1, direction: "desc", rank: "2"},
	}
	for _, tt := range tests {
		id := model.EnrollmentDimension(testProgram, tt.offset, model.StaticParam(model.EnrollmentDate))
		got, err := BuildOrderSubQuery(newTestContext(t), id, Raw("field"))
		require.NoError(t, err)

		want := "(select field from (select *, row_number() over ( partition by trackedentity order by enrollmentdate " + tt.direction +
			" ) as rn from analytics_te_enrollment_tetuid where program = 'programUid' and t_1.trackedentity = trackedentity) en where en.rn = " + tt.rank + ")"
		assert.Equal(t, want, got.Render(), "offset %d", tt.offset)
	}
}

func TestBuildOrderSubQuery_TrackedEntity(t *testing.T) {
	id := model.TrackedEntityDimension(model.StaticParam(model.Created))

	got, err := BuildOrderSubQuery(newTestContext(t), id, Raw("field"))
	require.NoError(t, err)
	assert.Equal(t, `t_1."field"`, got.Render())
}

func TestBuildOrderSubQuery_Event(t *testing.T) {
	id := model.EventDimension(testProgram, 0, testStage, 1, model.StaticParam(model.EventDate))

	got, err := BuildOrderSubQuery(newTestContext(t), id, Raw(`ev."occurreddate"`))
	require.NoError(t, err)

	want := `(select ev."occurreddate" from (` + firstEventSelect + `) ev where ev.rn = 1)`
	assert.Equal(t, want, got.Render())
}

func TestBuildOrderSubQuery_ScheduledEventsOrderByScheduledDate(t *testing.T) {
	for _, static := range []model.StaticDimension{model.ScheduledDate, model.EventStatus} {
		id := model.EventDimension(testProgram, 0, testStage, 0, model.StaticParam(static))

		got, err := BuildOrderSubQuery(newTestContext(t), id, Raw("field"))
		require.NoError(t, err)

		rendered := got.Render()
		assert.Contains(t, rendered, "order by coalesce(occurreddate, scheduleddate) desc")
		assert.NotContains(t, rendered, "status != 'SCHEDULE'")
	}
}

func TestBuildOrderSubQuery_DataElement(t *testing.T) {
	item := model.QueryItem{UID: "deUid", Kind: model.ItemDataElement, ValueType: model.ValueTypeNumber}
	id := model.EventDimension(testProgram, 0, testStage, 1, model.ItemParam(item))
	require.Equal(t, model.LevelEventDataElement, id.Level())

	value, err := DataElementValue(id)
	require.NoError(t, err)
	got, err := BuildOrderSubQuery(newTestContext(t), id, value)
	require.NoError(t, err)

	want := "(select (eventdatavalues -> 'deUid' ->> 'value') from analytics_te_event_tetuid" +
		" where event = (select event from (" + firstEventSelect + ") ev where ev.rn = 1))"
	assert.Equal(t, want, got.Render())
}

func TestBuildExistsValueSubquery(t *testing.T) {
	ctx := newTestContext(t)

	te, err := BuildExistsValueSubquery(ctx, model.TrackedEntityDimension(model.StaticParam(model.OrgUnit)), Raw("cond"))
	require.NoError(t, err)
	assert.Equal(t, "exists(select 1 from analytics_te_tetuid where trackedentity = t_1.trackedentity and cond)", te.Render())

	en, err := BuildExistsValueSubquery(ctx, model.EnrollmentDimension(testProgram, 0, model.StaticParam(model.EnrollmentDate)), Raw("field"))
	require.NoError(t, err)
	assert.Equal(t, "exists(select 1 from ("+latestEnrollmentSelect+") en where en.rn = 1 and field)", en.Render())

	ev, err := BuildExistsValueSubquery(ctx, model.EventDimension(testProgram, 0, testStage, 1, model.StaticParam(model.EventDate)), Raw("cond"))
	require.NoError(t, err)
	rendered := ev.Render()
	assert.Contains(t, rendered, `) "enrollmentSubqueryAlias" where "enrollmentSubqueryAlias".rn = 1)`)
	assert.Contains(t, rendered, ") ev where ev.rn = 1 and cond)")
	assert.Regexp(t, `^exists\(select 1 from \(select \*, row_number\(\)`, rendered)
}

func TestBuildSubqueries_UnknownLevel(t *testing.T) {
	id := model.DimensionIdentifier{
		ProgramStage: model.Of(testStage, 0),
		Dimension:    model.StaticParam(model.EventDate),
	}
	require.Equal(t, model.LevelUnknown, id.Level())

	_, err := BuildOrderSubQuery(newTestContext(t), id, Raw("field"))
	assert.True(t, errors.Is(err, ErrUnsupportedDimensionLevel))

	_, err = BuildExistsValueSubquery(newTestContext(t), id, Raw("field"))
	assert.ErrorIs(t, err, ErrUnsupportedDimensionLevel)
}

func TestDataElementValue_RejectsOtherDimensions(t *testing.T) {
	id := model.EventDimension(testProgram, 0, testStage, 0, model.StaticParam(model.EventDate))
	_, err := DataElementValue(id)
	assert.ErrorIs(t, err, ErrUnsupportedDimension)
}

func TestLegendValue(t *testing.T) {
	ctx := newTestContext(t)
	item := model.QueryItem{
		UID:       "deUid",
		Kind:      model.ItemDataElement,
		ValueType: model.ValueTypeNumber,
		LegendSet: &model.LegendSet{ID: 42, UID: "lsUid"},
	}
	id := model.EventDimension(testProgram, 0, testStage, 0, model.ItemParam(item))

	got, err := LegendValue(ctx, id)
	require.NoError(t, err)

	value := "(eventdatavalues -> 'deUid' ->> 'value')::numeric"
	want := "(select l.uid from maplegend l where l.maplegendsetid = $1 and l.startvalue <= " + value + " and l.endvalue > " + value + ")"
	assert.Equal(t, want, got.Render())
	assert.Equal(t, []any{int64(42)}, ctx.Params())

	item.LegendSet = nil
	_, err = LegendValue(ctx, model.EventDimension(testProgram, 0, testStage, 0, model.ItemParam(item)))
	assert.ErrorIs(t, err, ErrUnsupportedDimension)
}

func TestBuildOrderSubQuery_CustomAliases(t *testing.T) {
	aliases := Aliases{TrackedEntity: "te", Enrollment: "enr", Event: "evt", EnrollmentSubquery: "esub"}
	ctx, err := NewQueryContext(model.TrackedEntityType{UID: "tetUid"}, WithAliases(aliases))
	require.NoError(t, err)

	got, err := BuildOrderSubQuery(ctx, model.EnrollmentDimension(testProgram, 0, model.StaticParam(model.EnrollmentDate)), Raw("x"))
	require.NoError(t, err)
	assert.Contains(t, got.Render(), "and te.trackedentity = trackedentity) enr where enr.rn = 1)")
}
