package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStaticDimension(t *testing.T) {
	tests := map[string]StaticDimension{
		"EVENT_DATE":        EventDate,
		"scheduled_date":    ScheduledDate,
		" OU ":              OrgUnit,
		"EVENT_STATUS":      EventStatus,
		"ENROLLMENT_STATUS": EnrollmentStatus,
		"ENROLLMENT_DATE":   EnrollmentDate,
		"INCIDENT_DATE":     IncidentDate,
		"CREATED":           Created,
		"LAST_UPDATED":      LastUpdated,
	}
	for name, want := range tests {
		got, ok := ParseStaticDimension(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseStaticDimension("PROGRAM_INDICATOR")
	assert.False(t, ok)
}

func TestStaticDimensionColumns(t *testing.T) {
	assert.Equal(t, "occurreddate", EventDate.ColumnName())
	assert.Equal(t, "eventdate", EventDate.HeaderName())
	assert.Equal(t, "status", EventStatus.ColumnName())
	assert.Equal(t, "eventstatus", EventStatus.HeaderName())
	assert.Equal(t, "occurreddate", IncidentDate.ColumnName())

	assert.True(t, ScheduledDate.IncludesScheduledEvents())
	assert.True(t, EventStatus.IncludesScheduledEvents())
	assert.False(t, EventDate.IncludesScheduledEvents())

	assert.True(t, EventDate.ValueType().IsDate())
	assert.False(t, StaticNone.IsValid())
	assert.Equal(t, "NONE", StaticNone.String())
}

func TestDimensionParam(t *testing.T) {
	static := StaticParam(OrgUnit, "ouA")
	assert.True(t, static.IsOfType(ParamStatic))
	assert.True(t, static.IsStatic(OrgUnit))
	assert.True(t, static.HasRestrictions())
	assert.Equal(t, "ou", static.UID())
	assert.Nil(t, static.QueryItem())

	item := ItemParam(QueryItem{UID: "de", Kind: ItemDataElement, LegendSet: &LegendSet{ID: 1, UID: "ls"}})
	assert.True(t, item.IsOfType(ParamDataElement))
	assert.False(t, item.IsOfType(ParamStatic))
	assert.True(t, item.HasLegendSet())
	assert.False(t, item.HasRestrictions())
	assert.Equal(t, ValueTypeText, item.ValueType())

	op, ok := ParseOperator(" ge ")
	assert.True(t, ok)
	assert.Equal(t, OperatorGE, op)

	dir, ok := ParseSortDirection("DESC")
	assert.True(t, ok)
	assert.Equal(t, "desc", dir.SQL())
	assert.Equal(t, "DESC", dir.String())
	_, ok = ParseSortDirection("sideways")
	assert.False(t, ok)
}
