package query

import (
	"testing"

	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		id    string
		start string
		end   string
	}{
		{id: "2022", start: "2022-01-01", end: "2023-01-01"},
		{id: "2022Q1", start: "2022-01-01", end: "2022-04-01"},
		{id: "2022Q4", start: "2022-10-01", end: "2023-01-01"},
		{id: "202202", start: "2022-02-01", end: "2022-03-01"},
		{id: "202212", start: "2022-12-01", end: "2023-01-01"},
		{id: "20240228", start: "2024-02-28", end: "2024-02-29"},
		{id: "2023-12-31", start: "2023-12-31", end: "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := ParsePeriod(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.start, p.StartDate())
			assert.Equal(t, tt.end, p.EndDate())
		})
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, id := range []string{"", "22", "2022Q5", "202213", "20220230", "2022-02-30", "last12months", "2022W1"} {
		_, err := ParsePeriod(id)
		require.Error(t, err, id)
		assert.True(t, common.IsErrBadRequest(err), id)
	}
}
