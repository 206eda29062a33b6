package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

func TestWriteAllocationCSV(t *testing.T) {
	var buf bytes.Buffer
	cells := []model.AllocationCell{
		{WorkTitle: "Symphony", Rehearsal: 1, Minutes: 25},
		{WorkTitle: "Overture", Rehearsal: 2, Minutes: 15},
	}
	require.NoError(t, WriteAllocationCSV(&buf, cells))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"work_title", "rehearsal", "minutes"}, rows[0])
	assert.Equal(t, []string{"Symphony", "1", "25"}, rows[1])
}

func TestWriteTimedCSVClocks(t *testing.T) {
	var buf bytes.Buffer
	items := []model.TimedItem{
		{Rehearsal: 1, Order: 0, Title: "A", StartMinutes: 540, DurationMinutes: 50},
		{Rehearsal: 1, Order: 1, Title: "Break", StartMinutes: 590, DurationMinutes: 10, IsBreak: true},
	}
	require.NoError(t, WriteTimedCSV(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "0", "A", "09:00", "09:50", "50", "false"}, rows[1])
	assert.Equal(t, []string{"1", "1", "Break", "09:50", "10:00", "10", "true"}, rows[2])
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	diags := []model.Diagnostic{
		{Kind: model.DiagDeficit, WorkTitle: "Big", Message: "short by 20"},
	}
	require.NoError(t, WriteJSON(&buf, diags))

	var back []model.Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 1)
	assert.Equal(t, model.DiagDeficit, back[0].Kind)
}
