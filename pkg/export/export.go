// Package export writes plan artefacts in JSON and CSV form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
)

// WriteJSON writes any plan artefact to w in JSON form.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteAllocationCSV writes the allocation matrix in long form.
func WriteAllocationCSV(w io.Writer, cells []model.AllocationCell) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"work_title", "rehearsal", "minutes"}); err != nil {
		return err
	}
	for _, c := range cells {
		rec := []string{
			c.WorkTitle,
			strconv.Itoa(c.Rehearsal),
			strconv.Itoa(c.Minutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTimedCSV writes the timed schedule with clock-formatted starts.
func WriteTimedCSV(w io.Writer, items []model.TimedItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rehearsal", "order", "title", "start", "end", "minutes", "is_break"}); err != nil {
		return err
	}
	for _, it := range items {
		rec := []string{
			strconv.Itoa(it.Rehearsal),
			strconv.Itoa(it.Order),
			it.Title,
			timegrid.Clock(it.StartMinutes),
			timegrid.Clock(it.End()),
			strconv.Itoa(it.DurationMinutes),
			strconv.FormatBool(it.IsBreak),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDiagnosticsCSV writes the diagnostics of one run.
func WriteDiagnosticsCSV(w io.Writer, diags []model.Diagnostic) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "rehearsal", "work_title", "message"}); err != nil {
		return err
	}
	for _, d := range diags {
		rec := []string{
			string(d.Kind),
			strconv.Itoa(d.Rehearsal),
			d.WorkTitle,
			d.Message,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
