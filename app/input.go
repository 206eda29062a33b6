package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// DecodeWorks reads the canonical Works table (a JSON array) from r.
func DecodeWorks(r io.Reader) ([]model.Work, error) {
	var works []model.Work
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&works); err != nil {
		return nil, fmt.Errorf("decode works: %w", err)
	}
	return works, nil
}

// DecodeRehearsals reads the canonical Rehearsals table (a JSON array)
// from r.
func DecodeRehearsals(r io.Reader) ([]model.Rehearsal, error) {
	var rehearsals []model.Rehearsal
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rehearsals); err != nil {
		return nil, fmt.Errorf("decode rehearsals: %w", err)
	}
	return rehearsals, nil
}

// DecodeTimedItems reads a rehearsal timetable (a JSON array) from r.
func DecodeTimedItems(r io.Reader) ([]model.TimedItem, error) {
	var items []model.TimedItem
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode timed items: %w", err)
	}
	return items, nil
}

// LoadWorks reads the Works table from a file.
func LoadWorks(path string) ([]model.Work, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeWorks(f)
}

// LoadRehearsals reads the Rehearsals table from a file.
func LoadRehearsals(path string) ([]model.Rehearsal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeRehearsals(f)
}

// LoadTimedItems reads a rehearsal timetable from a file.
func LoadTimedItems(path string) ([]model.TimedItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return DecodeTimedItems(f)
}
