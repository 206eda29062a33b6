package eventbus

import (
	"time"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// PlanGenerated is published after every full planning run.
type PlanGenerated struct {
	Works       int
	Rehearsals  int
	Bundles     int
	Diagnostics []model.Diagnostic
	Time        time.Time
}

// ScheduleEdited is published when an edit has been accepted and the
// rehearsal timetable replaced.
type ScheduleEdited struct {
	Rehearsal int
	Action    string
	EntryID   string
	Items     []model.TimedItem
	Time      time.Time
}

// EditRejected is published when an edit was refused and the timetable
// left untouched.
type EditRejected struct {
	Rehearsal  int
	Action     string
	Violations []string
	Time       time.Time
}
