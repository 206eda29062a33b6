// Package history keeps an append-only log of edit snapshots so a caller
// can revert a rehearsal timetable manually. The core never consults it;
// ownership stays with the calling service.
package history

import (
	"context"
	"time"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// DefaultLimit bounds the number of retained entries per rehearsal.
const DefaultLimit = 50

// Entry is one recorded edit: the action applied and the timetable as it
// was after the edit.
type Entry struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Rehearsal   int               `json:"rehearsal"`
	Action      string            `json:"action"`
	Description string            `json:"description"`
	Items       []model.TimedItem `json:"items"`
}

// Query filters history reads.
type Query struct {
	Rehearsal int
	Since     time.Time
}

// Store persists edit history entries.
type Store interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, q Query) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, bool, error)
	Close() error
}
