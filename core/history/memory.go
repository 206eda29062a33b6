package history

import (
	"context"
	"sync"
)

// MemoryStore keeps the last limit entries per rehearsal in memory.
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	entries map[int][]Entry
}

// NewMemoryStore returns a bounded in-memory store. A non-positive limit
// falls back to DefaultLimit.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit, entries: make(map[int][]Entry)}
}

func (s *MemoryStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.entries[e.Rehearsal], e)
	if len(list) > s.limit {
		list = list[len(list)-s.limit:]
	}
	s.entries[e.Rehearsal] = list
	return nil
}

func (s *MemoryStore) List(ctx context.Context, q Query) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries[q.Rehearsal] {
		if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.entries {
		for _, e := range list {
			if e.ID == id {
				return e, true, nil
			}
		}
	}
	return Entry{}, false, nil
}

func (s *MemoryStore) Close() error { return nil }
