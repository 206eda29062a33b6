package history

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
)

// JSONLStore stores history entries in a JSONL file, one entry per line.
// The retention bound applies at read time; compaction is left to the
// operator.
type JSONLStore struct {
	path  string
	limit int
	mu    sync.Mutex
}

// NewJSONLStore opens (creating if needed) the store at path.
func NewJSONLStore(path string, limit int) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &JSONLStore{path: path, limit: limit}, nil
}

func (s *JSONLStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	enc := json.NewEncoder(f)
	return enc.Encode(e)
}

func (s *JSONLStore) List(ctx context.Context, q Query) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		if q.Rehearsal != 0 && e.Rehearsal != q.Rehearsal {
			continue
		}
		if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
			continue
		}
		res = append(res, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(res) > s.limit {
		res = res[len(res)-s.limit:]
	}
	return res, nil
}

func (s *JSONLStore) Get(ctx context.Context, id string) (Entry, bool, error) {
	all, err := s.List(ctx, Query{})
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func (s *JSONLStore) Close() error { return nil }
