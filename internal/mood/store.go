package mood

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
	now     func() time.Time
}

type MemoryStoreOption func(*MemoryStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddEntry records scores with a generated id and the current time.
func (s *MemoryStore) AddEntry(scores Scores) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := scores.Entry(s.nextID, s.now().UTC())
	s.nextID++
	s.entries = append(s.entries, e)
	return e
}

// Import loads entries recorded elsewhere, keeping their ids and timestamps.
// Later AddEntry calls get ids above every imported one.
func (s *MemoryStore) Import(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.entries = append(s.entries, e)
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	slices.SortStableFunc(s.entries, func(a, b Entry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// Entries returns a copy of all entries, newest first.
func (s *MemoryStore) Entries() []Entry {
	s.mu.RLock()
	out := slices.Clone(s.entries)
	s.mu.RUnlock()

	slices.Reverse(out)
	return out
}

func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.entries, s.now())
}
