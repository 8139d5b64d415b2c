package holiday

import (
	"sync/atomic"
	"time"
)

// Store holds the currently published calendar index. Publish swaps a
// pointer; readers load it without locking and keep whatever immutable
// snapshot they got, so a rebuild in progress is never observable.
type Store struct {
	current atomic.Pointer[Index]
}

// NewStore returns a store with no index published yet.
func NewStore() *Store {
	return &Store{}
}

// Publish atomically replaces the visible index. It is the only
// mutator; callers build the new index fully before publishing.
func (s *Store) Publish(idx *Index) {
	s.current.Store(idx)
}

// Published reports whether any index, even an empty one, has been
// published since startup.
func (s *Store) Published() bool {
	return s.current.Load() != nil
}

// Ready reports whether a non-empty index is being served.
func (s *Store) Ready() bool {
	idx := s.current.Load()
	return idx != nil && idx.Len() > 0
}

// Query resolves a YYYY-MM-DD date against the published index.
func (s *Store) Query(date string) (CalendarDay, error) {
	idx := s.current.Load()
	if idx == nil {
		return CalendarDay{}, ErrNotInitialized
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return CalendarDay{}, ErrInvalidDate
	}
	day, ok := idx.Lookup(date)
	if !ok {
		return CalendarDay{}, ErrNotFound
	}
	return day, nil
}
