package reports

import (
	"errors"
	"sync"
	"time"

	"logmed-backend/internal/matching"
)

var ErrDraftNotFound = errors.New("draft not found")

type draftList struct {
	drafts  []Draft
	touched time.Time
}

// Store keeps the draft list of each signed-in profile. Lists are never
// persisted; a restart or an idle purge discards them.
type Store struct {
	mu      sync.Mutex
	lists   map[string]*draftList
	matcher matching.Matcher
	now     func() time.Time
}

func NewStore(m matching.Matcher) *Store {
	return &Store{
		lists:   make(map[string]*draftList),
		matcher: m,
		now:     time.Now,
	}
}

// Matcher returns the name matcher used for merges.
func (s *Store) Matcher() matching.Matcher {
	return s.matcher
}

// Apply merges a batch of extracted drafts into the owner's list and returns
// a copy of the resulting list.
func (s *Store) Apply(owner string, incoming []Draft) []Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.listFor(owner)
	l.drafts = Merge(l.drafts, incoming, s.matcher)
	l.touched = s.now()
	return cloneDrafts(l.drafts)
}

func (s *Store) List(owner string) []Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[owner]
	if !ok {
		return []Draft{}
	}
	return cloneDrafts(l.drafts)
}

func (s *Store) Get(owner, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lists[owner]; ok {
		for _, d := range l.drafts {
			if d.ID == id {
				return d, nil
			}
		}
	}
	return Draft{}, ErrDraftNotFound
}

// Remove drops a single draft, typically after it was submitted as a freight.
func (s *Store) Remove(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[owner]
	if !ok {
		return ErrDraftNotFound
	}
	for i, d := range l.drafts {
		if d.ID == id {
			l.drafts = append(l.drafts[:i], l.drafts[i+1:]...)
			l.touched = s.now()
			return nil
		}
	}
	return ErrDraftNotFound
}

func (s *Store) Clear(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, owner)
}

// PurgeIdle discards lists untouched for longer than maxIdle and returns how
// many drafts were dropped.
func (s *Store) PurgeIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	dropped := 0
	for owner, l := range s.lists {
		if l.touched.Before(cutoff) {
			dropped += len(l.drafts)
			delete(s.lists, owner)
		}
	}
	return dropped
}

func (s *Store) listFor(owner string) *draftList {
	l, ok := s.lists[owner]
	if !ok {
		l = &draftList{}
		s.lists[owner] = l
	}
	return l
}

func cloneDrafts(in []Draft) []Draft {
	out := make([]Draft, len(in))
	copy(out, in)
	return out
}
