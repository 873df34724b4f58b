package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Store holds bookmarks in insertion order.
// All methods are safe for concurrent use; callers always receive copies.
type Store struct {
	mu           sync.RWMutex
	bookmarks    []domain.Bookmark
	newID        func() string
	lastMutation time.Time
	now          func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the id generator (defaults to uuid v4).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the clock used to stamp mutations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		bookmarks: make([]domain.Bookmark, 0),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ domain.Repository = (*Store)(nil)

// List returns all bookmarks in insertion order
func (s *Store) List() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.bookmarks)
}

// Find returns the bookmarks matching f, in insertion order.
// An empty filter returns everything.
func (s *Store) Find(f domain.Filter) []domain.Bookmark {
	if f.IsEmpty() {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if f.Matches(b) {
			matches = append(matches, b)
		}
	}
	return matches
}

// FindByID retrieves a bookmark by exact id
func (s *Store) FindByID(id string) (domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.bookmarks[i], true
	}
	return domain.Bookmark{}, false
}

// Create appends a new bookmark with a freshly generated id.
// url and description are stored as given.
func (s *Store) Create(url, description string) domain.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	b := domain.Bookmark{
		ID:          id,
		URL:         url,
		Description: description,
	}
	s.bookmarks = append(s.bookmarks, b)
	s.lastMutation = s.now()
	return b
}

// Delete removes the bookmark with the given id.
// Returns false when nothing matched; that is not an error.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.bookmarks = slices.Delete(s.bookmarks, i, i+1)
	s.lastMutation = s.now()
	return true
}

// UpdateDescription sets the description of the bookmark with the given id
// and returns the updated record. Nothing is mutated when the id is unknown.
func (s *Store) UpdateDescription(id, description string) (domain.Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Bookmark{}, false
	}
	s.bookmarks[i].Description = description
	s.lastMutation = s.now()
	return s.bookmarks[i], true
}

// Count returns the number of bookmarks in the store
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bookmarks)
}

// LastMutation returns the time of the last create, delete or update.
// Zero if the store was never mutated.
func (s *Store) LastMutation() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastMutation
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.bookmarks, func(b domain.Bookmark) bool {
		return b.ID == id
	})
}
