package favorites

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// Store is the user's favorites: a set of movie summaries keyed by ID,
// kept in insertion order and written through to persistent storage on
// every mutation.
//
// In-memory state is authoritative for the session. A failed write is
// logged and the mutation still takes effect.
type Store struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu    sync.RWMutex
	index map[int]int // movie ID -> position in items
	items []domain.MovieSummary
}

// NewStore creates an empty favorites store backed by kv. Call Hydrate before first read.
func NewStore(kv domain.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:     kv,
		logger: logger,
		index:  make(map[int]int),
	}
}

// Hydrate loads persisted favorites. Empty or corrupt storage yields an empty store.
func (s *Store) Hydrate() {
	var saved []domain.MovieSummary
	ok, err := s.kv.Get(domain.KeyFavorites, &saved)
	if err != nil {
		s.logger.Warn("favorites unreadable, starting empty", "error", err)
		saved = nil
	} else if !ok {
		s.logger.Debug("no saved favorites")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]domain.MovieSummary, 0, len(saved))
	s.index = make(map[int]int, len(saved))
	for _, m := range saved {
		// Collapse duplicates written by older versions
		if _, dup := s.index[m.ID]; dup {
			continue
		}
		s.index[m.ID] = len(s.items)
		s.items = append(s.items, m)
	}

	s.logger.Info("favorites loaded", "count", len(s.items))
}

// IsFavorite reports whether id is in the store
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Add inserts the movie if its ID is absent. Returns whether the store changed.
func (s *Store) Add(movie domain.MovieSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[movie.ID]; ok {
		return false
	}
	s.index[movie.ID] = len(s.items)
	s.items = append(s.items, movie)
	s.persistLocked()

	s.logger.Info("favorite added", "id", movie.ID, "title", movie.Title)
	return true
}

// Remove deletes the movie with id if present. Returns whether the store changed.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}
	s.persistLocked()

	s.logger.Info("favorite removed", "id", id)
	return true
}

// Toggle adds the movie if absent, removes it otherwise. Returns the new membership.
func (s *Store) Toggle(movie domain.MovieSummary) bool {
	if s.Remove(movie.ID) {
		return false
	}
	s.Add(movie)
	return true
}

// List returns a copy of the favorites in insertion order
func (s *Store) List() []domain.MovieSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MovieSummary, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter returns favorites whose title fuzzily matches query, best match first.
// A blank query returns the full list in insertion order.
func (s *Store) Filter(query string) []domain.MovieSummary {
	query = strings.TrimSpace(query)
	items := s.List()
	if query == "" {
		return items
	}

	titles := make([]string, len(items))
	for i, m := range items {
		titles[i] = m.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	// Lower distance is better; ties keep insertion order
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.MovieSummary, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, items[r.OriginalIndex])
	}
	return out
}

// persistLocked writes the current list through to storage. Caller holds mu.
func (s *Store) persistLocked() {
	if err := s.kv.Set(domain.KeyFavorites, s.items); err != nil {
		s.logger.Error("failed to persist favorites", "count", len(s.items), "error", err)
	}
}
