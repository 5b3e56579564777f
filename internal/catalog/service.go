package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// posterSize is the TMDB image size used for poster links
const posterSize = "w500"

// posterLinker is implemented by catalogs that can build image URLs
type posterLinker interface {
	PosterURL(path *string, size string) string
}

// Service is the boundary between the catalog client and the rest of the app.
// List operations never return errors: failures are logged and replaced by
// empty results, since browsing stays usable without them.
type Service struct {
	catalog domain.Catalog
	logger  *slog.Logger

	genresMu sync.RWMutex
	genres   []domain.Genre
}

// NewService creates a new catalog service
func NewService(catalog domain.Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Trending returns the trending list, or an empty list on failure
func (s *Service) Trending(ctx context.Context) []domain.MovieSummary {
	movies, err := s.catalog.Trending(ctx)
	if err != nil {
		s.logger.Warn("trending unavailable", "error", err)
		return []domain.MovieSummary{}
	}
	s.logger.Debug("trending loaded", "count", len(movies))
	return movies
}

// Search returns one page of results.
// On failure it returns an empty page with zero total pages and ok=false so
// callers can keep what they already show.
func (s *Service) Search(ctx context.Context, query string, page int, filters domain.FilterSet) (result domain.SearchPage, ok bool) {
	result, err := s.catalog.Search(ctx, query, page, filters)
	if err != nil {
		s.logger.Warn("search failed", "query", query, "page", page, "error", err)
		return domain.SearchPage{Results: []domain.MovieSummary{}}, false
	}
	if result.Results == nil {
		result.Results = []domain.MovieSummary{}
	}
	s.logger.Debug("search complete", "query", query, "page", page, "results", len(result.Results), "totalPages", result.TotalPages)
	return result, true
}

// Details returns the extended record. Unlike the list operations, errors
// (domain.ErrNotFound, domain.ErrTransport) reach the caller so the detail
// view can say why nothing is shown.
func (s *Service) Details(ctx context.Context, id int) (*domain.MovieDetail, error) {
	detail, err := s.catalog.Details(ctx, id)
	if err != nil {
		s.logger.Warn("details unavailable", "id", id, "error", err)
		return nil, err
	}
	return detail, nil
}

// Genres returns the genre taxonomy, empty on failure.
// A successful result is kept for the rest of the session.
func (s *Service) Genres(ctx context.Context) []domain.Genre {
	s.genresMu.RLock()
	cached := s.genres
	s.genresMu.RUnlock()
	if cached != nil {
		return cached
	}

	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		s.logger.Warn("genres unavailable", "error", err)
		return []domain.Genre{}
	}

	s.genresMu.Lock()
	s.genres = genres
	s.genresMu.Unlock()
	return genres
}

// GenreName looks up a genre name from the loaded taxonomy ("" if unknown)
func (s *Service) GenreName(id int) string {
	s.genresMu.RLock()
	defer s.genresMu.RUnlock()
	for _, g := range s.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}

// PosterURL links the poster at path, or returns "" when there is no poster
// or the catalog cannot build image URLs
func (s *Service) PosterURL(path *string) string {
	pl, ok := s.catalog.(posterLinker)
	if !ok {
		return ""
	}
	return pl.PosterURL(path, posterSize)
}
