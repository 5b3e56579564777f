package tmdb

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// MapMovie converts a list entry to a domain summary.
// Empty strings from the API are treated as absent.
func MapMovie(r MovieResult) domain.MovieSummary {
	return domain.MovieSummary{
		ID:          r.ID,
		Title:       r.Title,
		PosterPath:  nonEmpty(r.PosterPath),
		VoteAverage: r.VoteAverage,
		ReleaseDate: nonEmpty(r.ReleaseDate),
		GenreIDs:    r.GenreIDs,
	}
}

// MapMovies converts list entries to domain summaries, preserving order
func MapMovies(results []MovieResult) []domain.MovieSummary {
	movies := make([]domain.MovieSummary, 0, len(results))
	for _, r := range results {
		movies = append(movies, MapMovie(r))
	}
	return movies
}

// MapGenres converts genre entries
func MapGenres(genres []Genre) []domain.Genre {
	out := make([]domain.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

// MapDetails converts the extended movie record
func MapDetails(d MovieDetails) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  nonEmpty(d.PosterPath),
		ReleaseDate: nonEmpty(d.ReleaseDate),
		VoteAverage: d.VoteAverage,
		Genres:      MapGenres(d.Genres),
	}
	if d.Runtime != nil {
		detail.Runtime = *d.Runtime
	}

	if d.Credits != nil {
		detail.Cast = make([]domain.CastMember, 0, len(d.Credits.Cast))
		for _, c := range d.Credits.Cast {
			detail.Cast = append(detail.Cast, domain.CastMember{
				ID:          c.ID,
				Name:        c.Name,
				Character:   c.Character,
				ProfilePath: nonEmpty(c.ProfilePath),
			})
		}
	}

	if d.Videos != nil {
		if key := pickTrailer(d.Videos.Results); key != "" {
			detail.TrailerKey = &key
		}
	}

	return detail
}

// pickTrailer chooses the best YouTube video key.
// Preference: official trailer, any trailer, any YouTube video.
func pickTrailer(videos []Video) string {
	var trailer, fallback string
	for _, v := range videos {
		if v.Site != "YouTube" || v.Key == "" {
			continue
		}
		if v.Type == "Trailer" {
			if v.Official {
				return v.Key
			}
			if trailer == "" {
				trailer = v.Key
			}
		}
		if fallback == "" {
			fallback = v.Key
		}
	}
	if trailer != "" {
		return trailer
	}
	return fallback
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
