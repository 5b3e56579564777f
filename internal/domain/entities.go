package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MovieSummary is the denormalized snapshot shown in lists and stored as a favorite.
// Optional fields are nil when the catalog omitted them.
type MovieSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"posterPath,omitempty"`
	VoteAverage *float64 `json:"voteAverage,omitempty"`
	ReleaseDate *string  `json:"releaseDate,omitempty"` // "YYYY-MM-DD"
	GenreIDs    []int    `json:"genreIds,omitempty"`
}

// Year returns the calendar year of the release date (0 if unknown)
func (m MovieSummary) Year() int {
	return releaseYear(m.ReleaseDate)
}

// Rating returns the vote average, or 0 when absent
func (m MovieSummary) Rating() float64 {
	if m.VoteAverage == nil {
		return 0
	}
	return *m.VoteAverage
}

// HasGenre reports whether the genre ID is in the summary's genre list
func (m MovieSummary) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Description returns secondary info for display, e.g. "1999 · ★ 8.4"
func (m MovieSummary) Description() string {
	var parts []string
	if y := m.Year(); y > 0 {
		parts = append(parts, strconv.Itoa(y))
	}
	if m.VoteAverage != nil {
		parts = append(parts, fmt.Sprintf("★ %.1f", *m.VoteAverage))
	}
	return strings.Join(parts, " · ")
}

// Genre is an entry of the catalog's genre taxonomy
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a single credited actor
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profilePath,omitempty"`
}

// MovieDetail is the extended record fetched for the detail view.
// It is never cached across views.
type MovieDetail struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  *string
	ReleaseDate *string
	Runtime     int // minutes
	VoteAverage *float64
	Genres      []Genre
	Cast        []CastMember
	TrailerKey  *string // external video identifier (YouTube)
}

// Summary derives the snapshot stored when a movie is favorited from its detail view
func (d MovieDetail) Summary() MovieSummary {
	ids := make([]int, len(d.Genres))
	for i, g := range d.Genres {
		ids[i] = g.ID
	}
	return MovieSummary{
		ID:          d.ID,
		Title:       d.Title,
		PosterPath:  d.PosterPath,
		VoteAverage: d.VoteAverage,
		ReleaseDate: d.ReleaseDate,
		GenreIDs:    ids,
	}
}

// Year returns the calendar year of the release date (0 if unknown)
func (d MovieDetail) Year() int {
	return releaseYear(d.ReleaseDate)
}

// FormattedRuntime returns the runtime in a human-readable format
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// TopCast returns at most n cast members in billing order
func (d MovieDetail) TopCast(n int) []CastMember {
	if len(d.Cast) <= n {
		return d.Cast
	}
	return d.Cast[:n]
}

// TrailerURL returns the watch URL for the trailer, or "" if there is none
func (d MovieDetail) TrailerURL() string {
	if d.TrailerKey == nil || *d.TrailerKey == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + *d.TrailerKey
}

// SearchPage is one page of search results
type SearchPage struct {
	Page         int
	TotalPages   int
	TotalResults int
	Results      []MovieSummary
}

// releaseYear parses the leading year of a "YYYY-MM-DD" date string
func releaseYear(date *string) int {
	if date == nil || len(*date) < 4 {
		return 0
	}
	y, err := strconv.Atoi((*date)[:4])
	if err != nil {
		return 0
	}
	return y
}
