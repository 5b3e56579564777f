package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterField names one constraint of a FilterSet
type FilterField string

const (
	FieldGenre     FilterField = "genre"
	FieldYear      FilterField = "year"
	FieldMinRating FilterField = "rating"
)

// FilterSet holds the optional genre/year/minimum-rating constraints.
// A nil field imposes no constraint.
type FilterSet struct {
	Genre     *int
	Year      *int
	MinRating *float64
}

// IsZero reports whether no constraint is set
func (f FilterSet) IsZero() bool {
	return f.Genre == nil && f.Year == nil && f.MinRating == nil
}

// Match reports whether the movie satisfies every set constraint.
// A movie without a release date never matches a year filter, and one
// without genres never matches a genre filter.
func (f FilterSet) Match(m MovieSummary) bool {
	if f.Genre != nil && !m.HasGenre(*f.Genre) {
		return false
	}
	if f.Year != nil {
		if y := m.Year(); y == 0 || y != *f.Year {
			return false
		}
	}
	if f.MinRating != nil {
		if m.VoteAverage == nil || *m.VoteAverage < *f.MinRating {
			return false
		}
	}
	return true
}

// Apply returns a new slice with the matching movies; the input is not modified
func (f FilterSet) Apply(movies []MovieSummary) []MovieSummary {
	out := make([]MovieSummary, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// With returns a copy of the set with one field updated from its text form.
// An empty or blank value clears the field.
func (f FilterSet) With(field FilterField, value string) (FilterSet, error) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldGenre:
		if value == "" {
			f.Genre = nil
			return f, nil
		}
		id, err := strconv.Atoi(value)
		if err != nil {
			return f, fmt.Errorf("invalid genre id %q: %w", value, err)
		}
		f.Genre = &id
	case FieldYear:
		if value == "" {
			f.Year = nil
			return f, nil
		}
		y, err := strconv.Atoi(value)
		if err != nil || y <= 0 {
			return f, fmt.Errorf("invalid year %q", value)
		}
		f.Year = &y
	case FieldMinRating:
		if value == "" {
			f.MinRating = nil
			return f, nil
		}
		r, err := strconv.ParseFloat(value, 64)
		if err != nil || r < 0 || r > 10 {
			return f, fmt.Errorf("invalid rating %q", value)
		}
		f.MinRating = &r
	default:
		return f, fmt.Errorf("unknown filter field %q", field)
	}
	return f, nil
}

// String renders the active constraints, e.g. "genre=28 year=1999 rating≥7"
func (f FilterSet) String() string {
	var parts []string
	if f.Genre != nil {
		parts = append(parts, fmt.Sprintf("genre=%d", *f.Genre))
	}
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("year=%d", *f.Year))
	}
	if f.MinRating != nil {
		parts = append(parts, fmt.Sprintf("rating≥%g", *f.MinRating))
	}
	return strings.Join(parts, " ")
}
