package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// rowHeight is the number of lines one movie card takes
const rowHeight = 2

// MovieList is a scrollable list of movie cards
type MovieList struct {
	items []domain.MovieSummary

	cursor     int
	offset     int
	maxVisible int
}

// NewMovieList creates an empty list
func NewMovieList() MovieList {
	return MovieList{maxVisible: 1}
}

// SetItems replaces the items. The cursor is kept when still in range so
// appending a page does not jump the selection.
func (l *MovieList) SetItems(items []domain.MovieSummary) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
	l.ensureVisible()
}

// Reset moves the cursor to the top
func (l *MovieList) Reset() {
	l.cursor = 0
	l.offset = 0
}

// SetHeight sets the number of screen lines available for cards
func (l *MovieList) SetHeight(lines int) {
	l.maxVisible = max(lines/rowHeight, 1)
	l.ensureVisible()
}

// Len returns the number of items
func (l MovieList) Len() int {
	return len(l.items)
}

// Cursor returns the selected index
func (l MovieList) Cursor() int {
	return l.cursor
}

// Selected returns the highlighted movie, or nil when empty
func (l MovieList) Selected() *domain.MovieSummary {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	m := l.items[l.cursor]
	return &m
}

// AtEnd reports whether the cursor is on the last item
func (l MovieList) AtEnd() bool {
	return len(l.items) > 0 && l.cursor == len(l.items)-1
}

// HandleKey moves the cursor. Returns false for keys it does not use.
func (l *MovieList) HandleKey(msg tea.KeyMsg) bool {
	count := len(l.items)
	if count == 0 {
		return false
	}

	switch {
	case key.Matches(msg, ListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(msg, ListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, ListKeys.Home):
		l.cursor = 0
	case key.Matches(msg, ListKeys.End):
		l.cursor = count - 1
	case key.Matches(msg, ListKeys.HalfDown):
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case key.Matches(msg, ListKeys.HalfUp):
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	default:
		return false
	}

	l.ensureVisible()
	return true
}

func (l *MovieList) ensureVisible() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// ListDecor supplies per-item details the list cannot know itself
type ListDecor struct {
	IsFavorite func(id int) bool
	GenreName  func(id int) string
}

// View renders the visible cards
func (l MovieList) View(st styles.Styles, width int, decor ListDecor, empty string) string {
	if len(l.items) == 0 {
		return st.Dim.Render(empty)
	}

	end := min(l.offset+l.maxVisible, len(l.items))
	lines := make([]string, 0, (end-l.offset)*rowHeight)

	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderCard(st, l.items[i], i == l.cursor, width, decor)...)
	}

	return strings.Join(lines, "\n")
}

func (l MovieList) renderCard(st styles.Styles, m domain.MovieSummary, selected bool, width int, decor ListDecor) []string {
	star := "  "
	if decor.IsFavorite != nil && decor.IsFavorite(m.ID) {
		star = styles.StarChar + " "
	}

	meta := []string{}
	if d := m.Description(); d != "" {
		meta = append(meta, d)
	}
	if decor.GenreName != nil {
		var names []string
		for _, id := range m.GenreIDs {
			if n := decor.GenreName(id); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			meta = append(meta, strings.Join(names, ", "))
		}
	}

	title := styles.Pad(" "+star+m.Title, width)
	sub := styles.Pad("    "+strings.Join(meta, " · "), width)

	if selected {
		return []string{st.SelectedItem.Render(title), st.SelectedItem.Render(sub)}
	}
	if star != "  " {
		return []string{st.Star.Render(title), st.Dim.Render(sub)}
	}
	return []string{st.NormalItem.Render(title), st.Dim.Render(sub)}
}
