package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// filterFocus is the modal section receiving keys
type filterFocus int

const (
	focusGenre filterFocus = iota
	focusYear
	focusRating
	focusCount
)

const genreRows = 6

// FilterSelection is the confirmed contents of the filter modal.
// Values use the controller's text form: "" clears the field.
type FilterSelection struct {
	Genre     string
	Year      string
	MinRating string
}

// FilterModal edits genre, year and minimum rating
type FilterModal struct {
	visible bool
	focus   filterFocus

	genres     []domain.Genre
	genreQuery textinput.Model
	matches    []int // indices into genres, best match first
	cursor     int
	selected   *int // chosen genre ID

	year   textinput.Model
	rating textinput.Model
}

// NewFilterModal creates a new filter modal
func NewFilterModal() FilterModal {
	gq := textinput.New()
	gq.Placeholder = "type to find a genre..."
	gq.Prompt = "genre  "
	gq.CharLimit = 30

	y := textinput.New()
	y.Placeholder = "any"
	y.Prompt = "year   "
	y.CharLimit = 4

	r := textinput.New()
	r.Placeholder = "any"
	r.Prompt = "rating ≥ "
	r.CharLimit = 4

	return FilterModal{genreQuery: gq, year: y, rating: r}
}

// Show opens the modal seeded with the current filters
func (m *FilterModal) Show(genres []domain.Genre, current domain.FilterSet) tea.Cmd {
	m.visible = true
	m.genres = genres
	m.selected = current.Genre
	m.genreQuery.SetValue("")

	m.year.SetValue("")
	if current.Year != nil {
		m.year.SetValue(strconv.Itoa(*current.Year))
	}
	m.rating.SetValue("")
	if current.MinRating != nil {
		m.rating.SetValue(strconv.FormatFloat(*current.MinRating, 'f', -1, 64))
	}

	m.refreshMatches()
	return m.setFocus(focusGenre)
}

// SetGenres replaces the genre list, e.g. when it arrives after Show
func (m *FilterModal) SetGenres(genres []domain.Genre) {
	m.genres = genres
	m.refreshMatches()
}

// Hide dismisses the modal
func (m *FilterModal) Hide() {
	m.visible = false
	m.genreQuery.Blur()
	m.year.Blur()
	m.rating.Blur()
}

// IsVisible returns whether the modal is shown
func (m FilterModal) IsVisible() bool {
	return m.visible
}

func (m *FilterModal) setFocus(f filterFocus) tea.Cmd {
	m.focus = f
	m.genreQuery.Blur()
	m.year.Blur()
	m.rating.Blur()

	switch f {
	case focusYear:
		return m.year.Focus()
	case focusRating:
		return m.rating.Focus()
	default:
		return m.genreQuery.Focus()
	}
}

// refreshMatches ranks genre names against the picker query
func (m *FilterModal) refreshMatches() {
	m.cursor = 0
	query := strings.ToLower(strings.TrimSpace(m.genreQuery.Value()))

	if query == "" {
		m.matches = make([]int, len(m.genres))
		for i := range m.genres {
			m.matches[i] = i
		}
		return
	}

	names := make([]string, len(m.genres))
	for i, g := range m.genres {
		names[i] = strings.ToLower(g.Name)
	}

	found := fuzzy.Find(query, names)
	m.matches = make([]int, len(found))
	for i, match := range found {
		m.matches[i] = match.Index
	}
}

// Update handles input events, returns (modal, cmd, selection).
// selection is non-nil when the user confirmed.
func (m FilterModal) Update(msg tea.Msg) (FilterModal, tea.Cmd, *FilterSelection) {
	if !m.visible {
		return m, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, nil
		case "tab":
			return m, m.setFocus((m.focus + 1) % focusCount), nil
		case "shift+tab":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount), nil
		case "enter":
			if m.focus == focusGenre && len(m.matches) > 0 && m.genreQuery.Value() != "" {
				// pick the highlighted genre and move on
				id := m.genres[m.matches[m.cursor]].ID
				m.selected = &id
				m.genreQuery.SetValue("")
				m.refreshMatches()
				return m, m.setFocus(focusYear), nil
			}
			sel := m.selection()
			m.Hide()
			return m, nil, &sel
		}

		if m.focus == focusGenre {
			switch keyMsg.String() {
			case "down", "ctrl+n":
				if m.cursor < len(m.matches)-1 {
					m.cursor++
				}
				return m, nil, nil
			case "up", "ctrl+p":
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil, nil
			case " ":
				if len(m.matches) > 0 {
					id := m.genres[m.matches[m.cursor]].ID
					if m.selected != nil && *m.selected == id {
						m.selected = nil
					} else {
						m.selected = &id
					}
				}
				return m, nil, nil
			case "ctrl+x":
				m.selected = nil
				return m, nil, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusGenre:
		before := m.genreQuery.Value()
		m.genreQuery, cmd = m.genreQuery.Update(msg)
		if m.genreQuery.Value() != before {
			m.refreshMatches()
		}
	case focusYear:
		m.year, cmd = m.year.Update(msg)
	case focusRating:
		m.rating, cmd = m.rating.Update(msg)
	}
	return m, cmd, nil
}

func (m FilterModal) selection() FilterSelection {
	sel := FilterSelection{
		Year:      strings.TrimSpace(m.year.Value()),
		MinRating: strings.TrimSpace(m.rating.Value()),
	}
	if m.selected != nil {
		sel.Genre = strconv.Itoa(*m.selected)
	}
	return sel
}

func (m FilterModal) genreName(id int) string {
	for _, g := range m.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// View renders the filter modal
func (m FilterModal) View(st styles.Styles) string {
	if !m.visible {
		return ""
	}

	const width = 34

	for _, ti := range []*textinput.Model{&m.genreQuery, &m.year, &m.rating} {
		ti.PromptStyle = st.Dim
		ti.TextStyle = st.Subtitle
		ti.PlaceholderStyle = st.Dim
	}
	switch m.focus {
	case focusGenre:
		m.genreQuery.PromptStyle = st.Accent.Bold(true)
	case focusYear:
		m.year.PromptStyle = st.Accent.Bold(true)
	case focusRating:
		m.rating.PromptStyle = st.Accent.Bold(true)
	}

	chosen := st.Dim.Render("any genre")
	if m.selected != nil {
		chosen = st.Badge.Render(m.genreName(*m.selected))
	}

	lines := []string{m.genreQuery.View(), chosen}

	if len(m.genres) == 0 {
		lines = append(lines, st.Dim.Render("genres unavailable"))
	} else {
		start := 0
		if m.cursor >= genreRows {
			start = m.cursor - genreRows + 1
		}
		end := min(start+genreRows, len(m.matches))
		for i := start; i < end; i++ {
			g := m.genres[m.matches[i]]
			prefix := "  "
			if m.selected != nil && *m.selected == g.ID {
				prefix = "✓ "
			}
			text := styles.Pad(prefix+g.Name, width)
			if m.focus == focusGenre && i == m.cursor {
				lines = append(lines, st.SelectedItem.Render(text))
			} else {
				lines = append(lines, st.NormalItem.Render(text))
			}
		}
		if len(m.matches) == 0 {
			lines = append(lines, st.Dim.Render("no matching genre"))
		}
	}

	lines = append(lines, "", m.year.View(), m.rating.View(), "",
		st.Dim.Render("tab next · space pick · enter apply · esc cancel"))

	return st.Modal.Render(
		st.ModalTitle.Render("Filters") + "\n" +
			lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n")),
	)
}
