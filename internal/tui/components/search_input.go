package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchInput is the one-line search bar shown above the movie list
type SearchInput struct {
	active bool
	input  textinput.Model
}

// NewSearchInput creates a new search bar
func NewSearchInput() SearchInput {
	ti := textinput.New()
	ti.Placeholder = "search movies..."
	ti.CharLimit = 100
	ti.Prompt = "/ "

	return SearchInput{input: ti}
}

// Activate focuses the bar, prefilled with value
func (s *SearchInput) Activate(value string) tea.Cmd {
	s.active = true
	s.input.SetValue(value)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Deactivate blurs the bar, keeping its text
func (s *SearchInput) Deactivate() {
	s.active = false
	s.input.Blur()
}

// IsActive returns whether the bar has focus
func (s SearchInput) IsActive() bool {
	return s.active
}

// Value returns the current text
func (s SearchInput) Value() string {
	return s.input.Value()
}

// SetValue replaces the text without focusing
func (s *SearchInput) SetValue(v string) {
	s.input.SetValue(v)
}

// Update handles input events, returns (input, cmd, submitted)
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd, bool) {
	if !s.active {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			s.Deactivate()
			return s, nil, true
		case "esc":
			s.Deactivate()
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the search bar
func (s SearchInput) View(st styles.Styles, width int) string {
	s.input.PromptStyle = st.Accent.Bold(true)
	s.input.TextStyle = st.Subtitle
	s.input.PlaceholderStyle = st.Dim
	s.input.Width = max(width-4, 10)

	border := st.Palette.Muted
	if s.active {
		border = st.Palette.Accent
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 12)).
		Render(s.input.View())
}
