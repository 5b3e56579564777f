package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	st := m.styles

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	}

	contentHeight := max(m.Height-HeaderHeight-ChromeHeight, 1)

	var content string
	switch m.Mode {
	case ViewDetail:
		content = m.Detail.View()
	case ViewFavorites:
		content = m.renderFavorites()
	default:
		content = m.renderBrowse()
	}
	content = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	// Overlay filter modal if visible
	if m.FilterModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.FilterModal.View(st))
	}

	return st.App.Width(m.Width).Height(m.Height).Render(view)
}

// renderHeader renders the title line and search bar
func (m Model) renderHeader() string {
	st := m.styles

	title := st.Title.Render("marquee")
	switch m.Mode {
	case ViewFavorites:
		title += st.Dim.Render(fmt.Sprintf("  favorites (%d)", m.App.Favorites.Len()))
	case ViewDetail:
		title += st.Dim.Render("  details")
	default:
		title += "  " + m.renderBrowseContext()
	}

	user := ""
	if u := m.App.Session.User(); u != nil {
		user = st.Dim.Render(u.Username)
	}
	gap := max(m.Width-lipgloss.Width(title)-lipgloss.Width(user), 1)
	line := title + strings.Repeat(" ", gap) + user

	return line + "\n" + m.SearchBar.View(st, m.Width)
}

// renderBrowseContext describes what the browse list is showing
func (m Model) renderBrowseContext() string {
	st := m.styles
	ctrl := m.App.Search
	state := ctrl.State()

	var parts []string
	switch ctrl.Phase() {
	case search.PhaseIdle:
		parts = append(parts, st.Accent.Render("Trending this week"))
	case search.PhaseLoading:
		if state.Query == "" {
			parts = append(parts, st.Accent.Render("Trending this week"))
		} else {
			parts = append(parts, st.Accent.Render(fmt.Sprintf("%q", state.Query)))
		}
	default:
		parts = append(parts, st.Accent.Render(fmt.Sprintf("%q", state.Query)))
		if state.TotalPages > 0 {
			parts = append(parts, st.Dim.Render(fmt.Sprintf("page %d/%d", state.CurrentPage, state.TotalPages)))
		}
	}

	if ctrl.Filtered() {
		parts = append(parts, st.Badge.Render(m.filterSummary()))
	}
	return strings.Join(parts, " ")
}

// filterSummary names the effective filters, using genre names when known
func (m Model) filterSummary() string {
	f := m.App.Search.Applied()
	var parts []string
	if f.Genre != nil {
		name := m.App.Catalog.GenreName(*f.Genre)
		if name == "" {
			name = fmt.Sprintf("genre %d", *f.Genre)
		}
		parts = append(parts, name)
	}
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *f.Year))
	}
	if f.MinRating != nil {
		parts = append(parts, fmt.Sprintf("≥%g", *f.MinRating))
	}
	return strings.Join(parts, " · ")
}

func (m Model) listDecor() components.ListDecor {
	return components.ListDecor{
		IsFavorite: m.App.Favorites.IsFavorite,
		GenreName:  m.App.Catalog.GenreName,
	}
}

// renderBrowse renders trending or search results
func (m Model) renderBrowse() string {
	st := m.styles
	ctrl := m.App.Search

	if m.List.Len() == 0 {
		switch {
		case ctrl.Loading():
			return m.renderSpinner() + " " + st.Dim.Render("Loading...")
		case ctrl.Failed():
			return st.Error.Render("Couldn't load movies. Press / to search again.")
		case ctrl.Query() != "":
			return st.Dim.Render("No movies found")
		}
	}

	list := m.List.View(st, m.Width, m.listDecor(), "No movies to show")
	if ctrl.CanLoadMore() && m.List.AtEnd() {
		list += "\n" + st.HelpKey.Render("m") + st.HelpDesc.Render(" load more")
	}
	return list
}

// renderFavorites renders the favorites page
func (m Model) renderFavorites() string {
	st := m.styles

	ff := m.FavFilter
	ff.PromptStyle = st.Accent.Bold(true)
	ff.TextStyle = st.Subtitle
	ff.PlaceholderStyle = st.Dim

	empty := "No favorites yet. Press space on a movie to add it."
	if m.FavFilter.Value() != "" {
		empty = "No matches"
	}
	return ff.View() + "\n" + m.FavList.View(st, m.Width, m.listDecor(), empty)
}

// renderSpinner renders the current spinner frame
func (m Model) renderSpinner() string {
	return m.styles.Accent.Render(styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)])
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	st := m.styles

	// Left side: spinner while loading, otherwise status message
	var left string
	if m.App.Search.Loading() {
		left = m.renderSpinner() + " " + st.Dim.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = st.Error.Render(m.StatusMsg)
		} else {
			left = st.Dim.Render(m.StatusMsg)
		}
	}

	// Center: hints for the current page
	var hints [][2]string
	switch m.Mode {
	case ViewDetail:
		hints = [][2]string{{"space", "favorite"}, {"p", "trailer"}, {"esc", "back"}}
	case ViewFavorites:
		hints = [][2]string{{"/", "filter"}, {"enter", "details"}, {"space", "remove"}, {"esc", "back"}}
	default:
		hints = [][2]string{{"/", "search"}, {"f", "filters"}, {"space", "favorite"}, {"F", "favorites"}}
	}
	var center []string
	for _, h := range hints {
		center = append(center, st.HelpKey.Render(h[0])+st.HelpDesc.Render(" "+h[1]))
	}
	centerText := strings.Join(center, "  ")

	// Right side: "? help" hint
	right := st.HelpKey.Render("?") + st.HelpDesc.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(centerText)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + centerText + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          DETAILS
  j/k        Up/down               Enter  Open details
  g/G        First/last item       p      Play trailer
  Ctrl+u/d   Scroll half page      Space  Toggle favorite
  /          Search                Esc    Back
  f          Filters
  R          Reset filters      OTHER
  m          Load more             F      Favorites
  Esc        Back to trending      t      Toggle theme
                                   L      Logout
                                   q      Quit
                                   ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Render(help))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
          Log Out?

  Your favorites stay saved.
  You'll be asked for a name
  next time marquee starts.

      [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Render(modal))
}
