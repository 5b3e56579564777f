package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch msg.String() {
		case "y", "Y":
			m.App.Session.Logout()
			return m, tea.Quit
		case "n", "N", "esc":
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active input if any
	if handled, newModel, cmd := m.routeToInput(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.ToggleTheme):
		dark := m.App.Theme.ToggleDarkMode()
		m.styles = styles.New(dark)
		if dark {
			return m, m.setStatus("Dark theme", false)
		}
		return m, m.setStatus("Light theme", false)

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil
	}

	switch m.Mode {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

// routeToInput sends keys to a focused text input or modal
func (m Model) routeToInput(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.SearchBar.IsActive() {
		var cmd tea.Cmd
		var submitted bool
		m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
		if !submitted {
			return true, m, cmd
		}
		f := m.App.Search.SubmitQuery(m.SearchBar.Value())
		if f == nil {
			return true, m, m.setStatus("Type a title to search", true)
		}
		return true, m, m.issue(f)
	}

	if m.FilterModal.IsVisible() {
		var cmd tea.Cmd
		var sel *components.FilterSelection
		m.FilterModal, cmd, sel = m.FilterModal.Update(msg)
		if sel == nil {
			return true, m, cmd
		}
		return true, m, m.applyFilterSelection(*sel)
	}

	if m.Mode == ViewFavorites && m.FavFilter.Focused() {
		switch msg.String() {
		case "esc":
			m.FavFilter.SetValue("")
			m.FavFilter.Blur()
			m.refreshFavorites()
			return true, m, nil
		case "enter", "down", "up":
			m.FavFilter.Blur()
			return true, m, nil
		}
		var cmd tea.Cmd
		m.FavFilter, cmd = m.FavFilter.Update(msg)
		m.refreshFavorites()
		m.FavList.Reset()
		return true, m, cmd
	}

	return false, m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.App.Search

	switch {
	case key.Matches(msg, Keys.Search):
		value := m.SearchBar.Value()
		if value == "" {
			value = ctrl.LastSearched()
		}
		return m, m.SearchBar.Activate(value)

	case key.Matches(msg, Keys.Filters):
		cmd := m.FilterModal.Show(m.Genres, ctrl.Filters())
		if len(m.Genres) == 0 {
			cmd = tea.Batch(cmd, LoadGenresCmd(m.App.Catalog))
		}
		return m, cmd

	case key.Matches(msg, Keys.ResetFilters):
		if !ctrl.Filtered() && ctrl.Filters().IsZero() {
			return m, nil
		}
		cmd := m.issue(ctrl.ResetFilters())
		return m, tea.Batch(cmd, m.setStatus("Filters cleared", false))

	case key.Matches(msg, Keys.LoadMore):
		f := ctrl.LoadMore()
		if f == nil {
			if ctrl.Loading() {
				return m, nil
			}
			return m, m.setStatus("No more results", false)
		}
		return m, m.issue(f)

	case key.Matches(msg, Keys.Enter):
		return m, m.openDetail(m.List.Selected())

	case key.Matches(msg, Keys.ToggleFavorite):
		return m, m.toggleFavorite(m.List.Selected())

	case key.Matches(msg, Keys.Favorites):
		m.Mode = ViewFavorites
		m.refreshFavorites()
		m.FavList.Reset()
		return m, nil

	case key.Matches(msg, Keys.Back):
		if ctrl.Query() != "" {
			ctrl.ClearQuery()
			m.SearchBar.SetValue("")
			m.List.SetItems(ctrl.Visible())
			m.List.Reset()
		}
		return m, nil
	}

	m.List.HandleKey(msg)
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		return m, m.FavFilter.Focus()

	case key.Matches(msg, Keys.Enter):
		return m, m.openDetail(m.FavList.Selected())

	case key.Matches(msg, Keys.ToggleFavorite):
		return m, m.toggleFavorite(m.FavList.Selected())

	case key.Matches(msg, Keys.Back):
		if m.FavFilter.Value() != "" {
			m.FavFilter.SetValue("")
			m.refreshFavorites()
			return m, nil
		}
		m.Mode = ViewBrowse
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		m.Mode = ViewBrowse
		return m, nil
	}

	m.FavList.HandleKey(msg)
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Mode = m.prevMode
		return m, nil

	case key.Matches(msg, Keys.ToggleFavorite):
		return m, m.toggleFavorite(m.Detail.Summary())

	case key.Matches(msg, Keys.PlayTrailer):
		return m, m.playTrailer()

	case key.Matches(msg, Keys.Favorites):
		m.Mode = ViewFavorites
		m.refreshFavorites()
		return m, nil
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}
