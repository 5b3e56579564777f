package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/app"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// ViewMode is the page shown in the main area
type ViewMode int

const (
	ViewBrowse ViewMode = iota
	ViewFavorites
	ViewDetail
)

// Layout
const (
	HeaderHeight = 4 // title line + search bar
	ChromeHeight = 1 // footer
	tickInterval = 100 * time.Millisecond

	statusTimeout = 3 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Mode  ViewMode
	Ready bool

	App      *app.State
	Launcher TrailerLauncher
	logger   *slog.Logger

	// UI Components
	SearchBar   components.SearchInput
	FilterModal components.FilterModal
	List        components.MovieList // browse results
	FavList     components.MovieList
	FavFilter   textinput.Model
	Detail      components.DetailView

	// Data
	Genres []domain.Genre

	// Dimensions
	Width  int
	Height int

	// UI state
	styles       styles.Styles
	prevMode     ViewMode // returned to when leaving the detail page
	StatusMsg    string
	StatusIsErr  bool
	statusID     int // bumped per message so stale clear timers are ignored
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(state *app.State, launcher TrailerLauncher, castSize int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ff := textinput.New()
	ff.Placeholder = "filter favorites..."
	ff.Prompt = "/ "

	searchBar := components.NewSearchInput()
	searchBar.SetValue(state.Search.LastSearched())

	return Model{
		State:       StateBrowsing,
		Mode:        ViewBrowse,
		App:         state,
		Launcher:    launcher,
		logger:      logger,
		SearchBar:   searchBar,
		FilterModal: components.NewFilterModal(),
		List:        components.NewMovieList(),
		FavList:     components.NewMovieList(),
		FavFilter:   ff,
		Detail:      components.NewDetailView(castSize),
		styles:      styles.New(state.Theme.DarkMode()),
	}
}

// Init loads trending movies and genres
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		RunFetchCmd(m.App.Search, m.App.Search.LoadTrending()),
		LoadGenresCmd(m.App.Catalog),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()

	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKeyMsg(msg)
		m = next.(Model)

	case TickMsg:
		m.SpinnerFrame++
		cmd = TickCmd(tickInterval)

	case FetchDoneMsg:
		cmd = m.completeFetch(msg.Result)

	case DetailsLoadedMsg:
		m.Detail.SetDetail(msg.Detail)

	case DetailsFailedMsg:
		if s := m.Detail.Summary(); s != nil && s.ID == msg.ID {
			m.Detail.SetError(msg.Err)
		}

	case GenresLoadedMsg:
		if len(msg.Genres) > 0 {
			m.Genres = msg.Genres
			m.FilterModal.SetGenres(msg.Genres)
		}

	case TrailerLaunchedMsg:
		cmd = m.setStatus("Playing trailer: "+msg.Title, false)

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		cmd = m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}

	default:
		// cursor blink and other component messages
		if m.SearchBar.IsActive() {
			m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		} else if m.FilterModal.IsVisible() {
			m.FilterModal, cmd, _ = m.FilterModal.Update(msg)
		} else if m.FavFilter.Focused() {
			m.FavFilter, cmd = m.FavFilter.Update(msg)
		}
	}

	m.refreshDetail()
	return m, cmd
}

// completeFetch hands a finished fetch to the controller and refreshes the list
func (m *Model) completeFetch(res search.Result) tea.Cmd {
	if !m.App.Search.Complete(res) {
		return nil
	}

	// Trending landing behind an active query changes nothing on screen
	if res.Fetch.Kind == search.FetchTrending && m.App.Search.Query() != "" {
		return nil
	}

	m.List.SetItems(m.App.Search.Visible())
	if res.Fetch.Kind != search.FetchMore {
		m.List.Reset()
	}

	if !res.OK {
		return m.setStatus("Couldn't reach TMDB. Try again.", true)
	}
	if res.Fetch.Kind == search.FetchMore {
		return m.setStatus(fmt.Sprintf("Loaded page %d", res.Fetch.Page), false)
	}
	return nil
}

// issue starts a controller fetch and syncs the list with the controller's
// immediate state change
func (m *Model) issue(f *search.Fetch) tea.Cmd {
	m.List.SetItems(m.App.Search.Visible())
	if f == nil || f.Kind != search.FetchMore {
		m.List.Reset()
	}
	return RunFetchCmd(m.App.Search, f)
}

// openDetail shows a movie and starts loading its details
func (m *Model) openDetail(movie *domain.MovieSummary) tea.Cmd {
	if movie == nil {
		return nil
	}
	if m.Mode != ViewDetail {
		m.prevMode = m.Mode
	}
	m.Mode = ViewDetail
	m.Detail.Open(*movie)
	return LoadDetailsCmd(m.App.Catalog, movie.ID)
}

// toggleFavorite flips a movie's favorite status and reports it
func (m *Model) toggleFavorite(movie *domain.MovieSummary) tea.Cmd {
	if movie == nil {
		return nil
	}
	if m.App.Favorites.Toggle(*movie) {
		m.refreshFavorites()
		return m.setStatus(styles.StarChar+" Added "+movie.Title, false)
	}
	m.refreshFavorites()
	return m.setStatus("Removed "+movie.Title, false)
}

// refreshFavorites re-runs the favorites filter
func (m *Model) refreshFavorites() {
	m.FavList.SetItems(m.App.Favorites.Filter(m.FavFilter.Value()))
}

// refreshDetail re-renders the detail page for the current theme and favorite state
func (m *Model) refreshDetail() {
	if m.Mode != ViewDetail {
		return
	}
	fav := false
	if s := m.Detail.Summary(); s != nil {
		fav = m.App.Favorites.IsFavorite(s.ID)
	}
	m.Detail.Refresh(m.styles, fav, m.App.Catalog.GenreName, m.App.Catalog.PosterURL)
}

// playTrailer launches the open movie's trailer
func (m *Model) playTrailer() tea.Cmd {
	detail := m.Detail.Detail()
	if detail == nil {
		return m.setStatus("Details still loading", true)
	}
	if detail.TrailerURL() == "" {
		return m.setStatus("No trailer available", true)
	}
	if m.Launcher == nil {
		return m.setStatus("No player configured", true)
	}
	return PlayTrailerCmd(m.Launcher, detail)
}

// applyFilterSelection pushes the modal's values into the controller
func (m *Model) applyFilterSelection(sel components.FilterSelection) tea.Cmd {
	ctrl := m.App.Search
	if err := ctrl.SetFilters(sel.Genre, sel.Year, sel.MinRating); err != nil {
		return m.setStatus(err.Error(), true)
	}

	cmd := m.issue(ctrl.ApplyFilters())
	if ctrl.Filtered() {
		return tea.Batch(cmd, m.setStatus("Filters: "+m.filterSummary(), false))
	}
	return tea.Batch(cmd, m.setStatus("Filters cleared", false))
}

// setStatus shows a footer message that clears itself
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	m.statusID++
	return ClearStatusCmd(statusTimeout, m.statusID)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	contentHeight := max(m.Height-HeaderHeight-ChromeHeight, 1)
	m.List.SetHeight(contentHeight)
	m.FavList.SetHeight(contentHeight - 1) // filter line
	m.Detail.SetSize(m.Width, contentHeight)
}
