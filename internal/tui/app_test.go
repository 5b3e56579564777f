package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/app"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog serves numbered results for any query
type stubCatalog struct {
	trending []domain.MovieSummary
}

func (c *stubCatalog) Trending(context.Context) ([]domain.MovieSummary, error) {
	return c.trending, nil
}

func (c *stubCatalog) Search(_ context.Context, q string, page int, _ domain.FilterSet) (domain.SearchPage, error) {
	results := make([]domain.MovieSummary, 3)
	for i := range results {
		results[i] = domain.MovieSummary{ID: page*100 + i, Title: fmt.Sprintf("%s %d-%d", q, page, i)}
	}
	return domain.SearchPage{Page: page, TotalPages: 2, TotalResults: 6, Results: results}, nil
}

func (c *stubCatalog) Details(_ context.Context, id int) (*domain.MovieDetail, error) {
	key := "abc123"
	poster := "/detail.jpg"
	return &domain.MovieDetail{ID: id, Title: "Detail", TrailerKey: &key, PosterPath: &poster}, nil
}

func (c *stubCatalog) PosterURL(path *string, size string) string {
	if path == nil {
		return ""
	}
	return "https://img.test/" + size + *path
}

func (c *stubCatalog) Genres(context.Context) ([]domain.Genre, error) {
	return []domain.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, nil
}

type recordingLauncher struct {
	urls []string
}

func (l *recordingLauncher) Launch(url string) error {
	l.urls = append(l.urls, url)
	return nil
}

func newTestModel(t *testing.T) (Model, *recordingLauncher) {
	t.Helper()
	kv, err := store.Open("")
	require.NoError(t, err)

	cat := &stubCatalog{trending: []domain.MovieSummary{
		{ID: 1, Title: "Inception"},
		{ID: 2, Title: "Heat"},
	}}
	state := app.NewState(cat, kv, false, adapter.NullLogger())
	launcher := &recordingLauncher{}

	m := NewModel(state, launcher, 6, adapter.NullLogger())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), launcher
}

// send applies msgs in order and returns the resulting model and last command
func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func loadTrending(t *testing.T, m Model) Model {
	t.Helper()
	ctrl := m.App.Search
	res := ctrl.Run(context.Background(), *ctrl.LoadTrending())
	m, _ = send(m, FetchDoneMsg{Result: res})
	return m
}

func TestModel_TrendingLoads(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)

	assert.Equal(t, 2, m.List.Len())
	assert.Contains(t, m.View(), "Inception")
}

func TestModel_SearchFromKeyboard(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)

	m, _ = send(m, runes("/"))
	require.True(t, m.SearchBar.IsActive())

	m, cmd := send(m, runes("b"), runes("a"), runes("t"), enterKey)
	require.NotNil(t, cmd)
	assert.False(t, m.SearchBar.IsActive())
	assert.Equal(t, "bat", m.App.Search.Query())
	assert.True(t, m.App.Search.Loading())

	msg := cmd()
	m, _ = send(m, msg)
	assert.Equal(t, 3, m.List.Len())
	assert.Equal(t, "bat 1-0", m.List.Selected().Title)

	// load more appends and keeps the cursor
	m, _ = send(m, runes("j"))
	m, cmd = send(m, runes("m"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Equal(t, 6, m.List.Len())
	assert.Equal(t, 1, m.List.Cursor())

	// esc goes back to trending
	m, _ = send(m, escKey)
	assert.Equal(t, "", m.App.Search.Query())
	assert.Equal(t, 2, m.List.Len())
}

func TestModel_StaleSearchResultIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	ctrl := m.App.Search
	ctx := context.Background()

	first := *ctrl.SubmitQuery("bat")
	second := *ctrl.SubmitQuery("batman")

	m, _ = send(m,
		FetchDoneMsg{Result: ctrl.Run(ctx, second)},
		FetchDoneMsg{Result: ctrl.Run(ctx, first)},
	)

	require.Equal(t, 3, m.List.Len())
	assert.Equal(t, "batman 1-0", m.List.Selected().Title)
}

func TestModel_ToggleFavoriteAndFavoritesView(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)

	m, _ = send(m, spaceKey)
	assert.True(t, m.App.Favorites.IsFavorite(1))

	m, _ = send(m, runes("F"))
	assert.Equal(t, ViewFavorites, m.Mode)
	assert.Equal(t, 1, m.FavList.Len())

	// filter favorites
	m, _ = send(m, runes("/"), runes("z"), runes("z"))
	assert.Equal(t, 0, m.FavList.Len())
	m, _ = send(m, escKey)
	assert.Equal(t, 1, m.FavList.Len())

	// space removes from the favorites page
	m, _ = send(m, spaceKey)
	assert.False(t, m.App.Favorites.IsFavorite(1))
	assert.Equal(t, 0, m.FavList.Len())

	m, _ = send(m, escKey)
	assert.Equal(t, ViewBrowse, m.Mode)
}

func TestModel_DetailAndTrailer(t *testing.T) {
	m, launcher := newTestModel(t)
	m = loadTrending(t, m)

	m, cmd := send(m, enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, ViewDetail, m.Mode)

	// trailer before details arrive
	m, _ = send(m, runes("p"))
	assert.True(t, m.StatusIsErr)

	// details for another movie are ignored
	m, _ = send(m, DetailsLoadedMsg{Detail: &domain.MovieDetail{ID: 99, Title: "Other"}})
	assert.Nil(t, m.Detail.Detail())

	m, _ = send(m, cmd())
	require.NotNil(t, m.Detail.Detail())
	assert.Equal(t, 1, m.Detail.Detail().ID)
	assert.Contains(t, m.Detail.View(), "https://img.test/w500/detail.jpg")

	m, cmd = send(m, runes("p"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abc123"}, launcher.urls)
	assert.Contains(t, m.StatusMsg, "Playing trailer")

	m, _ = send(m, escKey)
	assert.Equal(t, ViewBrowse, m.Mode)
}

func TestModel_DetailsFailed(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)

	m, _ = send(m, enterKey, DetailsFailedMsg{ID: 1, Err: domain.ErrNotFound})
	assert.Contains(t, m.Detail.View(), "Details unavailable")
}

func TestModel_FiltersApplyToTrending(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)
	m, _ = send(m, GenresLoadedMsg{Genres: []domain.Genre{{ID: 28, Name: "Action"}}})

	m, _ = send(m, runes("f"))
	require.True(t, m.FilterModal.IsVisible())

	// jump to the rating field and require 9+
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, runes("9"), enterKey)
	assert.False(t, m.FilterModal.IsVisible())
	assert.True(t, m.App.Search.Filtered())
	assert.Equal(t, 0, m.List.Len(), "trending movies have no rating")

	m, _ = send(m, runes("R"))
	assert.False(t, m.App.Search.Filtered())
	assert.Equal(t, 2, m.List.Len())
}

func TestModel_ToggleTheme(t *testing.T) {
	m, _ := newTestModel(t)
	require.False(t, m.App.Theme.DarkMode())

	m, _ = send(m, runes("t"))
	assert.True(t, m.App.Theme.DarkMode())
	assert.Equal(t, "#1A1A2E", string(m.styles.Palette.Background))
}

func TestModel_LogoutConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	require.True(t, m.App.Session.Login("ada"))

	m, _ = send(m, runes("L"))
	assert.Equal(t, StateConfirmLogout, m.State)

	m, _ = send(m, runes("n"))
	assert.Equal(t, StateBrowsing, m.State)
	assert.True(t, m.App.Session.Authenticated())

	_, cmd := send(m, runes("L"), runes("y"))
	require.NotNil(t, cmd)
	assert.False(t, m.App.Session.Authenticated())
}

func TestModel_InvalidFilterSelectionAppliesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)

	m, _ = send(m, runes("/"), runes("h"), runes("e"), runes("a"), runes("t"), enterKey)
	require.Equal(t, "heat", m.App.Search.Query())

	// valid genre, bad year
	m.applyFilterSelection(components.FilterSelection{Genre: "28", Year: "abc"})
	assert.True(t, m.StatusIsErr)
	assert.True(t, m.App.Search.Filters().IsZero())

	m, _ = send(m, escKey)
	require.Empty(t, m.App.Search.Query())
	assert.False(t, m.App.Search.Filtered())
	assert.Equal(t, 2, m.List.Len())
}

func TestModel_FilterSummaryShowsAppliedFilters(t *testing.T) {
	m, _ := newTestModel(t)
	m = loadTrending(t, m)
	m, _ = send(m, GenresLoadedMsg{Genres: []domain.Genre{{ID: 28, Name: "Action"}}})

	m.applyFilterSelection(components.FilterSelection{Genre: "28"})
	require.True(t, m.App.Search.Filtered())

	// edited but not applied
	require.NoError(t, m.App.Search.SetFilters("", "1999", ""))
	assert.Equal(t, "Action", m.filterSummary())
}

func TestModel_StaleStatusClearIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	first := m.setStatus("first", false)
	second := m.setStatus("second", false)
	require.NotNil(t, first)
	require.NotNil(t, second)

	m, _ = send(m, ClearStatusMsg{ID: m.statusID - 1})
	assert.Equal(t, "second", m.StatusMsg)

	m, _ = send(m, ClearStatusMsg{ID: m.statusID})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_TrendingDuringSearchKeepsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	ctrl := m.App.Search
	trending := ctrl.LoadTrending()

	m, cmd := send(m, runes("/"), runes("b"), runes("a"), runes("t"), enterKey)
	m, _ = send(m, cmd())
	require.Equal(t, 3, m.List.Len())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.List.Cursor())

	m, _ = send(m, FetchDoneMsg{Result: ctrl.Run(context.Background(), *trending)})
	assert.Equal(t, 2, m.List.Cursor())
	assert.Equal(t, 3, m.List.Len())
	assert.Len(t, ctrl.Trending(), 2)
}
