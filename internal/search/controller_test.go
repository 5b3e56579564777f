package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageSize = 20

// fakeCatalog serves canned pages and records calls
type fakeCatalog struct {
	trending    []domain.MovieSummary
	totalPages  map[string]int
	failPages   map[int]bool
	searchCalls []string
}

func (f *fakeCatalog) Trending(ctx context.Context) []domain.MovieSummary {
	return f.trending
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int, filters domain.FilterSet) (domain.SearchPage, bool) {
	f.searchCalls = append(f.searchCalls, fmt.Sprintf("%s#%d", query, page))
	if f.failPages[page] {
		return domain.SearchPage{Results: []domain.MovieSummary{}}, false
	}
	total := f.totalPages[query]
	results := make([]domain.MovieSummary, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		results = append(results, domain.MovieSummary{ID: page*1000 + i, Title: fmt.Sprintf("%s %d-%d", query, page, i)})
	}
	return domain.SearchPage{Page: page, TotalPages: total, Results: results}, true
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func trendingFixture() []domain.MovieSummary {
	return []domain.MovieSummary{
		{ID: 550, Title: "Fight Club", ReleaseDate: strPtr("1999-10-15"), VoteAverage: floatPtr(8.4), GenreIDs: []int{18}},
		{ID: 129, Title: "Spirited Away", ReleaseDate: strPtr("2001-03-01"), VoteAverage: floatPtr(8.5), GenreIDs: []int{16, 10751}},
		{ID: 603, Title: "The Matrix", ReleaseDate: strPtr("1999-03-30"), VoteAverage: floatPtr(8.2), GenreIDs: []int{28, 878}},
		{ID: 9999, Title: "Unreleased"},
	}
}

func newController(t *testing.T, cat *fakeCatalog) *Controller {
	t.Helper()
	c := NewController(cat, nil, nil)
	require.True(t, c.Do(context.Background(), c.LoadTrending()))
	return c
}

func TestController_BatmanLoadMore(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"batman": 5}}
	c := newController(t, cat)

	require.True(t, c.Do(ctx, c.SubmitQuery("batman")))
	st := c.State()
	assert.LessOrEqual(t, len(st.Results), pageSize)
	assert.GreaterOrEqual(t, st.TotalPages, 1)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, PhasePaginated, c.Phase())
	page1 := len(st.Results)

	require.True(t, c.Do(ctx, c.LoadMore()))
	st = c.State()
	assert.Equal(t, 2, st.CurrentPage)
	assert.Len(t, st.Results, page1+pageSize)
	assert.Equal(t, 1000, st.Results[0].ID, "page one stays first")
	assert.Equal(t, 2000, st.Results[page1].ID, "page two appended")
}

func TestController_LoadMoreAtLastPageIsNoop(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"solaris": 1}}
	c := newController(t, cat)

	require.True(t, c.Do(ctx, c.SubmitQuery("solaris")))
	before := c.State()
	calls := len(cat.searchCalls)

	assert.False(t, c.CanLoadMore())
	assert.Nil(t, c.LoadMore())
	assert.Len(t, cat.searchCalls, calls, "no fetch issued")
	assert.Equal(t, before, c.State())
	assert.Equal(t, PhaseSearching, c.Phase())
}

func TestController_LoadMoreWithoutQueryIsNoop(t *testing.T) {
	c := newController(t, &fakeCatalog{trending: trendingFixture()})
	assert.Nil(t, c.LoadMore())
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestController_BlankQueryIgnored(t *testing.T) {
	cat := &fakeCatalog{trending: trendingFixture()}
	c := newController(t, cat)

	assert.Nil(t, c.SubmitQuery(""))
	assert.Nil(t, c.SubmitQuery("   \t"))
	assert.Empty(t, cat.searchCalls)
	assert.Equal(t, "", c.Query())
	assert.Len(t, c.Visible(), 4)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"alien": 2, "blade runner": 3}}
	c := newController(t, cat)

	fetchA := c.SubmitQuery("alien")
	fetchB := c.SubmitQuery("blade runner")

	// Network work for both runs concurrently from the controller's point of view
	resA := c.Run(ctx, *fetchA)
	resB := c.Run(ctx, *fetchB)

	require.True(t, c.Complete(resB))
	assert.False(t, c.Complete(resA), "response for superseded query must be dropped")

	st := c.State()
	assert.Equal(t, "blade runner", st.Query)
	assert.Equal(t, 3, st.TotalPages)
	require.NotEmpty(t, st.Results)
	assert.Contains(t, st.Results[0].Title, "blade runner")
	assert.False(t, c.Loading())
}

func TestController_StaleBeforeNewerArrives(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"alien": 2, "heat": 1}}
	c := newController(t, cat)

	fetchA := c.SubmitQuery("alien")
	fetchB := c.SubmitQuery("heat")

	assert.False(t, c.Complete(c.Run(ctx, *fetchA)))
	assert.True(t, c.Loading(), "still waiting for the newer query")
	assert.Empty(t, c.Visible())

	assert.True(t, c.Complete(c.Run(ctx, *fetchB)))
	assert.False(t, c.Loading())
}

func TestController_FailureKeepsResults(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"batman": 5}, failPages: map[int]bool{2: true}}
	c := newController(t, cat)

	require.True(t, c.Do(ctx, c.SubmitQuery("batman")))
	before := c.State()

	require.True(t, c.Do(ctx, c.LoadMore()))
	assert.True(t, c.Failed())
	assert.False(t, c.Loading(), "never stuck loading")
	assert.Equal(t, before, c.State(), "failed page leaves results and cursor unchanged")
	assert.True(t, c.CanLoadMore(), "page two can be retried")
}

func TestController_ApplyResetRestoresTrending(t *testing.T) {
	filterSets := []struct {
		field domain.FilterField
		value string
	}{
		{domain.FieldYear, "1999"},
		{domain.FieldGenre, "16"},
		{domain.FieldMinRating, "8.3"},
		{domain.FieldYear, "1800"},
	}

	for _, fs := range filterSets {
		t.Run(string(fs.field)+"="+fs.value, func(t *testing.T) {
			cat := &fakeCatalog{trending: trendingFixture()}
			c := newController(t, cat)
			original := c.Visible()

			require.NoError(t, c.SetFilter(fs.field, fs.value))
			assert.Nil(t, c.ApplyFilters(), "trending filters are client-side")
			assert.True(t, c.Filtered())
			assert.Equal(t, trendingFixture(), c.Trending(), "underlying list untouched")

			assert.Nil(t, c.ResetFilters())
			assert.Equal(t, original, c.Visible())
			assert.False(t, c.Filtered())
			assert.Empty(t, cat.searchCalls)
		})
	}
}

func TestController_YearFilterOnTrending(t *testing.T) {
	c := newController(t, &fakeCatalog{trending: trendingFixture()[:2]})

	require.NoError(t, c.SetFilter(domain.FieldYear, "1999"))
	assert.Len(t, c.Visible(), 2, "SetFilter alone does not filter")

	c.ApplyFilters()
	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, 550, visible[0].ID)
}

func TestController_ApplyFiltersWithQueryResubmits(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{totalPages: map[string]int{"batman": 5}}
	c := newController(t, cat)

	require.True(t, c.Do(ctx, c.SubmitQuery("batman")))
	require.True(t, c.Do(ctx, c.LoadMore()))

	require.NoError(t, c.SetFilter(domain.FieldYear, "1989"))
	f := c.ApplyFilters()
	require.NotNil(t, f)
	assert.Equal(t, FetchQuery, f.Kind)
	assert.Equal(t, 1, f.Page)
	require.NotNil(t, f.Filters.Year)
	assert.Equal(t, 1989, *f.Filters.Year)
	assert.Empty(t, c.Visible(), "results reset on resubmit")

	c.Complete(c.Run(ctx, *f))
	// Fixture movies have no release date, so the client-side predicate drops them
	assert.Empty(t, c.Visible())
	assert.Equal(t, 1, c.State().CurrentPage)

	f = c.ResetFilters()
	require.NotNil(t, f)
	assert.True(t, f.Filters.IsZero())
	c.Complete(c.Run(ctx, *f))
	assert.Len(t, c.Visible(), pageSize)
}

func TestController_ClearQueryReturnsToTrending(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{trending: trendingFixture(), totalPages: map[string]int{"heat": 1}}
	c := newController(t, cat)

	f := c.SubmitQuery("heat")
	c.ClearQuery()
	assert.False(t, c.Complete(c.Run(ctx, *f)), "abandoned search is stale")
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Len(t, c.Visible(), 4)
}

func TestController_TrendingSurvivesConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{trending: trendingFixture(), totalPages: map[string]int{"heat": 1}}
	c := NewController(cat, nil, nil)

	trendingFetch := c.LoadTrending()
	searchFetch := c.SubmitQuery("heat")

	assert.True(t, c.Complete(c.Run(ctx, *searchFetch)))
	assert.True(t, c.Complete(c.Run(ctx, *trendingFetch)), "trending uses its own sequence")
	assert.Len(t, c.Trending(), 4)
}

func TestController_RemembersLastSearched(t *testing.T) {
	kv, err := store.Open("")
	require.NoError(t, err)

	c := NewController(&fakeCatalog{totalPages: map[string]int{}}, kv, nil)
	assert.Empty(t, c.LastSearched())

	c.SubmitQuery("  the thing ")
	assert.Equal(t, "the thing", c.LastSearched())
}

func TestController_SetFilterRejectsInvalid(t *testing.T) {
	c := NewController(&fakeCatalog{}, nil, nil)
	assert.Error(t, c.SetFilter(domain.FieldYear, "abc"))
	assert.True(t, c.Filters().IsZero())
}

func TestController_SetFiltersIsAllOrNothing(t *testing.T) {
	c := newController(t, &fakeCatalog{trending: trendingFixture()})

	err := c.SetFilters("18", "abc", "")
	require.Error(t, err)
	assert.True(t, c.Filters().IsZero(), "valid genre must not stick when year fails")

	c.ClearQuery()
	assert.False(t, c.Filtered())
	assert.Len(t, c.Visible(), 4)

	require.NoError(t, c.SetFilters("18", "1999", "8"))
	assert.Equal(t, "genre=18 year=1999 rating≥8", c.Filters().String())
	assert.False(t, c.Filtered(), "not applied yet")
}

func TestController_ClearQueryKeepsAppliedFilters(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{trending: trendingFixture(), totalPages: map[string]int{"heat": 1}}
	c := newController(t, cat)

	require.NoError(t, c.SetFilters("", "1999", ""))
	assert.Nil(t, c.ApplyFilters())
	require.Len(t, c.Visible(), 2)

	f := c.SubmitQuery("heat")
	c.Complete(c.Run(ctx, *f))

	// edited but never applied
	require.NoError(t, c.SetFilters("16", "", ""))

	c.ClearQuery()
	assert.True(t, c.Filtered())
	assert.Equal(t, "year=1999", c.Applied().String())
	assert.Len(t, c.Visible(), 2)
}
