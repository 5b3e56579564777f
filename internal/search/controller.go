package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Phase is the controller's externally visible state
type Phase int

const (
	PhaseIdle      Phase = iota // showing trending, no query
	PhaseSearching              // query active, single page of results
	PhasePaginated              // query active, more than one page exists
	PhaseLoading                // a fetch for the current view is in flight
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhasePaginated:
		return "paginated"
	case PhaseLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// FetchKind distinguishes what a Fetch loads
type FetchKind int

const (
	FetchTrending FetchKind = iota
	FetchQuery              // first page of a new query; replaces results
	FetchMore               // next page; appends to results
)

// Fetch describes one network request issued by the controller.
// It carries everything Run needs so it can execute off the UI goroutine.
type Fetch struct {
	Seq     uint64
	Kind    FetchKind
	Query   string
	Page    int
	Filters domain.FilterSet
}

// Result is the outcome of running a Fetch
type Result struct {
	Fetch    Fetch
	Page     domain.SearchPage
	Trending []domain.MovieSummary
	OK       bool
}

// Catalog is the subset of the catalog service the controller uses.
// Failures are reported as empty data, never as errors.
type Catalog interface {
	Trending(ctx context.Context) []domain.MovieSummary
	Search(ctx context.Context, query string, page int, filters domain.FilterSet) (domain.SearchPage, bool)
}

// State is a snapshot of the search state
type State struct {
	Query       string
	CurrentPage int
	TotalPages  int
	Results     []domain.MovieSummary
	Filters     domain.FilterSet
}

// Controller owns the query, filters, page cursor and result list.
//
// Commands (SubmitQuery, LoadMore, ApplyFilters, ResetFilters, LoadTrending)
// mutate state and return the Fetch to perform, or nil when nothing needs to
// be fetched. The caller runs the Fetch (possibly on another goroutine) with
// Run and hands the Result back to Complete, which drops it if a newer
// request has been issued since.
//
// Controller is not safe for concurrent use; only Run may be called off the
// owning goroutine.
type Controller struct {
	catalog Catalog
	history domain.KeyValueStore // optional; receives lastSearched
	logger  *slog.Logger

	query       string
	currentPage int
	totalPages  int
	results     []domain.MovieSummary

	filters domain.FilterSet // being edited
	applied domain.FilterSet // in effect for the visible list

	trending     []domain.MovieSummary // as fetched, never filtered in place
	trendingView []domain.MovieSummary // filtered projection, nil when unfiltered

	searchSeq       uint64
	trendingSeq     uint64
	searchPending   bool
	trendingPending bool
	failed          bool
}

// NewController creates a controller in the Idle state.
// history may be nil.
func NewController(catalog Catalog, history domain.KeyValueStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		catalog:     catalog,
		history:     history,
		logger:      logger,
		currentPage: 1,
		results:     []domain.MovieSummary{},
		trending:    []domain.MovieSummary{},
	}
}

// LoadTrending issues a trending list fetch
func (c *Controller) LoadTrending() *Fetch {
	c.trendingSeq++
	c.trendingPending = true
	return &Fetch{Seq: c.trendingSeq, Kind: FetchTrending}
}

// SubmitQuery starts a new search for q with the current filters.
// A blank query is ignored and returns nil.
func (c *Controller) SubmitQuery(q string) *Fetch {
	q = strings.TrimSpace(q)
	if q == "" {
		c.logger.Debug("ignoring blank query")
		return nil
	}

	c.searchSeq++
	c.query = q
	c.currentPage = 1
	c.totalPages = 0
	c.results = []domain.MovieSummary{}
	c.applied = c.filters
	c.searchPending = true
	c.failed = false

	c.rememberQuery(q)
	c.logger.Debug("search submitted", "query", q, "seq", c.searchSeq, "filters", c.applied.String())

	return &Fetch{Seq: c.searchSeq, Kind: FetchQuery, Query: q, Page: 1, Filters: c.applied}
}

// CanLoadMore reports whether LoadMore would issue a fetch
func (c *Controller) CanLoadMore() bool {
	return c.query != "" && !c.searchPending && c.currentPage < c.totalPages
}

// LoadMore requests the next page of the active query.
// Returns nil when there is no query, no further page, or a fetch is in flight.
func (c *Controller) LoadMore() *Fetch {
	if !c.CanLoadMore() {
		return nil
	}
	c.searchSeq++
	c.searchPending = true
	c.failed = false
	return &Fetch{Seq: c.searchSeq, Kind: FetchMore, Query: c.query, Page: c.currentPage + 1, Filters: c.applied}
}

// SetFilter updates one field of the filter set from its text form.
// It does not fetch; call ApplyFilters to take effect.
func (c *Controller) SetFilter(field domain.FilterField, value string) error {
	f, err := c.filters.With(field, value)
	if err != nil {
		return err
	}
	c.filters = f
	return nil
}

// SetFilters replaces the edited filter set from the text form of every
// field. Nothing changes unless all of them parse.
func (c *Controller) SetFilters(genre, year, rating string) error {
	var f domain.FilterSet
	var err error
	if f, err = f.With(domain.FieldGenre, genre); err != nil {
		return err
	}
	if f, err = f.With(domain.FieldYear, year); err != nil {
		return err
	}
	if f, err = f.With(domain.FieldMinRating, rating); err != nil {
		return err
	}
	c.filters = f
	return nil
}

// ApplyFilters makes the edited filter set effective.
// With an active query it re-runs the search from page one; otherwise it
// filters the trending list client-side without altering it and returns nil.
func (c *Controller) ApplyFilters() *Fetch {
	if c.query != "" {
		return c.SubmitQuery(c.query)
	}
	c.applied = c.filters
	c.refreshTrendingView()
	c.failed = false
	return nil
}

// ResetFilters clears all filters and restores the unfiltered view,
// re-issuing the active query if there is one.
func (c *Controller) ResetFilters() *Fetch {
	c.filters = domain.FilterSet{}
	if c.query != "" {
		return c.SubmitQuery(c.query)
	}
	c.applied = domain.FilterSet{}
	c.trendingView = nil
	c.failed = false
	return nil
}

// ClearQuery returns to the trending view, abandoning any in-flight search.
// The applied filters stay in effect; unapplied edits do not.
func (c *Controller) ClearQuery() {
	c.searchSeq++
	c.searchPending = false
	c.query = ""
	c.currentPage = 1
	c.totalPages = 0
	c.results = []domain.MovieSummary{}
	c.refreshTrendingView()
	c.failed = false
}

// Run performs the network work for f. It reads no controller state.
func (c *Controller) Run(ctx context.Context, f Fetch) Result {
	if f.Kind == FetchTrending {
		movies := c.catalog.Trending(ctx)
		return Result{Fetch: f, Trending: movies, OK: true}
	}
	page, ok := c.catalog.Search(ctx, f.Query, f.Page, f.Filters)
	return Result{Fetch: f, Page: page, OK: ok}
}

// Complete commits a result. It returns false if the result was stale
// (a newer request superseded it) and was discarded.
func (c *Controller) Complete(res Result) bool {
	f := res.Fetch

	if f.Kind == FetchTrending {
		if f.Seq != c.trendingSeq {
			c.logger.Debug("discarding stale trending result", "seq", f.Seq, "current", c.trendingSeq)
			return false
		}
		c.trendingPending = false
		c.trending = res.Trending
		if c.trending == nil {
			c.trending = []domain.MovieSummary{}
		}
		c.refreshTrendingView()
		return true
	}

	if f.Seq != c.searchSeq {
		c.logger.Debug("discarding stale search result", "query", f.Query, "page", f.Page, "seq", f.Seq, "current", c.searchSeq)
		return false
	}
	c.searchPending = false

	if !res.OK {
		// Keep whatever was shown before the attempt
		c.failed = true
		c.logger.Info("search fetch failed", "query", f.Query, "page", f.Page)
		return true
	}

	movies := res.Page.Results
	if !f.Filters.IsZero() {
		movies = f.Filters.Apply(movies)
	}

	switch f.Kind {
	case FetchQuery:
		c.results = append([]domain.MovieSummary{}, movies...)
		c.currentPage = 1
	case FetchMore:
		c.results = append(c.results, movies...)
		c.currentPage = f.Page
	}

	c.totalPages = res.Page.TotalPages
	if c.totalPages > 0 && c.currentPage > c.totalPages {
		c.totalPages = c.currentPage
	}
	c.failed = false
	return true
}

// Do runs f synchronously and commits the result
func (c *Controller) Do(ctx context.Context, f *Fetch) bool {
	if f == nil {
		return false
	}
	return c.Complete(c.Run(ctx, *f))
}

// Phase returns the current state machine phase
func (c *Controller) Phase() Phase {
	if c.query == "" {
		if c.trendingPending {
			return PhaseLoading
		}
		return PhaseIdle
	}
	if c.searchPending {
		return PhaseLoading
	}
	if c.totalPages > 1 {
		return PhasePaginated
	}
	return PhaseSearching
}

// Loading reports whether the current view is waiting on a fetch
func (c *Controller) Loading() bool {
	return c.Phase() == PhaseLoading
}

// Failed reports whether the last search fetch failed
func (c *Controller) Failed() bool {
	return c.failed
}

// Query returns the active query ("" when showing trending)
func (c *Controller) Query() string {
	return c.query
}

// Filters returns the filter set being edited
func (c *Controller) Filters() domain.FilterSet {
	return c.filters
}

// Applied returns the filter set in effect for the visible list
func (c *Controller) Applied() domain.FilterSet {
	return c.applied
}

// Filtered reports whether a non-empty filter set is in effect for the visible list
func (c *Controller) Filtered() bool {
	return !c.applied.IsZero()
}

// Visible returns the list the presentation layer should render:
// search results when a query is active, otherwise the (possibly filtered) trending list.
func (c *Controller) Visible() []domain.MovieSummary {
	var src []domain.MovieSummary
	switch {
	case c.query != "":
		src = c.results
	case c.trendingView != nil:
		src = c.trendingView
	default:
		src = c.trending
	}
	out := make([]domain.MovieSummary, len(src))
	copy(out, src)
	return out
}

// Trending returns the unfiltered trending list
func (c *Controller) Trending() []domain.MovieSummary {
	out := make([]domain.MovieSummary, len(c.trending))
	copy(out, c.trending)
	return out
}

// State returns a snapshot of the search state
func (c *Controller) State() State {
	results := make([]domain.MovieSummary, len(c.results))
	copy(results, c.results)
	return State{
		Query:       c.query,
		CurrentPage: c.currentPage,
		TotalPages:  c.totalPages,
		Results:     results,
		Filters:     c.filters,
	}
}

// LastSearched returns the most recently submitted query from history ("" if none)
func (c *Controller) LastSearched() string {
	if c.history == nil {
		return ""
	}
	var q string
	if _, err := c.history.Get(domain.KeyLastSearched, &q); err != nil {
		c.logger.Warn("failed to read last search", "error", err)
		return ""
	}
	return q
}

func (c *Controller) rememberQuery(q string) {
	if c.history == nil {
		return
	}
	if err := c.history.Set(domain.KeyLastSearched, q); err != nil {
		c.logger.Warn("failed to save last search", "error", err)
	}
}

func (c *Controller) refreshTrendingView() {
	if c.applied.IsZero() {
		c.trendingView = nil
		return
	}
	c.trendingView = c.applied.Apply(c.trending)
}
