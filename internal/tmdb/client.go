package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"
	defaultTimeout      = 10 * time.Second
	maxErrorBody        = 512
)

// Options configures a Client
type Options struct {
	BaseURL      string
	APIKey       string // v3 API key, or a v4 read access token
	ImageBaseURL string
	Language     string        // e.g. "en-US", empty for server default
	RateLimit    int           // requests per second, 0 = unlimited
	Timeout      time.Duration // per request, 0 = default
}

// Client implements domain.Catalog against the TMDB v3 API.
// Each call makes a single attempt; there are no retries.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

var _ domain.Catalog = (*Client)(nil)

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		// Bucket size equals QPS to allow short bursts
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit)
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		apiKey:       opts.APIKey,
		imageBaseURL: opts.ImageBaseURL,
		language:     opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// isBearerToken reports whether the key is a v4 read access token (a JWT)
func isBearerToken(key string) bool {
	return strings.Count(key, ".") == 2
}

// doRequest performs one authenticated GET and decodes the JSON body into dest
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, dest any) error {
	if c.apiKey == "" {
		return domain.ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.language != "" {
		query.Set("language", c.language)
	}
	bearer := isBearerToken(c.apiKey)
	if !bearer {
		query.Set("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", domain.ErrTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg := statusMessage(body)
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode, "message", msg)
		return fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrTransport, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", domain.ErrTransport, err)
	}
	return nil
}

// statusMessage extracts TMDB's status_message, falling back to a truncated body
func statusMessage(body []byte) string {
	var e ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.StatusMessage != "" {
		return e.StatusMessage
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}

// Trending returns this week's trending movies
func (c *Client) Trending(ctx context.Context) ([]domain.MovieSummary, error) {
	var resp PagedResponse
	if err := c.doRequest(ctx, "/trending/movie/week", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching trending: %w", err)
	}
	return MapMovies(resp.Results), nil
}

// Search returns one page of title search results.
// The year filter is sent as primary_release_year; genre and rating are not
// supported by the endpoint and must be applied by the caller.
func (c *Client) Search(ctx context.Context, query string, page int, filters domain.FilterSet) (domain.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchPage{}, domain.ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	if filters.Year != nil {
		params.Set("primary_release_year", strconv.Itoa(*filters.Year))
	}

	var resp PagedResponse
	if err := c.doRequest(ctx, "/search/movie", params, &resp); err != nil {
		return domain.SearchPage{}, fmt.Errorf("searching %q page %d: %w", query, page, err)
	}

	return domain.SearchPage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      MapMovies(resp.Results),
	}, nil
}

// Details returns the extended movie record with cast and trailer in one round trip
func (c *Client) Details(ctx context.Context, id int) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	var resp MovieDetails
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), params, &resp); err != nil {
		return nil, fmt.Errorf("fetching movie %d: %w", id, err)
	}
	return MapDetails(resp), nil
}

// Genres returns the movie genre taxonomy
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var resp GenreListResponse
	if err := c.doRequest(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching genres: %w", err)
	}
	return MapGenres(resp.Genres), nil
}

// PosterURL builds an image URL for a poster path at the given size (e.g. "w342").
// Returns "" when the path is absent.
func (c *Client) PosterURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return strings.TrimRight(c.imageBaseURL, "/") + "/" + size + *path
}
