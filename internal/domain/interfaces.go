package domain

import "context"

// Catalog is the remote movie metadata source.
// Implementations return sentinel errors (ErrTransport, ErrNotFound, ...) wrapped with context.
type Catalog interface {
	// Trending returns this week's trending movies
	Trending(ctx context.Context) ([]MovieSummary, error)

	// Search returns one page of title search results.
	// Filters the endpoint cannot express are ignored; callers filter client-side.
	Search(ctx context.Context, query string, page int, filters FilterSet) (SearchPage, error)

	// Details returns the extended record including cast and trailer in one round trip
	Details(ctx context.Context, id int) (*MovieDetail, error)

	// Genres returns the genre taxonomy
	Genres(ctx context.Context) ([]Genre, error)
}

// KeyValueStore is persistent storage of JSON values keyed by string.
// It survives process restarts.
type KeyValueStore interface {
	// Get decodes the value at key into dest. Returns false if the key is absent.
	Get(key string, dest any) (bool, error)

	// Set encodes and durably writes value at key
	Set(key string, value any) error

	// Delete removes key; deleting an absent key is not an error
	Delete(key string) error

	Close() error
}

// Well-known storage keys
const (
	KeyFavorites    = "favorites"
	KeyDarkMode     = "darkMode"
	KeyLastSearched = "lastSearched"
	KeyUser         = "user"
)
