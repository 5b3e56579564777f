package app

import (
	"log/slog"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/search"
)

// State is the application's single source of truth. It is built once at
// startup and handed to the presentation layer, which mutates it only
// through the methods of its parts.
type State struct {
	Catalog   *catalog.Service
	Favorites *favorites.Store
	Search    *search.Controller
	Session   *Session
	Theme     *Theme
}

// NewState wires the application state over a catalog and persistent storage
// and hydrates everything that was persisted.
func NewState(cat domain.Catalog, kv domain.KeyValueStore, defaultDark bool, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}

	catalogSvc := catalog.NewService(cat, logger)

	favs := favorites.NewStore(kv, logger)
	favs.Hydrate()

	session := NewSession(kv, logger)
	session.Hydrate()

	theme := NewTheme(kv, defaultDark, logger)
	theme.Hydrate()

	return &State{
		Catalog:   catalogSvc,
		Favorites: favs,
		Search:    search.NewController(catalogSvc, kv, logger),
		Session:   session,
		Theme:     theme,
	}
}
