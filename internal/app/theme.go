package app

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Theme holds the light/dark preference, persisted under the "darkMode" key
type Theme struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu   sync.RWMutex
	dark bool
}

// NewTheme creates a theme using defaultDark until Hydrate finds a saved choice
func NewTheme(kv domain.KeyValueStore, defaultDark bool, logger *slog.Logger) *Theme {
	if logger == nil {
		logger = slog.Default()
	}
	return &Theme{kv: kv, logger: logger, dark: defaultDark}
}

// Hydrate restores the saved preference, if any
func (t *Theme) Hydrate() {
	var dark bool
	ok, err := t.kv.Get(domain.KeyDarkMode, &dark)
	if err != nil {
		t.logger.Warn("saved theme unreadable", "error", err)
		return
	}
	if ok {
		t.mu.Lock()
		t.dark = dark
		t.mu.Unlock()
	}
}

// DarkMode reports whether the dark palette is selected
func (t *Theme) DarkMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// ToggleDarkMode flips and persists the preference, returning the new value
func (t *Theme) ToggleDarkMode() bool {
	t.mu.Lock()
	t.dark = !t.dark
	dark := t.dark
	t.mu.Unlock()

	if err := t.kv.Set(domain.KeyDarkMode, dark); err != nil {
		t.logger.Error("failed to persist theme", "error", err)
	}
	return dark
}
