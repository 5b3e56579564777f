package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FetchDoneMsg carries a finished search or trending fetch back to Update
type FetchDoneMsg struct {
	Result search.Result
}

// DetailsLoadedMsg signals that a movie's details have been loaded
type DetailsLoadedMsg struct {
	Detail *domain.MovieDetail
}

// DetailsFailedMsg signals that a movie's details could not be loaded
type DetailsFailedMsg struct {
	ID  int
	Err error
}

// GenresLoadedMsg signals that the genre list has been loaded
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// TrailerLaunchedMsg signals that the trailer player was started
type TrailerLaunchedMsg struct {
	Title string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message if it is still the one with ID
type ClearStatusMsg struct {
	ID int
}
