package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Command factories for async operations

// TrailerLauncher opens a trailer URL
type TrailerLauncher interface {
	Launch(url string) error
}

// RunFetchCmd performs a controller fetch off the UI goroutine.
// The result is handed back to the controller in Update.
func RunFetchCmd(ctrl *search.Controller, f *search.Fetch) tea.Cmd {
	if f == nil {
		return nil
	}
	fetch := *f
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return FetchDoneMsg{Result: ctrl.Run(ctx, fetch)}
	}
}

// LoadDetailsCmd loads the extended record for a movie
func LoadDetailsCmd(svc *catalog.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := svc.Details(ctx, id)
		if err != nil {
			return DetailsFailedMsg{ID: id, Err: err}
		}
		return DetailsLoadedMsg{Detail: detail}
	}
}

// LoadGenresCmd loads the genre list for the filter picker
func LoadGenresCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return GenresLoadedMsg{Genres: svc.Genres(ctx)}
	}
}

// PlayTrailerCmd launches the movie's trailer in the external player
func PlayTrailerCmd(launcher TrailerLauncher, detail *domain.MovieDetail) tea.Cmd {
	return func() tea.Msg {
		url := detail.TrailerURL()
		if url == "" {
			return ErrMsg{Err: fmt.Errorf("no trailer available"), Context: detail.Title}
		}
		if err := launcher.Launch(url); err != nil {
			return ErrMsg{Err: err, Context: "playing trailer"}
		}
		return TrailerLaunchedMsg{Title: detail.Title}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(delay time.Duration, id int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
