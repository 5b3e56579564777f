package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// DetailView shows one movie's extended record in a scrollable viewport
type DetailView struct {
	detail   *domain.MovieDetail
	summary  *domain.MovieSummary // shown while details load
	err      error
	castSize int

	viewport viewport.Model
	width    int
}

// NewDetailView creates a detail view listing castSize cast members
func NewDetailView(castSize int) DetailView {
	if castSize <= 0 {
		castSize = 6
	}
	vp := viewport.New(0, 0)
	vp.KeyMap = detailViewportKeys()
	return DetailView{castSize: castSize, viewport: vp}
}

// Open shows a movie while its details load
func (d *DetailView) Open(summary domain.MovieSummary) {
	d.summary = &summary
	d.detail = nil
	d.err = nil
	d.viewport.GotoTop()
}

// SetDetail fills in the loaded record. Returns false if it is for a different movie.
func (d *DetailView) SetDetail(detail *domain.MovieDetail) bool {
	if detail == nil || d.summary == nil || detail.ID != d.summary.ID {
		return false
	}
	d.detail = detail
	d.err = nil
	return true
}

// SetError records why details could not be shown
func (d *DetailView) SetError(err error) {
	d.err = err
}

// Detail returns the loaded record, or nil
func (d DetailView) Detail() *domain.MovieDetail {
	return d.detail
}

// Summary returns the movie being shown, or nil
func (d DetailView) Summary() *domain.MovieSummary {
	return d.summary
}

// SetSize updates the viewport dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.viewport.Width = width
	d.viewport.Height = max(height, 1)
}

// Update scrolls the viewport
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// Refresh re-renders the page into the viewport. genreName and posterURL
// may be nil.
func (d *DetailView) Refresh(st styles.Styles, favorite bool, genreName func(int) string, posterURL func(*string) string) {
	d.viewport.SetContent(d.render(st, favorite, genreName, posterURL))
}

// View renders the visible part of the page
func (d DetailView) View() string {
	return d.viewport.View()
}

func (d DetailView) render(st styles.Styles, favorite bool, genreName func(int) string, posterURL func(*string) string) string {
	if d.summary == nil {
		return ""
	}

	width := max(d.width-2, 20)
	var b strings.Builder

	star := ""
	if favorite {
		star = st.Star.Render(styles.StarChar) + " "
	}

	title := d.summary.Title
	if d.detail != nil {
		title = d.detail.Title
	}
	b.WriteString(star + st.Title.Render(title) + "\n")

	if d.err != nil {
		b.WriteString("\n" + st.Error.Render("Details unavailable: "+d.err.Error()) + "\n")
		return b.String()
	}
	if d.detail == nil {
		b.WriteString("\n" + st.Dim.Render("Loading details...") + "\n")
		return b.String()
	}

	det := d.detail
	var meta []string
	if y := det.Year(); y > 0 {
		meta = append(meta, fmt.Sprintf("%d", y))
	}
	if rt := det.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	if det.VoteAverage != nil {
		meta = append(meta, fmt.Sprintf("%.1f/10", *det.VoteAverage))
	}
	if len(meta) > 0 {
		b.WriteString(st.Dim.Render(strings.Join(meta, " · ")) + "\n")
	}

	if len(det.Genres) > 0 {
		var badges []string
		for _, g := range det.Genres {
			name := g.Name
			if name == "" && genreName != nil {
				name = genreName(g.ID)
			}
			badges = append(badges, st.DimBadge.Render(name))
		}
		b.WriteString("\n" + strings.Join(badges, " ") + "\n")
	}

	if det.Overview != "" {
		b.WriteString("\n" + styles.Wrap(det.Overview, width) + "\n")
	}

	if cast := det.TopCast(d.castSize); len(cast) > 0 {
		b.WriteString("\n" + st.Accent.Render("Cast") + "\n")
		for _, c := range cast {
			line := "  " + c.Name
			if c.Character != "" {
				line += st.Dim.Render(" as " + c.Character)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	if posterURL != nil {
		if url := posterURL(det.PosterPath); url != "" {
			b.WriteString(st.Accent.Render("Poster") + " " + st.Dim.Render(url) + "\n")
		}
	}
	if url := det.TrailerURL(); url != "" {
		b.WriteString(st.Accent.Render("▶ Trailer") + " " + st.Dim.Render(url) + "\n")
	} else {
		b.WriteString(st.Dim.Render("No trailer available") + "\n")
	}

	return b.String()
}
