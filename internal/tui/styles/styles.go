package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a set of theme colors
type Palette struct {
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Selection  lipgloss.Color
	Star       lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

// Light is the default pink palette
var Light = Palette{
	Accent:     lipgloss.Color("#EC7FA9"),
	Background: lipgloss.Color("#FFF5F8"),
	Surface:    lipgloss.Color("#FFE4EE"),
	Text:       lipgloss.Color("#2B2B2B"),
	Muted:      lipgloss.Color("#8A7F85"),
	Selection:  lipgloss.Color("#F9C5D8"),
	Star:       lipgloss.Color("#D94F86"),
	Error:      lipgloss.Color("#C62828"),
	Success:    lipgloss.Color("#2E7D32"),
}

// Dark is the navy palette
var Dark = Palette{
	Accent:     lipgloss.Color("#B8E8FC"),
	Background: lipgloss.Color("#1A1A2E"),
	Surface:    lipgloss.Color("#16213E"),
	Text:       lipgloss.Color("#F1F1F1"),
	Muted:      lipgloss.Color("#7F8CA3"),
	Selection:  lipgloss.Color("#0F3460"),
	Star:       lipgloss.Color("#FFD166"),
	Error:      lipgloss.Color("#EF4444"),
	Success:    lipgloss.Color("#10B981"),
}

// Styles are the rendered styles for one palette
type Styles struct {
	Palette Palette

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Dim      lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style
	Star         lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Badge    lipgloss.Style
	DimBadge lipgloss.Style
}

// New builds the styles for the dark or light palette
func New(dark bool) Styles {
	p := Light
	if dark {
		p = Dark
	}

	return Styles{
		Palette: p,

		App: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Background),

		Title: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Text),

		Dim: lipgloss.NewStyle().
			Foreground(p.Muted),

		Accent: lipgloss.NewStyle().
			Foreground(p.Accent),

		Error: lipgloss.NewStyle().
			Foreground(p.Error),

		Success: lipgloss.NewStyle().
			Foreground(p.Success),

		SelectedItem: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Selection).
			Bold(true),

		NormalItem: lipgloss.NewStyle().
			Foreground(p.Text),

		Star: lipgloss.NewStyle().
			Foreground(p.Star),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Background(p.Surface).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			MarginBottom(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.Accent),

		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Muted),

		Badge: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Accent).
			Padding(0, 1),

		DimBadge: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Selection).
			Padding(0, 1),
	}
}

// Raw markers (unstyled)
const (
	StarChar      = "★"
	EmptyStarChar = "☆"
)

// SpinnerFrames animate loading indicators
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Truncate shortens s to width cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// Pad pads s with spaces to width cells, truncating when longer
func Pad(s string, width int) string {
	s = Truncate(s, width)
	n := width - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// Wrap soft-wraps text to width columns
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
