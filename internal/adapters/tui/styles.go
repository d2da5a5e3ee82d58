package tui

import "github.com/charmbracelet/lipgloss"

// Palette of the candidate viewer.
var (
	Primary   = lipgloss.Color("#4b88a2")
	Secondary = lipgloss.Color("#d7263d")
	Muted     = lipgloss.Color("#8a8f98")
	Border    = lipgloss.Color("#dce0e5")
	White     = lipgloss.Color("#ffffff")
)

// Styles holds the styled components of the viewer.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Input      lipgloss.Style
	InputFocus lipgloss.Style
	Sort       lipgloss.Style
	SortActive lipgloss.Style
	Content    lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles returns the viewer styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 2).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(Muted),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		InputFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1),
		Sort: lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1),
		SortActive: lipgloss.NewStyle().
			Background(Secondary).
			Foreground(White).
			Bold(true).
			Padding(0, 1),
		Content: lipgloss.NewStyle().
			Padding(1, 0),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Error: lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true),
	}
}
