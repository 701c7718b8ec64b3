package ui

import "github.com/charmbracelet/lipgloss"

// Palette follows the site's navy and gold theme.
const (
	ColorAccent   = "220" // gold
	ColorNavy     = "25"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorRed      = "196"
)

// Styles holds the lipgloss styles used by the terminal views.
type Styles struct {
	Header    lipgloss.Style
	Label     lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Panel     lipgloss.Style

	// Brackets marks the active tab with [ ] when colors are off.
	Brackets bool
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color(ColorGray)),
		TabActive: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorNavy)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
	}
}

// NoColorStyles returns unstyled components, with brackets marking the
// active tab so it stays visible without color.
func NoColorStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Title:     lipgloss.NewStyle(),
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		TabActive: lipgloss.NewStyle().Padding(0, 1),
		Panel:     lipgloss.NewStyle(),
		Brackets:  true,
	}
}

// GetStyles returns the styles for the color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
