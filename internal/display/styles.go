package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the display surface
var (
	TextColor      = lipgloss.Color("#FFFFFF") // White - normal digits
	HighlightColor = lipgloss.Color("#FBBF24") // Amber - long expression
	ErrorColor     = lipgloss.Color("#EF4444") // Red - failed evaluation
	MutedColor     = lipgloss.Color("#626262") // Gray - border
)

// tierStyles maps each size tier to a base style. A terminal cannot change
// font size, so larger tiers get letter spacing, bold weight and vertical
// padding instead.
var tierStyles = [...]lipgloss.Style{
	lipgloss.NewStyle().Bold(true).Padding(1, 1),
	lipgloss.NewStyle().Bold(true).Padding(1, 1),
	lipgloss.NewStyle().Bold(true).Padding(1, 1),
	lipgloss.NewStyle().Bold(true).Padding(0, 1),
	lipgloss.NewStyle().Bold(true).Padding(0, 1),
	lipgloss.NewStyle().Padding(0, 1),
	lipgloss.NewStyle().Padding(0, 1),
	lipgloss.NewStyle().Faint(true).Padding(0, 1),
}

// tierSpacing is the number of spaces inserted between characters per tier
var tierSpacing = [...]int{2, 1, 1, 0, 0, 0, 0, 0}

// StyleFor returns the style for a frame: exactly one tier style with the
// active effect colour applied. Error takes precedence over highlight.
func StyleFor(f Frame) lipgloss.Style {
	tier := f.Tier
	if tier < Tier0 || tier > Tier7 {
		tier = Tier7
	}

	style := tierStyles[tier].Foreground(TextColor)
	switch {
	case f.Error:
		style = style.Foreground(ErrorColor).Bold(true)
	case f.Highlight:
		style = style.Foreground(HighlightColor)
	}
	return style
}

// View renders a frame right-aligned inside a bordered box of the given width
func View(f Frame, width int) string {
	tier := f.Tier
	if tier < Tier0 || tier > Tier7 {
		tier = Tier7
	}

	text := spaceOut(f.Text, tierSpacing[tier])
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	body := StyleFor(f).
		Width(inner).
		Align(lipgloss.Right).
		Render(text)

	border := MutedColor
	if f.Error {
		border = ErrorColor
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(body)
}

func spaceOut(text string, n int) string {
	if n == 0 {
		return text
	}
	runes := []rune(text)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, strings.Repeat(" ", n))
}
