package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tapcalc/internal/version"
)

// AppName is shown in the title bar
const AppName = "TAPCALC"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	ButtonWidth = 7
	ButtonGap   = 1

	// DisplayWidth matches a keypad row: four bordered buttons and the gaps
	DisplayWidth = 4*(ButtonWidth+2) + 3*ButtonGap
)

// Color palette
var (
	PrimaryColor  = lipgloss.Color("#7D56F4") // Purple
	OperatorColor = lipgloss.Color("#FFA500") // Orange
	FunctionColor = lipgloss.Color("#A3A3A3") // Light gray
	TextColor     = lipgloss.Color("#FFFFFF") // White
	SubtleColor   = lipgloss.Color("#626262") // Gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	VersionStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ButtonStyle is a keypad button at rest
	ButtonStyle = lipgloss.NewStyle().
			Width(ButtonWidth).
			Align(lipgloss.Center).
			Foreground(TextColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor)

	// FocusedButtonStyle is the button enter will press
	FocusedButtonStyle = ButtonStyle.
				BorderForeground(PrimaryColor).
				Foreground(PrimaryColor).
				Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)
)

// buttonStyle picks the style for a keypad label
func buttonStyle(label string, focused bool) lipgloss.Style {
	style := ButtonStyle
	if focused {
		style = FocusedButtonStyle
	}

	switch label {
	case "+", "-", "×", "÷", "=":
		if !focused {
			style = style.Foreground(OperatorColor)
		}
	case "AC", "⌫", "%", "+/-":
		if !focused {
			style = style.Foreground(FunctionColor)
		}
	}
	return style
}
