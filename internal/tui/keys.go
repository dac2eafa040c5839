package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/tapcalc/internal/controller"
	"github.com/muurk/tapcalc/internal/expression"
)

// Keypad is the button grid, row by row
var Keypad = [][]string{
	{controller.LabelClear, controller.LabelBackspace, controller.LabelPercent, expression.Divide},
	{"7", "8", "9", expression.Multiply},
	{"4", "5", "6", expression.Subtract},
	{"1", "2", "3", expression.Add},
	{controller.LabelToggleSign, "0", ".", controller.LabelEquals},
}

// directKeys maps typed characters to keypad labels
var directKeys = map[string]string{
	"0": "0", "1": "1", "2": "2", "3": "3", "4": "4",
	"5": "5", "6": "6", "7": "7", "8": "8", "9": "9",
	".": ".",
	"+": expression.Add,
	"-": expression.Subtract,
	"*": expression.Multiply,
	"x": expression.Multiply,
	"/": expression.Divide,
	"%": controller.LabelPercent,
	"=": controller.LabelEquals,

	"backspace": controller.LabelBackspace,
	"esc":       controller.LabelClear,
	"c":         controller.LabelClear,
	"n":         controller.LabelToggleSign,
	"_":         controller.LabelToggleSign,
}

// labelFor returns the keypad label a key press stands for
func labelFor(msg tea.KeyMsg) (string, bool) {
	label, ok := directKeys[msg.String()]
	return label, ok
}

// keyMap defines the navigation key bindings shown in help
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding
	Equal key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Equal, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Press, k.Equal, k.Clear},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Equal: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "evaluate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
