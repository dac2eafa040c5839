// Package tui implements the interactive calculator keypad.
//
// Built on Bubble Tea, the model wraps a single controller.Controller for
// the lifetime of the program. Key presses are translated into keypad
// labels and handed to the controller; evaluation runs as a tea.Cmd and
// comes back as a message, and every timed display effect is scheduled
// with tea.Tick and expired by ticket.
//
// # Keys
//
//   - digits, ".", "+", "-", "*" (×), "/" (÷), "%", "=": press directly
//   - enter/space: press the focused keypad button
//   - arrows or h/j/k/l: move the keypad focus
//   - backspace: ⌫, esc or c: AC, n: +/-
//   - ?: toggle full help, q or ctrl+c: quit
//
// # Usage Example
//
//	ctrl := controller.New(calcclient.New(""))
//	program := tea.NewProgram(tui.New(ctrl, tui.WithEndpoint(url)), tea.WithAltScreen())
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
