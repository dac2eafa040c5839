// Package ui renders the one-shot output of the tapcalc subcommands.
//
// The interactive keypad lives in internal/tui. The components here follow
// a "print once and exit" pattern for commands such as eval and discover:
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success or failure box with ordered details
//   - Printer: writes components to a writer, or plain lines when the
//     output is not a terminal
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintSuccess("2+2", []ui.Detail{{Key: "Result", Value: "4"}})
//
// # Logging Integration
//
// zap logging stays silent unless TAPCALC_LOG_LEVEL (or --log-level) is
// set, so the curated output is displayed cleanly.
package ui
