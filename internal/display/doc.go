// Package display turns the expression buffer into what the user sees.
//
// Render derives a Frame from the expression: the display text, one of eight
// size tiers picked from the text length, and the transient effect flags.
// View draws a frame with lipgloss.
//
// # Timed Effects
//
// Two effects are layered over the display: a highlight when the expression
// grows long and an error style after a failed evaluation. Each Flash records
// a deadline from the presenter's clock and returns a Ticket. The event loop
// schedules a timer for the ticket and hands it back to Expire when it fires;
// a ticket replaced by a newer flash of the same effect is ignored. Tests
// inject a fake clock with WithClock and call Advance instead of waiting:
//
//	now := time.Unix(0, 0)
//	p := display.NewPresenter(display.WithClock(func() time.Time { return now }))
//	p.Flash(display.EffectError)
//	now = now.Add(500 * time.Millisecond)
//	p.Advance() // error style cleared
package display
