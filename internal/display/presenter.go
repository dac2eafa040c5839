package display

import (
	"time"

	"github.com/muurk/tapcalc/internal/format"
)

const (
	// DefaultHighlightDuration is how long the long-expression highlight stays on
	DefaultHighlightDuration = 300 * time.Millisecond

	// DefaultErrorDuration is how long the error style stays on
	DefaultErrorDuration = 500 * time.Millisecond
)

// Effect is a transient visual state layered over the display
type Effect int

const (
	// EffectHighlight marks an expression that has grown long
	EffectHighlight Effect = iota
	// EffectError marks a failed evaluation
	EffectError

	effectCount
)

// String implements fmt.Stringer
func (e Effect) String() string {
	switch e {
	case EffectHighlight:
		return "highlight"
	case EffectError:
		return "error"
	default:
		return "unknown"
	}
}

// Ticket identifies one activation of an effect. Expiring a ticket only
// clears the effect if no newer activation has replaced it.
type Ticket struct {
	Effect   Effect
	Seq      uint64
	Deadline time.Time
	Duration time.Duration
}

// Frame is the derived display state for one render
type Frame struct {
	Text      string
	Tier      Tier
	Highlight bool
	Error     bool
}

type activation struct {
	seq      uint64
	deadline time.Time
	on       bool
}

// Presenter derives frames from the expression and owns the timed effects.
// It is not safe for concurrent use; all calls come from the event loop.
type Presenter struct {
	now       func() time.Time
	durations [effectCount]time.Duration
	active    [effectCount]activation
	seq       uint64
}

// Option configures a Presenter
type Option func(*Presenter)

// WithClock replaces time.Now, letting tests drive the effect timers
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDurations overrides the effect durations. Zero values keep the default.
func WithDurations(highlight, errorStyle time.Duration) Option {
	return func(p *Presenter) {
		if highlight > 0 {
			p.durations[EffectHighlight] = highlight
		}
		if errorStyle > 0 {
			p.durations[EffectError] = errorStyle
		}
	}
}

// NewPresenter creates a presenter with the default durations and clock
func NewPresenter(opts ...Option) *Presenter {
	p := &Presenter{now: time.Now}
	p.durations[EffectHighlight] = DefaultHighlightDuration
	p.durations[EffectError] = DefaultErrorDuration
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Duration returns the configured duration of an effect
func (p *Presenter) Duration(e Effect) time.Duration {
	return p.durations[e]
}

// Flash turns an effect on until its duration elapses and returns the
// ticket that will clear it. A repeated flash restarts the timer.
func (p *Presenter) Flash(e Effect) Ticket {
	p.seq++
	d := p.durations[e]
	deadline := p.now().Add(d)
	p.active[e] = activation{seq: p.seq, deadline: deadline, on: true}
	return Ticket{Effect: e, Seq: p.seq, Deadline: deadline, Duration: d}
}

// Expire clears the effect named by the ticket. Superseded tickets are
// ignored. Reports whether the effect was cleared.
func (p *Presenter) Expire(t Ticket) bool {
	a := p.active[t.Effect]
	if !a.on || a.seq != t.Seq {
		return false
	}
	p.active[t.Effect] = activation{}
	return true
}

// Advance clears every effect whose deadline has passed.
// Reports whether anything changed.
func (p *Presenter) Advance() bool {
	now := p.now()
	changed := false
	for e := range p.active {
		if p.active[e].on && !now.Before(p.active[e].deadline) {
			p.active[e] = activation{}
			changed = true
		}
	}
	return changed
}

// Active reports whether an effect is on at the current time
func (p *Presenter) Active(e Effect) bool {
	a := p.active[e]
	return a.on && p.now().Before(a.deadline)
}

// Render computes the frame for the expression
func (p *Presenter) Render(expression string) Frame {
	text := DisplayText(expression)
	return Frame{
		Text:      text,
		Tier:      TierFor(text),
		Highlight: p.Active(EffectHighlight),
		Error:     p.Active(EffectError),
	}
}

// DisplayText returns what the display shows for an expression. A buffer that
// is a single finite number is passed through the number formatter, so "1.50"
// shows as "1.5" and "12." as "12". Anything else is shown as entered.
func DisplayText(expression string) string {
	text, _ := format.String(expression)
	return text
}
