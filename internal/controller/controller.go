package controller

import (
	"context"
	"errors"

	"github.com/muurk/tapcalc/internal/calcclient"
	"github.com/muurk/tapcalc/internal/display"
	"github.com/muurk/tapcalc/internal/expression"
	"github.com/muurk/tapcalc/internal/logging"
)

// DefaultHighlightThreshold is the expression length at which appends flash
// the long-expression highlight
const DefaultHighlightThreshold = 20

var errNoEvaluator = errors.New("no evaluator configured")

// State is the evaluation state of the controller
type State int

const (
	// StateIdle means no evaluation is outstanding
	StateIdle State = iota
	// StateRequesting means at least one evaluation is in flight
	StateRequesting
)

// String implements fmt.Stringer
func (s State) String() string {
	if s == StateRequesting {
		return "requesting"
	}
	return "idle"
}

// Request is a snapshot of the expression taken when equals was pressed
type Request struct {
	Seq        uint64
	Expression string
}

// Completion is the outcome of one evaluation: a formatted value or an error
type Completion struct {
	Request *Request
	Value   string
	Err     error
}

// Failed reports whether the evaluation failed
func (c Completion) Failed() bool {
	return c.Err != nil
}

// Controller owns the expression for the lifetime of the application and
// dispatches button presses to it. It is driven from a single event loop:
// Press, Complete and Expire must not be called concurrently. Run touches no
// controller state and may execute elsewhere while the loop keeps handling
// presses.
type Controller struct {
	buffer    *expression.Buffer
	presenter *display.Presenter
	evaluator Evaluator

	highlightThreshold int
	resetAfterError    bool

	seq         uint64
	outstanding int
	tickets     []display.Ticket
}

// Option configures a Controller
type Option func(*Controller)

// WithPresenter replaces the default presenter
func WithPresenter(p *display.Presenter) Option {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithHighlightThreshold sets the length that triggers the highlight
func WithHighlightThreshold(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.highlightThreshold = n
		}
	}
}

// WithResetAfterError makes a literal pressed while "Error" is shown start a
// new expression instead of appending to the error text
func WithResetAfterError(enabled bool) Option {
	return func(c *Controller) {
		c.resetAfterError = enabled
	}
}

// New creates a controller with a fresh expression
func New(evaluator Evaluator, opts ...Option) *Controller {
	c := &Controller{
		buffer:             expression.NewBuffer(),
		presenter:          display.NewPresenter(),
		evaluator:          evaluator,
		highlightThreshold: DefaultHighlightThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Expression returns the current expression text
func (c *Controller) Expression() string {
	return c.buffer.Value()
}

// State returns the evaluation state
func (c *Controller) State() State {
	if c.outstanding > 0 {
		return StateRequesting
	}
	return StateIdle
}

// Presenter returns the presenter used for rendering
func (c *Controller) Presenter() *display.Presenter {
	return c.presenter
}

// Frame renders the current expression
func (c *Controller) Frame() display.Frame {
	return c.presenter.Render(c.buffer.Value())
}

// Press handles one button activation. For equals it snapshots the
// expression into a Request that the caller must pass to Run; for every
// other label the returned request is nil. The frame is always re-rendered.
func (c *Controller) Press(label string) (display.Frame, *Request) {
	action := Classify(label)
	logging.LogButton(label, action.String())

	var req *Request

	switch action {
	case ActionEquals:
		c.seq++
		c.outstanding++
		req = &Request{Seq: c.seq, Expression: c.buffer.Value()}

	case ActionClear:
		c.buffer.Clear()

	case ActionBackspace:
		c.buffer.Backspace()

	case ActionToggleSign:
		c.buffer.ToggleSign()

	case ActionPercent:
		c.buffer.Percent()

	default:
		c.appendLiteral(label)
	}

	return c.Frame(), req
}

func (c *Controller) appendLiteral(token string) {
	if c.resetAfterError && c.buffer.Value() == expression.ErrorText {
		c.buffer.Set(token)
		return
	}

	if _, concatenated := c.buffer.Append(token); concatenated && c.buffer.Len() >= c.highlightThreshold {
		c.flash(display.EffectHighlight)
	}
}

// Run performs the single evaluation for a request. It never panics past
// this boundary and does not modify the controller.
func (c *Controller) Run(ctx context.Context, req *Request) Completion {
	if c.evaluator == nil {
		return Completion{Request: req, Err: errNoEvaluator}
	}
	value, err := c.evaluator.Evaluate(ctx, req.Expression)
	return Completion{Request: req, Value: value, Err: err}
}

// Complete writes an evaluation outcome into the expression: the formatted
// result on success, "Error" plus the error effect on failure. A completion
// that arrives after further edits still overwrites them.
func (c *Controller) Complete(done Completion) display.Frame {
	if c.outstanding > 0 {
		c.outstanding--
	}

	if done.Failed() {
		expr := ""
		if done.Request != nil {
			expr = done.Request.Expression
		}
		logging.LogCalculationError(expr, errorKind(done.Err), calcclient.ShortMessage(done.Err))

		c.buffer.Set(expression.ErrorText)
		c.flash(display.EffectError)
		return c.Frame()
	}

	c.buffer.Set(done.Value)
	return c.Frame()
}

// Submit evaluates the current expression synchronously: equals, the
// network call and completion in one step. The error is the evaluation
// failure, if any; the expression already holds "Error" in that case.
func (c *Controller) Submit(ctx context.Context) (display.Frame, error) {
	_, req := c.Press(LabelEquals)
	done := c.Run(ctx, req)
	return c.Complete(done), done.Err
}

// TakeTickets returns the effects started since the last call. The event
// loop schedules a timer per ticket and passes it back to Expire.
func (c *Controller) TakeTickets() []display.Ticket {
	t := c.tickets
	c.tickets = nil
	return t
}

// Expire ends a timed effect and re-renders
func (c *Controller) Expire(t display.Ticket) display.Frame {
	c.presenter.Expire(t)
	return c.Frame()
}

func (c *Controller) flash(e display.Effect) {
	c.tickets = append(c.tickets, c.presenter.Flash(e))
}

func errorKind(err error) string {
	var e *calcclient.Error
	if errors.As(err, &e) {
		return e.Kind.String()
	}
	return "Unknown Error"
}
