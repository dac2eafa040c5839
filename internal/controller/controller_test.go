package controller_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/muurk/tapcalc/internal/calcclient"
	"github.com/muurk/tapcalc/internal/controller"
	mockcontroller "github.com/muurk/tapcalc/internal/controller/mock"
	"github.com/muurk/tapcalc/internal/display"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newController(t *testing.T, eval controller.Evaluator, opts ...controller.Option) (*controller.Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	presenter := display.NewPresenter(display.WithClock(clock.Now))
	opts = append([]controller.Option{controller.WithPresenter(presenter)}, opts...)
	return controller.New(eval, opts...), clock
}

func press(c *controller.Controller, labels ...string) display.Frame {
	var f display.Frame
	for _, l := range labels {
		f, _ = c.Press(l)
	}
	return f
}

func TestClassify(t *testing.T) {
	tests := map[string]controller.Action{
		"AC":  controller.ActionClear,
		"⌫":   controller.ActionBackspace,
		"=":   controller.ActionEquals,
		"+/-": controller.ActionToggleSign,
		"%":   controller.ActionPercent,
		"7":   controller.ActionLiteral,
		".":   controller.ActionLiteral,
		"×":   controller.ActionLiteral,
		"÷":   controller.ActionLiteral,
		"-":   controller.ActionLiteral,
	}
	for label, want := range tests {
		require.Equal(t, want, controller.Classify(label), "label %q", label)
	}
}

func TestNew_StartsAtZero(t *testing.T) {
	c, _ := newController(t, nil)
	require.Equal(t, "0", c.Expression())
	require.Equal(t, controller.StateIdle, c.State())
	require.Equal(t, "0", c.Frame().Text)
	require.Equal(t, display.Tier0, c.Frame().Tier)
}

func TestPress_EditingActions(t *testing.T) {
	c, _ := newController(t, nil)

	f := press(c, "1", "2", "+", "3", "4")
	require.Equal(t, "12+34", f.Text)

	f = press(c, "+/-")
	require.Equal(t, "12+-34", f.Text)

	f = press(c, "+/-", "%")
	require.Equal(t, "12+0.34", f.Text)

	f = press(c, "⌫")
	require.Equal(t, "12+0.3", f.Text)

	f = press(c, "AC")
	require.Equal(t, "0", f.Text)
	require.Equal(t, "0", c.Expression())
}

func TestPress_LongIntegerIsFormattedForDisplay(t *testing.T) {
	c, _ := newController(t, nil)

	f := press(c, strings.Split("12345678901", "")...)
	require.Equal(t, "12345678901", c.Expression())
	require.Equal(t, "1.2346e+10", f.Text)
}

func TestPress_DecimalIsFormattedForDisplay(t *testing.T) {
	c, _ := newController(t, nil)

	f := press(c, "1", "2", ".")
	require.Equal(t, "12.", c.Expression())
	require.Equal(t, "12", f.Text)

	f = press(c, "5", "0")
	require.Equal(t, "12.50", c.Expression())
	require.Equal(t, "12.5", f.Text)

	f = press(c, "AC", "3", ".", "1", "4", "1", "5", "9", "2", "6", "5", "3", "5", "8", "9", "7", "9")
	require.Equal(t, "3.14159265358979", c.Expression())
	require.Equal(t, "3.141592654", f.Text)
}

func TestPress_HighlightOnLongExpression(t *testing.T) {
	c, clock := newController(t, nil)

	press(c, strings.Split("1234567890123456789", "")...)
	require.Empty(t, c.TakeTickets())

	f, _ := c.Press("0")
	require.Equal(t, 20, len(c.Expression()))
	require.True(t, f.Highlight)

	tickets := c.TakeTickets()
	require.Len(t, tickets, 1)
	require.Equal(t, display.EffectHighlight, tickets[0].Effect)
	require.Equal(t, 300*time.Millisecond, tickets[0].Duration)

	clock.now = clock.now.Add(300 * time.Millisecond)
	require.False(t, c.Frame().Highlight)

	// every further append flashes again
	press(c, "+")
	require.Len(t, c.TakeTickets(), 1)
}

func TestPress_HighlightThresholdOption(t *testing.T) {
	c, _ := newController(t, nil, controller.WithHighlightThreshold(3))

	f := press(c, "1", "2", "3")
	require.True(t, f.Highlight)
}

func TestSubmit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), "6×7").Return("42", nil)

	c, _ := newController(t, eval)
	press(c, "6", "×", "7")

	f, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "42", f.Text)
	require.Equal(t, "42", c.Expression())
	require.Equal(t, controller.StateIdle, c.State())
}

func TestSubmit_FailureShowsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), "1÷0").
		Return("", calcclient.NewSemanticError("Division by zero", http.StatusOK))

	c, clock := newController(t, eval)
	press(c, "1", "÷", "0")

	f, err := c.Submit(context.Background())
	require.True(t, calcclient.IsSemantic(err))
	require.Equal(t, "Error", f.Text)
	require.True(t, f.Error)

	tickets := c.TakeTickets()
	require.Len(t, tickets, 1)
	require.Equal(t, display.EffectError, tickets[0].Effect)

	clock.now = clock.now.Add(500 * time.Millisecond)
	f = c.Expire(tickets[0])
	require.False(t, f.Error)
	require.Equal(t, "Error", f.Text)
}

func TestPress_AfterErrorAppends(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

	c, _ := newController(t, eval)
	_, _ = c.Submit(context.Background())

	f := press(c, "5")
	require.Equal(t, "Error5", f.Text)
}

func TestPress_ResetAfterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

	c, _ := newController(t, eval, controller.WithResetAfterError(true))
	_, _ = c.Submit(context.Background())

	f := press(c, "5")
	require.Equal(t, "5", f.Text)
}

func TestEquals_AsyncFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), "2+2").Return("4", nil)

	c, _ := newController(t, eval)
	press(c, "2", "+", "2")

	f, req := c.Press("=")
	require.NotNil(t, req)
	require.Equal(t, "2+2", req.Expression)
	require.Equal(t, "2+2", f.Text)
	require.Equal(t, controller.StateRequesting, c.State())

	done := c.Run(context.Background(), req)
	require.False(t, done.Failed())
	require.Equal(t, controller.StateRequesting, c.State())

	f = c.Complete(done)
	require.Equal(t, "4", f.Text)
	require.Equal(t, controller.StateIdle, c.State())
}

func TestEquals_StaleCompletionOverwritesEdits(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := mockcontroller.NewMockEvaluator(ctrl)
	eval.EXPECT().Evaluate(gomock.Any(), "9-3").Return("6", nil)

	c, _ := newController(t, eval)
	press(c, "9", "-", "3")

	_, req := c.Press("=")
	press(c, "+", "1")
	require.Equal(t, "9-3+1", c.Expression())

	f := c.Complete(c.Run(context.Background(), req))
	require.Equal(t, "6", f.Text)
}

func TestPress_NonEqualsReturnsNoRequest(t *testing.T) {
	c, _ := newController(t, nil)
	for _, label := range []string{"1", "AC", "⌫", "+/-", "%", "+"} {
		_, req := c.Press(label)
		require.Nil(t, req, "label %q", label)
	}
}

func TestRun_WithoutEvaluator(t *testing.T) {
	c, _ := newController(t, nil)
	f, err := c.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, "Error", f.Text)
}

func TestEndToEnd_HTTPSuccess(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = w.Write([]byte(`{"result":4}`))
	}))
	defer server.Close()

	c, _ := newController(t, calcclient.New(server.URL+"/calculate"))
	press(c, "2", "+", "2")

	f, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"expression":"2+2"}`, body)
	require.Equal(t, "4", c.Expression())
	require.Equal(t, "4", f.Text)
}

func TestEndToEnd_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, clock := newController(t, calcclient.New(server.URL+"/calculate"))
	press(c, "2", "+", "2")

	f, err := c.Submit(context.Background())
	require.True(t, calcclient.IsTransport(err))
	require.Equal(t, "Error", c.Expression())
	require.True(t, f.Error)

	clock.now = clock.now.Add(499 * time.Millisecond)
	require.True(t, c.Frame().Error)

	clock.now = clock.now.Add(time.Millisecond)
	require.True(t, c.Presenter().Advance())
	require.False(t, c.Frame().Error)
}
