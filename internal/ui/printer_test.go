package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrinter_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	require.True(t, p.Plain())

	p.PrintHeader("Evaluate", "tapcalc eval")
	p.PrintSuccess("2+2", []Detail{{Key: "Expression", Value: "2+2"}, {Key: "Result", Value: "4"}})
	require.Equal(t, "4\n", buf.String())
}

func TestPrinter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintError("1÷0", errors.New("Division by zero"), []string{"check"})
	require.Equal(t, "1÷0: Division by zero\n", buf.String())
}

func TestPrinter_Styled(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetPlain(false)

	p.PrintSuccess("2+2", []Detail{{Key: "Result", Value: "4"}})
	out := buf.String()
	require.Contains(t, out, SuccessMarker)
	require.Contains(t, out, "Result:")
	require.Contains(t, out, "4")

	buf.Reset()
	p.PrintError("oops", errors.New("HTTP Error: 500"), []string{"Is the service running?"})
	out = buf.String()
	require.Contains(t, out, "FAILED")
	require.Contains(t, out, "HTTP Error: 500")
	require.Contains(t, out, "Troubleshooting:")
}

func TestHeader_RenderKeepsParamOrder(t *testing.T) {
	h := NewHeader("endpoint discovery", "tapcalc discover",
		Detail{Key: "Service", Value: "_calculate._tcp"},
		Detail{Key: "Timeout", Value: "5s"},
	).SetWidth(60)

	out := h.String()
	require.Contains(t, out, "ENDPOINT DISCOVERY")
	require.Less(t, strings.Index(out, "Service:"), strings.Index(out, "Timeout:"))
}

func TestResult_AddDetail(t *testing.T) {
	r := NewSuccessResult("x", nil).AddDetail("A", "1").AddDetail("B", "2")
	require.Equal(t, []Detail{{"A", "1"}, {"B", "2"}}, r.Details)
}
