package calcclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(fn rtFunc) *Client {
	return New("http://evaluator.test/calculate", WithHTTPClient(&http.Client{Transport: fn}))
}

func TestNew_Defaults(t *testing.T) {
	c := New("")
	require.Equal(t, DefaultEndpoint, c.Endpoint)
	require.NotNil(t, c.HTTPClient)
	require.Zero(t, c.HTTPClient.Timeout)

	c = New("http://10.0.0.2:5000/calculate", WithTimeout(3*time.Second))
	require.Equal(t, "http://10.0.0.2:5000/calculate", c.Endpoint)
	require.Equal(t, 3*time.Second, c.HTTPClient.Timeout)
}

func TestEvaluate_Success(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calculate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"expression":"2+2"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": 4}`))
	}))
	defer server.Close()

	c := New(server.URL + "/calculate")
	got, err := c.Evaluate(context.Background(), "2+2")
	require.NoError(t, err)
	require.Equal(t, "4", got)
	require.Equal(t, 1, calls)
}

func TestCalculate_TranslatesGlyphs(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"expression":"6*7/2"}`, string(body))
		return jsonResponse(http.StatusOK, `{"result":21}`), nil
	})

	v, err := c.Calculate(context.Background(), "6×7÷2")
	require.NoError(t, err)
	require.Equal(t, 21.0, v)
}

func TestEvaluate_FormatsResult(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"result":0.3333333333333333}`), nil
	})

	got, err := c.Evaluate(context.Background(), "1÷3")
	require.NoError(t, err)
	require.Equal(t, "0.333333333", got)
}

func TestCalculate_SemanticError(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"error":"Division by zero"}`), nil
	})

	_, err := c.Calculate(context.Background(), "1÷0")
	require.Error(t, err)
	require.True(t, IsSemantic(err))
	require.Equal(t, "Division by zero", ShortMessage(err))
}

func TestCalculate_ErrorWinsOverResult(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"result":1,"error":"bad input"}`), nil
	})

	_, err := c.Calculate(context.Background(), "1+")
	require.True(t, IsSemantic(err))
}

func TestCalculate_StatusErrorIgnoresBody(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"result":4}`), nil
	})

	_, err := c.Calculate(context.Background(), "2+2")
	require.Error(t, err)
	require.True(t, IsTransport(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, http.StatusInternalServerError, e.StatusCode)
	require.Equal(t, TransportHTTPStatus, e.Subtype)
	require.Equal(t, "HTTP Error: 500", ShortMessage(err))
}

func TestCalculate_ProtocolErrors(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>oops</html>`,
		"array":           `[4]`,
		"empty object":    `{}`,
		"string result":   `{"result":"4"}`,
		"null result":     `{"result":null}`,
		"numeric error":   `{"error":42}`,
		"trailing data":   `{"result":4} {"result":5}`,
		"truncated":       `{"result":`,
		"empty body":      ``,
		"only null error": `{"error":null}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, body), nil
			})

			_, err := c.Calculate(context.Background(), "2+2")
			require.Error(t, err)
			require.True(t, IsProtocol(err), "got %v", err)
		})
	}
}

func TestCalculate_NetworkFailure(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset by peer")
	})

	_, err := c.Calculate(context.Background(), "2+2")
	require.Error(t, err)
	require.True(t, IsTransport(err))
	require.Contains(t, ShortMessage(err), "connection reset by peer")
}

func TestCalculate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url + "/calculate")
	_, err := c.Calculate(context.Background(), "2+2")
	require.Error(t, err)
	require.True(t, IsTransport(err))
}

func TestCalculate_SingleRequestOnFailure(t *testing.T) {
	var calls int
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusServiceUnavailable, ``), nil
	})

	_, err := c.Calculate(context.Background(), "2+2")
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestCalculate_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	})

	_, err := c.Calculate(ctx, "2+2")
	require.True(t, IsTransport(err))
}
