package calcclient

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"

	"github.com/go-faster/errors"
)

// Kind is the category of an evaluation failure
type Kind int

const (
	// KindTransport covers network failures and non-2xx responses
	KindTransport Kind = iota
	// KindSemantic is a 2xx response carrying an "error" field
	KindSemantic
	// KindProtocol is a response body that does not match the schema
	KindProtocol
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "Transport Error"
	case KindSemantic:
		return "Evaluation Error"
	case KindProtocol:
		return "Protocol Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TransportSubtype narrows down a transport failure
type TransportSubtype int

const (
	TransportGeneral TransportSubtype = iota
	TransportTimeout
	TransportConnectionRefused
	TransportDNS
	TransportHTTPStatus
)

// Error is the single failure type returned by the client
type Error struct {
	Kind       Kind             // Category of failure
	Subtype    TransportSubtype // Transport detail (KindTransport only)
	Message    string           // Human-readable message
	StatusCode int              // HTTP status (if a response arrived)
	Err        error            // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewStatusError creates a transport error for a non-2xx response
func NewStatusError(statusCode int) *Error {
	return &Error{
		Kind:       KindTransport,
		Subtype:    TransportHTTPStatus,
		Message:    fmt.Sprintf("HTTP Error: %d", statusCode),
		StatusCode: statusCode,
	}
}

// NewSemanticError creates an error from the evaluator's "error" field
func NewSemanticError(message string, statusCode int) *Error {
	return &Error{
		Kind:       KindSemantic,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewProtocolError creates an error for a malformed response payload
func NewProtocolError(message string, statusCode int, err error) *Error {
	return &Error{
		Kind:       KindProtocol,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// NewTransportError classifies a failure to reach the evaluator
func NewTransportError(message string, err error) *Error {
	e := &Error{
		Kind:    KindTransport,
		Subtype: TransportGeneral,
		Message: message,
		Err:     err,
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case os.IsTimeout(err):
		e.Subtype = TransportTimeout
	case errors.As(err, &dnsErr):
		e.Subtype = TransportDNS
	case errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED):
		e.Subtype = TransportConnectionRefused
	}

	return e
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsTransport checks if an error is a transport failure
func IsTransport(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransport
}

// IsSemantic checks if an error was reported by the evaluator
func IsSemantic(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindSemantic
}

// IsProtocol checks if an error is a malformed response
func IsProtocol(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindProtocol
}

// ShortMessage returns a concise message suitable for logs and CLI output.
// Semantic errors return the evaluator's message verbatim.
func ShortMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case KindSemantic:
		return e.Message
	case KindProtocol:
		return "Malformed response from evaluator: " + e.Message
	}

	switch e.Subtype {
	case TransportTimeout:
		return "Evaluator not responding (timeout)"
	case TransportConnectionRefused:
		return "Evaluator refused connection - is it running?"
	case TransportDNS:
		return "Cannot resolve evaluator hostname"
	case TransportHTTPStatus:
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}
