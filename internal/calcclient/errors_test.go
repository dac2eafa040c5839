package calcclient

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindTransport: "Transport Error",
		KindSemantic:  "Evaluation Error",
		KindProtocol:  "Protocol Error",
		Kind(9):       "Kind(9)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestNewTransportError_Classification(t *testing.T) {
	refused := &url.Error{
		Op:  "Post",
		URL: "http://127.0.0.1:5000/calculate",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
	}
	if e := NewTransportError("request failed", refused); e.Subtype != TransportConnectionRefused {
		t.Errorf("Subtype = %v, want TransportConnectionRefused", e.Subtype)
	}

	dns := &url.Error{Op: "Post", URL: "http://nowhere.invalid", Err: &net.DNSError{Name: "nowhere.invalid"}}
	if e := NewTransportError("request failed", dns); e.Subtype != TransportDNS {
		t.Errorf("Subtype = %v, want TransportDNS", e.Subtype)
	}

	timeout := &url.Error{Op: "Post", URL: "http://127.0.0.1:5000", Err: context.DeadlineExceeded}
	if e := NewTransportError("request failed", timeout); e.Subtype != TransportTimeout {
		t.Errorf("Subtype = %v, want TransportTimeout", e.Subtype)
	}

	if e := NewTransportError("request failed", errors.New("boom")); e.Subtype != TransportGeneral {
		t.Errorf("Subtype = %v, want TransportGeneral", e.Subtype)
	}
}

func TestPredicates(t *testing.T) {
	transport := NewStatusError(502)
	semantic := NewSemanticError("bad", 200)
	protocol := NewProtocolError("bad payload", 200, errors.New("expected object"))
	wrapped := errors.Join(errors.New("context"), semantic)

	if !IsTransport(transport) || IsSemantic(transport) || IsProtocol(transport) {
		t.Error("status error should only be a transport error")
	}
	if !IsSemantic(semantic) {
		t.Error("semantic error not recognised")
	}
	if !IsProtocol(protocol) {
		t.Error("protocol error not recognised")
	}
	if !IsSemantic(wrapped) {
		t.Error("wrapped semantic error not recognised")
	}
	if IsTransport(errors.New("plain")) {
		t.Error("plain error should not be classified")
	}
}

func TestErrorString(t *testing.T) {
	e := NewProtocolError("invalid response payload", 200, errors.New("expected object, got array"))
	want := "Protocol Error: invalid response payload (caused by: expected object, got array)"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	if got := NewStatusError(404).Error(); got != "Transport Error: HTTP Error: 404" {
		t.Errorf("Error() = %q", got)
	}
}

func TestShortMessage(t *testing.T) {
	if got := ShortMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ShortMessage(plain) = %q", got)
	}
	if got := ShortMessage(&Error{Kind: KindTransport, Subtype: TransportConnectionRefused}); got != "Evaluator refused connection - is it running?" {
		t.Errorf("ShortMessage(refused) = %q", got)
	}
}
