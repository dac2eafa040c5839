package calcclient

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Response is a decoded evaluator reply. Exactly one of HasResult and
// HasError is meaningful to the caller: an error wins when both are present.
type Response struct {
	Result    float64
	HasResult bool
	Error     string
	HasError  bool
}

// EncodeRequest builds the request body {"expression": "..."}
func EncodeRequest(expression string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.FieldStart("expression")
		e.Str(expression)
	})
	return e.Bytes()
}

// DecodeResponse validates and decodes an evaluator reply.
//
// The body must be a single JSON object. "result", when present, must be a
// number; "error", when present, must be a string or null. Unknown fields are
// skipped. An empty or null "error" counts as absent. A body with neither a
// result nor an error is rejected.
func DecodeResponse(data []byte) (Response, error) {
	var r Response

	d := jx.DecodeBytes(data)
	if tt := d.Next(); tt != jx.Object {
		return r, errors.Errorf("expected object, got %s", tt)
	}

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "result":
			if tt := d.Next(); tt != jx.Number {
				return errors.Errorf("result: expected number, got %s", tt)
			}
			v, err := d.Float64()
			if err != nil {
				return errors.Wrap(err, "result")
			}
			r.Result, r.HasResult = v, true

		case "error":
			switch tt := d.Next(); tt {
			case jx.String:
				s, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "error")
				}
				r.Error, r.HasError = s, s != ""
			case jx.Null:
				return d.Null()
			default:
				return errors.Errorf("error: expected string, got %s", tt)
			}

		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return r, err
	}

	if tt := d.Next(); tt != jx.Invalid {
		return r, errors.Errorf("unexpected %s after response object", tt)
	}

	if !r.HasResult && !r.HasError {
		return r, errors.New("response has neither result nor error")
	}

	return r, nil
}
