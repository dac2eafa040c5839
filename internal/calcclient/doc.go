// Package calcclient sends calculator expressions to a remote evaluator.
//
// The evaluator contract is one JSON request per evaluation:
//
//	POST http://127.0.0.1:5000/calculate
//	{"expression": "2*3"}
//
// answered by {"result": 6} or {"error": "<message>"}. Display glyphs (× ÷)
// are translated to * and / before sending; the rest of the expression is
// not validated.
//
// # Error Handling
//
// Every failure is an *Error with one of three kinds:
//   - KindTransport: network failure, or any non-2xx status regardless of body
//   - KindSemantic: a 2xx response carrying an "error" field
//   - KindProtocol: a body that is not an object with a numeric "result" or a
//     string "error"
//
// Callers that only need to show "Error" can ignore the kind; it is kept for
// logging and for the CLI.
package calcclient
