package controller

import "context"

// Evaluator turns an expression into the text of its result. Implementations
// return the formatted result ready to become the new expression.
//
//go:generate mockgen -package mockcontroller -source=interface.go -destination=mock/mockcontroller.go *
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) (string, error)
}
