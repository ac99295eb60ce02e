package cel

import (
	"context"

	"github.com/aescanero/dago-scaffold/internal/metadata"
)

// Condition is a predicate over the metadata context
type Condition interface {
	Holds(ctx context.Context, data metadata.Context) (bool, error)
	String() string
}

type constant bool

func (c constant) Holds(context.Context, metadata.Context) (bool, error) {
	return bool(c), nil
}

func (c constant) String() string {
	if c {
		return "true"
	}
	return "false"
}

// Always holds for every context
var Always Condition = constant(true)

// Never holds for no context
var Never Condition = constant(false)

// Func adapts a Go predicate into a Condition
type Func func(data metadata.Context) bool

// Holds calls f
func (f Func) Holds(_ context.Context, data metadata.Context) (bool, error) {
	return f(data), nil
}

func (f Func) String() string { return "<func>" }

// Expression is a CEL source expression bound to an evaluator
type Expression struct {
	Source    string
	evaluator *Evaluator
}

// Condition binds source to the evaluator
func (e *Evaluator) Condition(source string) *Expression {
	return &Expression{Source: source, evaluator: e}
}

// Holds evaluates the expression; any result but boolean true is false
func (x *Expression) Holds(ctx context.Context, data metadata.Context) (bool, error) {
	result, err := x.evaluator.Evaluate(ctx, x.Source, data)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	return ok && b, nil
}

func (x *Expression) String() string { return x.Source }
