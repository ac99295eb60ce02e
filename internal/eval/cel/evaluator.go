package cel

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
)

// DataVar is the variable bound to the whole metadata context
const DataVar = "data"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CEL reserved words cannot be declared as variables
var reservedWords = map[string]bool{
	"true": true, "false": true, "null": true, "in": true, "as": true,
	"break": true, "const": true, "continue": true, "else": true,
	"for": true, "function": true, "if": true, "import": true, "let": true,
	"loop": true, "package": true, "namespace": true, "return": true,
	"var": true, "void": true, "while": true,
}

// Evaluator evaluates CEL expressions
type Evaluator struct {
	env   *cel.Env
	names []string
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates an evaluator declaring names as dyn variables.
// Names that are not valid CEL identifiers are only reachable through data.
func NewEvaluator(names []string) (*Evaluator, error) {
	declared := declarable(names)

	opts := []cel.EnvOption{
		cel.Variable(DataVar, cel.MapType(cel.StringType, cel.DynType)),
	}
	for _, name := range declared {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Evaluator{
		env:   env,
		names: declared,
		cache: make(map[string]cel.Program),
	}, nil
}

// Names returns the declared identifiers
func (e *Evaluator) Names() []string {
	return append([]string(nil), e.names...)
}

// Evaluate evaluates a CEL expression against the given variables.
// Declared names missing from vars are bound to null.
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]interface{}) (interface{}, error) {
	program, err := e.getProgram(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", expression, err)
	}

	out, _, err := program.ContextEval(ctx, e.activation(vars))
	if err != nil {
		return nil, fmt.Errorf("evaluation of %q failed: %w", expression, err)
	}

	if out == types.NullValue {
		return nil, nil
	}
	return out.Value(), nil
}

// activation binds every declared name plus data
func (e *Evaluator) activation(vars map[string]interface{}) map[string]interface{} {
	data := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		data[k] = v
	}

	act := make(map[string]interface{}, len(e.names)+1)
	for _, name := range e.names {
		if v, ok := vars[name]; ok && v != nil {
			act[name] = v
		} else {
			act[name] = types.NullValue
		}
	}
	act[DataVar] = data
	return act
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[expression] = program

	return program, nil
}

// ValidateExpression compiles an expression without evaluating it
func (e *Evaluator) ValidateExpression(expression string) error {
	_, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}
	return nil
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

func declarable(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] || name == DataVar || reservedWords[name] || !identPattern.MatchString(name) {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
