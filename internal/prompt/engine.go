package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aescanero/dago-scaffold/internal/metadata"
	"go.uber.org/zap"
)

// Engine asks visible questions and records the answers
type Engine struct {
	asker  Asker
	logger *zap.Logger
}

// NewEngine creates a new prompt engine
func NewEngine(asker Asker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{asker: asker, logger: logger}
}

// Run processes specs in order, writing answers into data.
// The first failure aborts and is returned wrapped in ErrPrompt.
func (e *Engine) Run(ctx context.Context, specs []Spec, data metadata.Context) error {
	for _, spec := range specs {
		visible, err := e.visible(ctx, spec, data)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPrompt, spec.Name, err)
		}

		if !visible {
			if spec.DefaultWhenHidden && spec.Default != nil {
				data.Set(spec.Name, spec.Default)
			}
			e.logger.Debug("prompt hidden", zap.String("prompt", spec.Name))
			continue
		}

		answer, err := e.asker.Ask(ctx, spec.Question())
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPrompt, spec.Name, err)
		}

		value, err := normalize(spec.Question(), answer)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPrompt, spec.Name, err)
		}
		data.Set(spec.Name, value)

		e.logger.Debug("prompt answered", zap.String("prompt", spec.Name))
	}
	return nil
}

func (e *Engine) visible(ctx context.Context, spec Spec, data metadata.Context) (bool, error) {
	if spec.When == nil {
		return true, nil
	}
	return spec.When.Holds(ctx, data)
}

// Confirm asks a single yes/no question outside of a template's specs
func Confirm(ctx context.Context, asker Asker, name, message string, def bool) (bool, error) {
	answer, err := asker.Ask(ctx, Question{Name: name, Type: TypeConfirm, Message: message, Default: def})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrPrompt, name, err)
	}
	b, ok := answer.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s: expected a yes/no answer, got %T", ErrPrompt, name, answer)
	}
	return b, nil
}

// normalize shapes an answer for the metadata context:
// checkbox selections become a flag per declared choice and quotes in
// text answers are escaped so they can sit inside JSON/JS string literals.
func normalize(q Question, answer interface{}) (interface{}, error) {
	switch v := answer.(type) {
	case []string:
		return selection(q.Choices, v), nil
	case []interface{}:
		picked := make([]string, len(v))
		for i, choice := range v {
			picked[i] = fmt.Sprint(choice)
		}
		return selection(q.Choices, picked), nil
	case string:
		if q.Type == TypeNumber {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("not a number: %q", v)
			}
			return f, nil
		}
		return strings.ReplaceAll(v, `"`, `\"`), nil
	case int:
		return float64(v), nil
	default:
		return answer, nil
	}
}

// selection maps every choice value to whether it was picked. Picked
// values outside the declared choices are kept as true.
func selection(choices []Choice, picked []string) map[string]interface{} {
	set := make(map[string]interface{}, len(choices)+len(picked))
	for _, c := range choices {
		set[c.Value] = false
	}
	for _, p := range picked {
		set[p] = true
	}
	return set
}
