package prompt

import (
	"context"
	"errors"

	"github.com/aescanero/dago-scaffold/internal/eval/cel"
)

// ErrPrompt marks input collection failures
var ErrPrompt = errors.New("prompt failed")

// Type is the input kind of a question
type Type string

const (
	TypeInput    Type = "input"
	TypeString   Type = "string"
	TypeConfirm  Type = "confirm"
	TypeList     Type = "list"
	TypeCheckbox Type = "checkbox"
	TypePassword Type = "password"
	TypeNumber   Type = "number"
)

// Choice is one option of a list or checkbox question
type Choice struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Short string `json:"short,omitempty" yaml:"short,omitempty"`
}

// Spec describes one question
type Spec struct {
	Name    string
	Type    Type
	Message string
	Label   string
	Default interface{}
	Choices []Choice

	// When controls visibility; nil means always asked
	When cel.Condition

	// DefaultWhenHidden writes Default when When hides the question
	DefaultWhenHidden bool

	// Required rejects empty text answers
	Required bool
}

// Question is what the Asker presents
type Question struct {
	Name     string
	Type     Type
	Message  string
	Default  interface{}
	Choices  []Choice
	Required bool
}

// Question converts the spec into the form shown to the user
func (s Spec) Question() Question {
	msg := s.Message
	if msg == "" {
		msg = s.Label
	}
	if msg == "" {
		msg = s.Name
	}
	t := s.Type
	if t == "" {
		t = TypeInput
	}
	return Question{
		Name:     s.Name,
		Type:     t,
		Message:  msg,
		Default:  s.Default,
		Choices:  s.Choices,
		Required: s.Required,
	}
}

// Asker collects one answer from the user.
//
// Answer types by question type:
//   - confirm: bool
//   - input, string, password: string
//   - number: float64
//   - list: string (the choice value)
//   - checkbox: []string (the selected values)
type Asker interface {
	Ask(ctx context.Context, q Question) (interface{}, error)
}
