package prompt

import (
	"context"
	"fmt"
	"sync"
)

// Scripted answers questions from a fixed table. Questions missing from
// the table get their default when UseDefaults is set, otherwise an error.
type Scripted struct {
	Answers     map[string]interface{}
	UseDefaults bool
	Err         error

	mu    sync.Mutex
	asked []string
}

// NewScripted creates a scripted asker
func NewScripted(answers map[string]interface{}) *Scripted {
	return &Scripted{Answers: answers}
}

// Ask returns the scripted answer for q
func (s *Scripted) Ask(ctx context.Context, q Question) (interface{}, error) {
	s.mu.Lock()
	s.asked = append(s.asked, q.Name)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if answer, ok := s.Answers[q.Name]; ok {
		return answer, nil
	}
	if s.UseDefaults {
		return defaultAnswer(q), nil
	}
	return nil, fmt.Errorf("no scripted answer for %q", q.Name)
}

// Asked returns the names of the questions asked so far, in order
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

func defaultAnswer(q Question) interface{} {
	switch q.Type {
	case TypeConfirm:
		b, _ := q.Default.(bool)
		return b
	case TypeList:
		if len(q.Choices) == 0 {
			return ""
		}
		return q.Choices[defaultIndex(q)].Value
	case TypeCheckbox:
		return defaultSelection(q)
	default:
		if q.Default == nil {
			return ""
		}
		return fmt.Sprint(q.Default)
	}
}
