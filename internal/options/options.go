// Package options provides the per-template option object: questions,
// filter rules, substitution helpers, lifecycle hooks and the completion
// report.
//
// Options are read from meta.json, meta.yaml or meta.yml in the template
// directory. Go callers may further populate helpers and hooks before the
// run starts, or from the Before hook.
package options

import (
	"github.com/aescanero/dago-scaffold/internal/console"
	"github.com/aescanero/dago-scaffold/internal/eval/cel"
	"github.com/aescanero/dago-scaffold/internal/filter"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"go.uber.org/zap"
)

// Helpers is the bag handed to hooks
type Helpers struct {
	Logger  *zap.Logger
	Console *console.Console
}

// CompleteHelpers is the bag handed to a custom completion handler
type CompleteHelpers struct {
	Logger  *zap.Logger
	Console *console.Console
	Files   tree.Files
}

// Hook runs template-specific code against the file map.
// Returning an error aborts the run.
type Hook func(files tree.Files, data metadata.Context, opts *Options, h Helpers) error

// CompleteFunc replaces the completion message
type CompleteFunc func(data metadata.Context, h CompleteHelpers)

// Options is everything a template declares about itself
type Options struct {
	Name              string
	Prompts           []prompt.Spec
	Filters           []filter.Rule
	Helpers           map[string]interface{}
	SkipInterpolation []string
	CompleteMessage   string

	// Before runs first, before the saved config check
	Before Hook
	// Hook runs after rendering; when set, After is ignored
	Hook Hook
	// After runs after rendering
	After Hook

	Complete CompleteFunc

	// Evaluator compiles the conditions declared by the template
	Evaluator *cel.Evaluator
}

// PostHook returns the hook that runs after rendering, if any
func (o *Options) PostHook() Hook {
	if o.Hook != nil {
		return o.Hook
	}
	return o.After
}

// Prompt returns the spec named name
func (o *Options) Prompt(name string) (*prompt.Spec, bool) {
	for i := range o.Prompts {
		if o.Prompts[i].Name == name {
			return &o.Prompts[i], true
		}
	}
	return nil, false
}

// RegisterHelper adds a substitution helper for this template only
func (o *Options) RegisterHelper(name string, fn interface{}) {
	if o.Helpers == nil {
		o.Helpers = make(map[string]interface{})
	}
	o.Helpers[name] = fn
}
