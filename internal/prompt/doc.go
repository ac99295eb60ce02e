// Package prompt collects answers for a template's questions.
//
// Specs are processed in list order. Each spec's visibility condition sees
// the answers given so far, so later questions can depend on earlier ones.
// Answers are written into the metadata context under the spec name.
//
// Example usage:
//
//	engine := prompt.NewEngine(prompt.NewTerminal(os.Stdin, os.Stdout), logger)
//	err := engine.Run(ctx, []prompt.Spec{
//	    {Name: "useTs", Type: prompt.TypeConfirm, Message: "Use TypeScript?", Default: false},
//	    {Name: "strict", Type: prompt.TypeConfirm, Message: "Strict mode?", When: evaluator.Condition("useTs")},
//	}, data)
//
// The widget that actually talks to the user sits behind the Asker
// interface. Terminal reads lines from an io.Reader; Scripted replays
// canned answers.
package prompt
