// Package cel provides a CEL (Common Expression Language) evaluator for the
// conditions a template declares: prompt visibility (`when`) and file filter
// rules.
//
// Every declared identifier (prompt names and reserved keys) is a dyn
// variable; the whole metadata context is also bound as `data`.
//
// Example usage:
//
//	evaluator, err := cel.NewEvaluator([]string{"useTs", "router"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cond := evaluator.Condition("useTs && router")
//	ok, err := cond.Holds(ctx, metadata.Context{"useTs": true, "router": false})
//	// ok == false
//
// Declared identifiers missing from the context evaluate to null, so a bare
// `router` is false when the router prompt was never asked. Use
// `has(data.router)` to guard negations.
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - List operations: in, size
//   - Map access: data.field, data["field"], features.router
package cel
