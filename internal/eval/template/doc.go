// Package template provides the Handlebars engine used to substitute
// placeholder tokens in template files and in the completion message.
//
// Each Engine carries its own helper scope. Helpers are registered on every
// parsed template rather than on raymond's process-wide registry, so two
// generation runs never see each other's helpers.
//
// Example usage:
//
//	engine := template.NewEngine(map[string]interface{}{
//	    "shout": func(s string) string { return strings.ToUpper(s) + "!" },
//	})
//
//	out, err := engine.Render("Hello {{shout name}}", map[string]interface{}{"name": "ada"}, true)
//	// out == "Hello ADA!"
//
// Built-in helpers:
//   - if_eq / unless_eq - Block helpers on strict equality
//   - uppercase, lowercase, trim - String transforms
//   - default - Return default value if first arg is empty
//   - eq, ne - Equality comparison for use in subexpressions
//   - contains - Check if string contains substring
//   - join - Join array elements with separator
//   - len - Get length of array/string/map
//
// Example with block helpers:
//
//	{{#if_eq lintConfig "standard"}}standard{{else}}other{{/if_eq}}
//	{{#unless_eq build "runtime"}}compiler only{{/unless_eq}}
package template
