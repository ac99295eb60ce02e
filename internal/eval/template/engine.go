package template

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/aymerick/raymond"
)

var mustache = regexp.MustCompile(`{{([^{}]+)}}`)

// HasMustache reports whether text contains a placeholder token
func HasMustache(text string) bool {
	return mustache.MatchString(text)
}

// Engine renders Handlebars templates with a private helper scope
type Engine struct {
	helpers   map[string]interface{}
	unescaped map[string]interface{}
	cache     map[cacheKey]*raymond.Template
	mu        sync.RWMutex
}

type cacheKey struct {
	source   string
	noEscape bool
}

// NewEngine creates an engine with the built-in helpers plus custom ones.
// A custom helper replaces a built-in of the same name.
func NewEngine(custom map[string]interface{}) *Engine {
	helpers := builtinHelpers()
	for name, fn := range custom {
		helpers[name] = fn
	}

	unescaped := make(map[string]interface{}, len(helpers))
	for name, fn := range helpers {
		unescaped[name] = unescapedHelper(fn)
	}

	return &Engine{
		helpers:   helpers,
		unescaped: unescaped,
		cache:     make(map[cacheKey]*raymond.Template),
	}
}

// Render renders a template with the given data. With noEscape set,
// neither substituted strings nor helper results are HTML-escaped.
func (e *Engine) Render(templateStr string, data interface{}, noEscape bool) (string, error) {
	tmpl, err := e.getTemplate(templateStr, noEscape)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	if noEscape {
		data = unescaped(data)
	}

	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string, noEscape bool) (*raymond.Template, error) {
	key := cacheKey{source: templateStr, noEscape: noEscape}

	e.mu.RLock()
	if tmpl, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[key]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if noEscape {
		tmpl.RegisterHelpers(e.unescaped)
	} else {
		tmpl.RegisterHelpers(e.helpers)
	}

	e.cache[key] = tmpl

	return tmpl, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[cacheKey]*raymond.Template)
}

// unescaped wraps every reachable string as a SafeString
func unescaped(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return raymond.SafeString(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[k] = unescaped(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = unescaped(inner)
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = raymond.SafeString(inner)
		}
		return out
	default:
		return v
	}
}

var (
	stringType = reflect.TypeOf("")
	safeType   = reflect.TypeOf(raymond.SafeString(""))
	anyType    = reflect.TypeOf((*interface{})(nil)).Elem()
)

// unescapedHelper wraps fn so that string results come back as
// SafeString. Helpers returning other types are left as they are.
func unescapedHelper(fn interface{}) interface{} {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || t.NumOut() != 1 {
		return fn
	}

	out := t.Out(0)
	switch out {
	case stringType:
		out = safeType
	case anyType:
	default:
		return fn
	}

	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}

	wrapped := reflect.MakeFunc(reflect.FuncOf(in, []reflect.Type{out}, t.IsVariadic()), func(args []reflect.Value) []reflect.Value {
		var res reflect.Value
		if t.IsVariadic() {
			res = v.CallSlice(args)[0]
		} else {
			res = v.Call(args)[0]
		}
		if s, ok := res.Interface().(string); ok {
			return []reflect.Value{reflect.ValueOf(raymond.SafeString(s))}
		}
		return []reflect.Value{res}
	})
	return wrapped.Interface()
}
