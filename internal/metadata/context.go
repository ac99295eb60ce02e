package metadata

import (
	"sort"
)

// Reserved key names
const (
	KeyDestDirName = "destDirName"
	KeyInPlace     = "inPlace"
	KeyNoEscape    = "noEscape"
)

// ReservedKeys lists every key whose value comes from the invocation
var ReservedKeys = []string{KeyDestDirName, KeyInPlace, KeyNoEscape}

// Reserved carries the invocation-derived values of the reserved keys
type Reserved struct {
	DestDirName string
	InPlace     bool
	NoEscape    bool
}

// Apply overwrites the reserved keys of data with r
func (r Reserved) Apply(data Context) {
	data[KeyDestDirName] = r.DestDirName
	data[KeyInPlace] = r.InPlace
	data[KeyNoEscape] = r.NoEscape
}

// IsReserved reports whether key is one of the reserved keys
func IsReserved(key string) bool {
	for _, k := range ReservedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Context is the metadata scope shared by prompts, filters and rendering
type Context map[string]interface{}

// Seed creates a context holding only the reserved keys
func Seed(r Reserved) Context {
	data := make(Context)
	r.Apply(data)
	return data
}

// Restore bulk-loads a saved snapshot into the context and re-applies r
func (c Context) Restore(saved map[string]interface{}, r Reserved) {
	for k, v := range saved {
		c[k] = v
	}
	r.Apply(c)
}

// Set stores value under key
func (c Context) Set(key string, value interface{}) {
	c[key] = value
}

// Has reports whether key is present
func (c Context) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Bool returns the value under key if it is a bool
func (c Context) Bool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

// String returns the value under key if it is a string
func (c Context) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Keys returns the context keys in sorted order
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of maps and slices held by the context
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Context:
		return t.Clone()
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}
