// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import "time"

// Args holds a command's parsed keyword bindings, keyed by destination
// name. A key is present only if its flag was given or the parameter
// has a concrete default.
type Args map[string]interface{}

// Has reports whether a value is bound for name.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string bound to name, or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the bool bound to name, or false.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Int returns the integer bound to name, or 0.
func (a Args) Int(name string) int {
	switch v := a[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// Float returns the float bound to name, or 0.
func (a Args) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	}
	return 0
}

// Duration returns the duration bound to name, or 0.
func (a Args) Duration(name string) time.Duration {
	d, _ := a[name].(time.Duration)
	return d
}

// Slice returns the flattened values of a repeated flag, or nil.
func (a Args) Slice(name string) []interface{} {
	s, _ := a[name].([]interface{})
	return s
}

// Strings returns the flattened values of a repeated string flag.
func (a Args) Strings(name string) []string {
	var out []string
	for _, v := range a.Slice(name) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Ints returns the flattened values of a repeated integer flag.
func (a Args) Ints(name string) []int {
	var out []int
	for _, v := range a.Slice(name) {
		if i, ok := v.(int); ok {
			out = append(out, i)
		}
	}
	return out
}
