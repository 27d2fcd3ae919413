// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Resolution of declared parameter types into value parsers.

// parseFunc is the type of functions that parse flag value strings into values.
type parseFunc func(string) (interface{}, error)

// argKind classifies how a parameter consumes its flag.
type argKind int

const (
	kindScalar     argKind = iota // one value, parsed
	kindBool                      // presence flag, no value required
	kindCollection                // repeatable, each occurrence contributes values
)

// resolved is the parsing strategy derived from a declared type. For
// kindCollection the parser converts a single element.
type resolved struct {
	kind     argKind
	parser   parseFunc
	typeName string // displayed as the flag's value name in usage text
}

// union is the marker returned by Union and Optional.
type union struct {
	alts []interface{}
}

// Union declares a multi-way union type. Only the first non-nil
// alternative is considered; the rest are ignored. This mirrors the
// behavior of the systems this package interoperates with and is kept
// for compatibility even though it can silently discard alternatives.
func Union(alts ...interface{}) interface{} {
	return union{alts: alts}
}

// Optional declares t as optional: Union(t, nil).
func Optional(t interface{}) interface{} {
	return union{alts: []interface{}{t, nil}}
}

// Exported type tags for Param.Type. A sample value ("", 0, false, ...)
// or any reflect.Type works equally well.
var (
	String   = reflect.TypeOf("")
	Bool     = reflect.TypeOf(false)
	Int      = reflect.TypeOf(int(0))
	Int64    = reflect.TypeOf(int64(0))
	Uint     = reflect.TypeOf(uint(0))
	Float    = reflect.TypeOf(float64(0))
	Duration = reflect.TypeOf(time.Duration(0))
	Strings  = reflect.TypeOf([]string(nil))
	Ints     = reflect.TypeOf([]int(nil))
	Floats   = reflect.TypeOf([]float64(nil))
)

// builtinTypes is the table that textual (forward-reference-style) type
// names are resolved against. Names outside this table are errors,
// never silently defaulted.
var builtinTypes = map[string]reflect.Type{
	"string":   String,
	"bool":     Bool,
	"int":      Int,
	"int64":    Int64,
	"uint":     Uint,
	"uint64":   reflect.TypeOf(uint64(0)),
	"float32":  reflect.TypeOf(float32(0)),
	"float64":  Float,
	"duration": Duration,
}

// resolveType normalizes a declared type into a parsing strategy.
//
// nil means text. A union resolves to its first non-nil alternative.
// A string names a builtin type. A func(string) (interface{}, error) is
// used as the conversion directly. Anything else is resolved by its
// reflected type: pointers unwrap to their element, slices and arrays
// become collections of their element type, maps parse as literal
// structures, and types implementing encoding.TextUnmarshaler convert
// through that interface.
func resolveType(declared interface{}) (resolved, error) {
	switch d := declared.(type) {
	case nil:
		return resolved{kind: kindScalar, parser: identityParser, typeName: "string"}, nil
	case union:
		for _, alt := range d.alts {
			if alt != nil {
				return resolveType(alt)
			}
		}
		return resolved{kind: kindScalar, parser: identityParser, typeName: "string"}, nil
	case string:
		t, ok := builtinTypes[d]
		if !ok {
			return resolved{}, fmt.Errorf("cannot resolve type name %q", d)
		}
		return resolveReflect(t)
	case func(string) (interface{}, error):
		return resolved{kind: kindScalar, parser: d, typeName: "value"}, nil
	case parseFunc:
		return resolved{kind: kindScalar, parser: d, typeName: "value"}, nil
	case reflect.Type:
		return resolveReflect(d)
	default:
		return resolveReflect(reflect.TypeOf(declared))
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func resolveReflect(t reflect.Type) (resolved, error) {
	switch t.Kind() {
	case reflect.Ptr:
		// The optional wrapper: unwrap and recurse.
		return resolveReflect(t.Elem())
	case reflect.Bool:
		return resolved{kind: kindBool, parser: boolParser, typeName: "bool"}, nil
	case reflect.Slice, reflect.Array:
		el, err := resolveReflect(t.Elem())
		if err != nil {
			return resolved{}, err
		}
		// For nested collections only the element's own element parser
		// is meaningful.
		return resolved{kind: kindCollection, parser: el.parser, typeName: el.typeName}, nil
	case reflect.Map:
		return resolved{kind: kindScalar, parser: literalParser, typeName: "literal"}, nil
	case reflect.Interface:
		return resolved{kind: kindScalar, parser: literalParser, typeName: "literal"}, nil
	}
	if reflect.PtrTo(t).Implements(textUnmarshalerType) {
		return resolved{kind: kindScalar, parser: textParser(t), typeName: strings.ToLower(t.Name())}, nil
	}
	p, err := parserForType(t)
	if err != nil {
		return resolved{}, err
	}
	return resolved{kind: kindScalar, parser: p, typeName: typeName(t)}, nil
}

func typeName(t reflect.Type) string {
	if t == Duration {
		return "duration"
	}
	return t.Kind().String()
}

func identityParser(s string) (interface{}, error) { return s, nil }

func boolParser(s string) (interface{}, error) {
	return strconv.ParseBool(s)
}

// literalParser evaluates a literal structure (mapping, sequence,
// scalar) without executing anything. YAML syntax accepts both
// {a: 1, b: 2} style mappings and plain JSON.
func literalParser(s string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("bad literal %q: %v", s, err)
	}
	return v, nil
}

// textParser converts through the type's UnmarshalText method.
func textParser(t reflect.Type) parseFunc {
	return func(s string) (interface{}, error) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return p.Elem().Interface(), nil
	}
}

// parserForType returns a parser for scalar types.
func parserForType(t reflect.Type) (parseFunc, error) {
	if t == Duration {
		return func(s string) (interface{}, error) {
			return time.ParseDuration(s)
		}, nil
	}

	convert := func(v interface{}) interface{} {
		return reflect.ValueOf(v).Convert(t).Interface()
	}

	switch t.Kind() {
	case reflect.String:
		return func(s string) (interface{}, error) {
			return convert(s), nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string) (interface{}, error) {
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, err
			}
			return convert(i), nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(s string) (interface{}, error) {
			u, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, err
			}
			return convert(u), nil
		}, nil
	case reflect.Float32, reflect.Float64:
		return func(s string) (interface{}, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, err
			}
			return convert(f), nil
		}, nil
	default:
		return nil, fmt.Errorf("cannot parse string into %s", t)
	}
}
