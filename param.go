// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Building one parameter's complete flag binding.

// undocumented is the help text used when a parameter or command has no
// documentation anywhere.
const undocumented = "FIXME: UNDOCUMENTED"

// disablePrefix marks a boolean parameter as an explicit disable flag:
// setting it drives the stripped destination key to false.
const disablePrefix = "no_"

// A Param declares one parameter of a command.
type Param struct {
	// Name is the parameter identifier. It determines the flag spelling
	// (underscores become dashes) and the destination key in Args.
	Name string

	// Type is the declared type. See resolveType for the accepted forms.
	// nil means text.
	Type interface{}

	// Default makes the parameter optional. nil means the parameter is
	// required (booleans excepted: an unset boolean binds false); None
	// means optional with no concrete value, in which case the key is
	// absent from Args when the flag is not given. A collection default
	// may be any slice; it is normalized to the shape parsed repeated
	// flags produce.
	Default interface{}

	// Doc is the parameter's help text. If empty, the tree's inherited
	// ArgDocs are consulted, then the undocumented sentinel.
	Doc string
}

// noneValue is the type of None.
type noneValue struct{}

// None is a Param default meaning "optional, no concrete value".
var None interface{} = noneValue{}

// arg is a parameter's derived flag binding, immutable once built.
type arg struct {
	name     string // declared name, including any disable prefix
	dest     string // destination key; name with the disable prefix stripped
	kind     argKind
	parser   parseFunc // element parser for kindCollection
	typeName string
	required bool
	help     string
	def      interface{} // nil when there is no concrete default
	negates  bool        // true for disable flags
}

// newArg derives the flag binding for one declared parameter.
// doc should already have fallen back through the inherited
// descriptions; pass the undocumented sentinel when nothing applies.
func newArg(p Param, doc string) (*arg, error) {
	r, err := resolveType(p.Type)
	if err != nil {
		return nil, &TypeError{Param: p.Name, Err: err}
	}
	def := p.Default
	if def == None {
		def = nil
	}
	a := &arg{
		name:     p.Name,
		dest:     p.Name,
		kind:     r.kind,
		parser:   r.parser,
		typeName: r.typeName,
		help:     doc,
	}
	switch r.kind {
	case kindBool:
		a.required = false
		if strings.HasPrefix(p.Name, disablePrefix) {
			a.negates = true
			a.dest = strings.TrimPrefix(p.Name, disablePrefix)
			if doc != undocumented && def == true {
				a.help = "Explicitly disable " + strings.ReplaceAll(a.dest, "_", " ")
			}
			// The disable flag itself carries no default; the positive
			// counterpart owns the destination's initial value.
		} else {
			a.def = def
			if def == true {
				a.help = doc + " [enabled by default]"
			} else if def == false {
				a.help = doc + " [disabled by default]"
			}
			// A presence flag that is never given is concretely false.
			// Only an explicit None default leaves the key absent.
			if p.Default == nil {
				a.def = false
			}
		}
	case kindCollection:
		a.required = p.Default == nil
		a.def = collectionDefault(def)
	default:
		a.required = p.Default == nil
		a.def = def
		if def != nil {
			a.help = fmt.Sprintf("%s [default: %q]", doc, fmt.Sprint(def))
		}
	}
	return a, nil
}

// collectionDefault normalizes a concrete slice or array default to the
// []interface{} shape that parsed repeated flags produce, so handlers
// see one shape either way.
func collectionDefault(def interface{}) interface{} {
	if def == nil {
		return nil
	}
	if _, ok := def.([]interface{}); ok {
		return def
	}
	rv := reflect.ValueOf(def)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return def
	}
	vs := make([]interface{}, rv.Len())
	for i := range vs {
		vs[i] = rv.Index(i).Interface()
	}
	return vs
}

// validateBools rejects ambiguous boolean naming within one signature:
// a double-negative no_no_ name, and a command declaring both x and
// no_x. These are errors regardless of policy; the policy only decides
// whether they abort registry construction or skip the command.
func validateBools(c *Command) error {
	names := make(map[string]bool)
	for _, p := range c.Params {
		names[p.Name] = true
	}
	for _, p := range c.Params {
		r, err := resolveType(p.Type)
		if err != nil || r.kind != kindBool {
			continue
		}
		if strings.HasPrefix(p.Name, disablePrefix+disablePrefix) {
			return &ConflictError{
				Command: c.Name,
				Param:   p.Name,
				Reason:  "double negative " + disablePrefix + disablePrefix + " prefix",
			}
		}
		if strings.HasPrefix(p.Name, disablePrefix) {
			base := strings.TrimPrefix(p.Name, disablePrefix)
			if names[base] {
				return &ConflictError{
					Command: c.Name,
					Param:   p.Name,
					Reason:  fmt.Sprintf("both %q and %q are declared, which makes the flag semantics ambiguous", base, p.Name),
				}
			}
		}
	}
	return nil
}

// buildArgs derives the ordered flag bindings for a command: one arg
// per declared parameter, with a synthetic disable flag appended
// immediately after each positive boolean that defaults to true.
// Warnings (skipped auto-generation) go to w.
func buildArgs(c *Command, docs map[string]string, noDisable bool, w io.Writer) ([]*arg, error) {
	if err := validateBools(c); err != nil {
		return nil, err
	}
	names := make(map[string]bool)
	for _, p := range c.Params {
		names[p.Name] = true
	}
	var args []*arg
	for _, p := range c.Params {
		if p.Name == "" {
			return nil, errors.New("parameter with empty name")
		}
		doc := p.Doc
		if doc == "" {
			doc = docs[p.Name]
		}
		if doc == "" {
			doc = undocumented
		}
		a, err := newArg(p, doc)
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		if noDisable || a.kind != kindBool || a.negates || p.Default != true {
			continue
		}
		noName := disablePrefix + p.Name
		if names[noName] {
			fmt.Fprintf(w, "Warning: skipping auto-generation of --%s because parameter %q is explicitly defined\n",
				strings.ReplaceAll(noName, "_", "-"), noName)
			continue
		}
		na, err := newArg(Param{Name: noName, Type: Bool, Default: true}, doc)
		if err != nil {
			return nil, err
		}
		args = append(args, na)
	}
	return args, nil
}
