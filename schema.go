// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// A command's parse contract: its flag declarations, built fresh per
// invocation and handed to the parsing primitive (spf13/pflag).

// optionNamer assigns flag spellings. The long form is always the
// parameter name with underscores replaced by dashes. The short form is
// the first letter of the name, granted to the first parameter that
// claims it; the tracker resets for every command.
type optionNamer struct {
	used map[rune]bool
}

func newOptionNamer() *optionNamer {
	return &optionNamer{used: make(map[rune]bool)}
}

func (o *optionNamer) assign(name string) (long, short string) {
	long = strings.ReplaceAll(name, "_", "-")
	r := rune(name[0])
	if ('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') && !o.used[r] {
		o.used[r] = true
		short = string(r)
	}
	return long, short
}

// cell is a destination slot. A positive boolean and its disable flag
// share one cell; whichever flag is written last wins.
type cell struct {
	set bool
	val interface{} // scalar value, bool, or [][]interface{} for collections
}

type scalarValue struct {
	a *arg
	c *cell
}

func (v *scalarValue) String() string { return "" }
func (v *scalarValue) Type() string   { return v.a.typeName }

func (v *scalarValue) Set(s string) error {
	x, err := v.a.parser(s)
	if err != nil {
		return err
	}
	v.c.set, v.c.val = true, x
	return nil
}

type boolValue struct {
	a *arg
	c *cell
}

func (v *boolValue) String() string { return "false" }
func (v *boolValue) Type() string   { return "bool" }

func (v *boolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if v.a.negates {
		b = !b
	}
	v.c.set, v.c.val = true, b
	return nil
}

type repeatedValue struct {
	a *arg
	c *cell
}

func (v *repeatedValue) String() string { return "" }
func (v *repeatedValue) Type() string   { return v.a.typeName }

func (v *repeatedValue) Set(s string) error {
	x, err := v.a.parser(s)
	if err != nil {
		return err
	}
	groups, _ := v.c.val.([][]interface{})
	v.c.set, v.c.val = true, append(groups, []interface{}{x})
	return nil
}

type schema struct {
	cmd      *Command
	args     []*arg
	cells    map[string]*cell
	flags    *pflag.FlagSet
	reqFlags *pflag.FlagSet // display only, the "required arguments" section
	optFlags *pflag.FlagSet // display only
	longs    map[*arg]string
	repeated map[string]*arg // flag spelling -> collection arg, for expand
	usage    string
	stderr   io.Writer
}

// buildSchema derives the full flag schema for a leaf command at node
// n. tok is the argv token that selected the command, used in the usage
// line.
func buildSchema(n *node, c *Command, tok string) (*schema, error) {
	args, err := buildArgs(c, n.argDocs, n.group.NoDisableFlags, n.stderr)
	if err != nil {
		return nil, err
	}
	s := &schema{
		cmd:      c,
		args:     args,
		cells:    make(map[string]*cell),
		longs:    make(map[*arg]string),
		repeated: make(map[string]*arg),
		usage:    strings.Join(append(append([]string(nil), n.trail...), tok), " ") + " [<args>]",
		stderr:   n.stderr,
	}
	newSet := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
		fs.SortFlags = false
		fs.SetOutput(io.Discard)
		fs.Usage = func() {}
		return fs
	}
	s.flags = newSet()
	s.reqFlags = newSet()
	s.optFlags = newSet()

	namer := newOptionNamer()
	for _, a := range args {
		cl := s.cells[a.dest]
		if cl == nil {
			cl = &cell{}
			s.cells[a.dest] = cl
		}
		long, short := namer.assign(a.name)
		s.longs[a] = long

		var v pflag.Value
		switch a.kind {
		case kindBool:
			v = &boolValue{a: a, c: cl}
		case kindCollection:
			v = &repeatedValue{a: a, c: cl}
			s.repeated["--"+long] = a
			if short != "" {
				s.repeated["-"+short] = a
			}
		default:
			v = &scalarValue{a: a, c: cl}
		}

		disp := s.optFlags
		if a.required {
			disp = s.reqFlags
		}
		for _, fs := range []*pflag.FlagSet{s.flags, disp} {
			fs.VarP(v, long, short, a.help)
			if a.kind == kindBool {
				fs.Lookup(long).NoOptDefVal = "true"
			}
		}
	}
	return s, nil
}

// expand rewrites greedy multi-value occurrences of repeated flags
// ("--tags a b") into one occurrence per value, which is the shape the
// parsing primitive binds. Everything after "--" passes through.
func (s *schema) expand(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); {
		t := argv[i]
		if t == "--" {
			out = append(out, argv[i:]...)
			break
		}
		if _, ok := s.repeated[t]; !ok {
			out = append(out, t)
			i++
			continue
		}
		j := i + 1
		for j < len(argv) && !strings.HasPrefix(argv[j], "-") {
			out = append(out, t, argv[j])
			j++
		}
		if j == i+1 {
			// No value followed; keep the bare flag so the primitive
			// reports the missing argument.
			out = append(out, t)
		}
		i = j
	}
	return out
}

// parse resolves argv against the schema and returns the keyword
// bindings for the handler. Keys with no value and no default are
// absent from the result; repeated flags are flattened one level in
// encounter order.
func (s *schema) parse(argv []string) (Args, error) {
	if err := s.flags.Parse(s.expand(argv)); err != nil {
		return nil, err
	}
	if rest := s.flags.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unrecognized arguments: %s", strings.Join(rest, " "))
	}

	res := Args{}
	var missing []string
	seen := make(map[string]bool)
	for _, a := range s.args {
		if seen[a.dest] {
			continue
		}
		seen[a.dest] = true
		cl := s.cells[a.dest]
		switch {
		case cl.set:
			v := cl.val
			if a.kind == kindCollection {
				var flat []interface{}
				for _, g := range v.([][]interface{}) {
					flat = append(flat, g...)
				}
				if len(flat) == 0 {
					fmt.Fprintf(s.stderr, "Warning: flag --%s collected no values\n", s.longs[a])
				}
				v = flat
			}
			res[a.dest] = v
		case a.def != nil:
			res[a.dest] = a.def
		case a.required:
			missing = append(missing, "--"+s.longs[a])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	return res, nil
}
