// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"context"
	"io"
	"os"
)

// internalPrefix marks a member as internal: it is excluded from the
// registry, and argv tokens carrying it are rejected.
const internalPrefix = "_"

// A Command is a concrete, invocable handler at some tree depth. Its
// Params completely describe its command-line flags.
type Command struct {
	Name   string
	Doc    string // free text, rendered verbatim in help
	Params []Param

	// Run is invoked with the parsed keyword bindings after a
	// successful parse.
	Run func(ctx context.Context, args Args) error
}

// A Group is one level of the command tree. Selecting its name on the
// command line descends into its members function.
//
// The zero values of the policy fields give the default behavior:
// case-insensitive command names, strict signature and collision
// checking, and automatic --no-x generation for booleans that default
// to true.
type Group struct {
	Name    string
	Doc     string
	ArgDocs map[string]string // parameter name -> help text, inherited by descendants

	Commands []*Command
	Groups   []*Group

	// CaseSensitive keeps command names distinct by case instead of
	// folding them to lower case.
	CaseSensitive bool

	// LenientTypes excludes commands with invalid signatures from the
	// registry with a warning, instead of failing construction.
	LenientTypes bool

	// LenientValidation demotes command-name collisions from errors to
	// warnings. The later declaration wins either way.
	LenientValidation bool

	// NoDisableFlags turns off synthetic --no-x flag generation.
	NoDisableFlags bool

	// Stderr receives warnings and error output. Defaults to os.Stderr.
	Stderr io.Writer
}

// New returns an empty command tree root.
func New(name, doc string) *Group {
	return &Group{Name: name, Doc: doc}
}

// Register adds a leaf command to g and returns it.
func (g *Group) Register(c *Command) *Command {
	g.Commands = append(g.Commands, c)
	return c
}

// Subtree adds a nested command group to g and returns it for further
// registration.
func (g *Group) Subtree(name, doc string) *Group {
	sub := &Group{Name: name, Doc: doc}
	g.Groups = append(g.Groups, sub)
	return sub
}

// member is one enumerable entry of a group: a leaf or a subtree.
type member struct {
	leaf *Command
	sub  *Group
}

func (m member) name() string {
	if m.leaf != nil {
		return m.leaf.Name
	}
	return m.sub.Name
}

// members returns the group's entries in declaration order: commands
// first, then subtrees.
func (g *Group) members() []member {
	ms := make([]member, 0, len(g.Commands)+len(g.Groups))
	for _, c := range g.Commands {
		ms = append(ms, member{leaf: c})
	}
	for _, s := range g.Groups {
		ms = append(ms, member{sub: s})
	}
	return ms
}

// node is the runtime state for one tree level during a dispatch. The
// root node is built once per Run call; child nodes are built exactly
// when their subtree is selected and are discarded when the recursive
// call returns.
type node struct {
	group   *Group
	level   int   // 1-based depth
	parent  *node // no ownership
	top     *node // the root, shared by all descendants
	trail   []string
	argDocs map[string]string
	stderr  io.Writer

	reg    *registry
	regErr error
	built  bool
}

// newNode builds the runtime node for g. trail holds the argv tokens
// already consumed by ancestor levels, starting with the program name.
func newNode(g *Group, level int, parent *node, trail []string) *node {
	n := &node{group: g, level: level, parent: parent, trail: trail}
	docs := make(map[string]string)
	if parent != nil {
		n.top = parent.top
		for k, v := range parent.argDocs {
			docs[k] = v
		}
	} else {
		n.top = n
	}
	for k, v := range g.ArgDocs {
		docs[k] = v
	}
	n.argDocs = docs
	switch {
	case g.Stderr != nil:
		n.stderr = g.Stderr
	case parent != nil:
		n.stderr = parent.stderr
	default:
		n.stderr = os.Stderr
	}
	return n
}

// registry returns the node's command registry, built once for the
// node's lifetime.
func (n *node) registry() (*registry, error) {
	if !n.built {
		n.reg, n.regErr = buildRegistry(n)
		n.built = true
	}
	return n.reg, n.regErr
}
