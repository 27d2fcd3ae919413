// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/posener/complete/v2"
	"github.com/spf13/pflag"
)

// The top-level dispatch loop.

// Main resolves os.Args against the tree and returns the process exit
// code: 0 on success or an explicit help request, 1 for an unrecognized
// command or a handler failure, 2 for an argument parse failure.
// Shell completion requests are answered before any parsing happens.
//
// The usual main function is
//
//	func main() {
//		os.Exit(tree.Main(context.Background()))
//	}
func (g *Group) Main(ctx context.Context) int {
	prog := filepath.Base(os.Args[0])
	complete.Complete(prog, g.Completer())
	return g.main(ctx, prog, os.Args[1:])
}

func (g *Group) main(ctx context.Context, prog string, args []string) int {
	err := g.run(ctx, prog, args)
	if err == nil {
		return 0
	}
	stderr := g.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var (
		he *helpErr
		ue *UnknownCommandError
		pe *ParseError
	)
	switch {
	case errors.As(err, &he):
		fmt.Fprint(os.Stdout, he.text)
		return 0
	case errors.As(err, &ue):
		fmt.Fprintln(stderr, ue.Error())
		fmt.Fprint(stderr, ue.help)
		return 1
	case errors.As(err, &pe):
		fmt.Fprint(stderr, pe.help)
		fmt.Fprintf(stderr, "\nError: %v\n", pe.Err)
		return 2
	default:
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}
}

// Run dispatches args (not including the program name) and returns the
// resulting error instead of exiting, for callers and tests that want
// to handle it themselves.
func (g *Group) Run(ctx context.Context, args []string) error {
	return g.run(ctx, g.Name, args)
}

func (g *Group) run(ctx context.Context, prog string, args []string) error {
	n := newNode(g, 1, nil, []string{prog})
	return n.dispatch(ctx, args)
}

// dispatch consumes the argv token at the position corresponding to the
// node's depth, resolves it in the registry, and either invokes a leaf
// with the parsed tail or recurses into a subtree with the tail.
func (n *node) dispatch(ctx context.Context, args []string) error {
	reg, err := n.registry()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return &ParseError{Err: errors.New("missing command"), help: n.helpText(reg)}
	}
	tok := args[0]
	if tok == "-h" || tok == "--help" {
		return &helpErr{text: n.helpText(reg)}
	}
	key := normalizeName(tok, n.group.CaseSensitive)
	e, ok := reg.entries[key]
	if strings.HasPrefix(tok, internalPrefix) || !ok {
		return &UnknownCommandError{
			Name:        tok,
			Suggestions: suggestCommands(key, reg.keys),
			help:        n.helpText(reg),
		}
	}
	if e.sub != nil {
		trail := append(append([]string(nil), n.trail...), tok)
		return newNode(e.sub, n.level+1, n, trail).dispatch(ctx, args[1:])
	}
	sch, err := buildSchema(n, e.leaf, tok)
	if err != nil {
		return err
	}
	bindings, err := sch.parse(args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return &helpErr{text: sch.helpText()}
		}
		return &ParseError{Err: err, help: sch.helpText()}
	}
	return e.leaf.Run(ctx, bindings)
}
