// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"io"
	"strings"

	"github.com/posener/complete/v2"
)

// A static mirror of the command tree for github.com/posener/complete.
// The mirror only enumerates command and flag names; the completion
// library does all matching. Main wires it up automatically; to install
// completion for a program, run it with COMP_INSTALL=1.

type completer struct {
	g         *Group
	c         *Command
	noDisable bool // parent group's disable-flag policy, for leaves
}

// Completer returns a completion mirror of the tree rooted at g.
func (g *Group) Completer() complete.Completer {
	return completer{g: g}
}

func (t completer) SubCmdList() []string {
	if t.g == nil {
		return nil
	}
	var names []string
	for _, m := range t.g.members() {
		name := m.name()
		if strings.HasPrefix(name, internalPrefix) {
			continue
		}
		names = append(names, normalizeName(name, t.g.CaseSensitive))
	}
	return names
}

func (t completer) SubCmdGet(cmd string) complete.Completer {
	if t.g == nil {
		return nil
	}
	for _, m := range t.g.members() {
		if normalizeName(m.name(), t.g.CaseSensitive) != cmd {
			continue
		}
		if m.sub != nil {
			return completer{g: m.sub}
		}
		return completer{c: m.leaf, noDisable: t.g.NoDisableFlags}
	}
	return nil
}

func (t completer) FlagList() []string {
	if t.c == nil {
		return nil
	}
	args, err := buildArgs(t.c, nil, t.noDisable, io.Discard)
	if err != nil {
		return nil
	}
	namer := newOptionNamer()
	var names []string
	for _, a := range args {
		long, _ := namer.assign(a.name)
		names = append(names, long)
	}
	return names
}

func (t completer) FlagGet(flag string) complete.Predictor { return nil }

func (t completer) ArgsGet() complete.Predictor { return nil }
