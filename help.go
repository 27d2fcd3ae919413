// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"fmt"
	"strings"
)

// Help and usage rendering.

// helpText renders a tree node's help: a synopsis built from the argv
// tokens consumed so far, the group's documentation verbatim, and a
// column-aligned listing of every command at this level.
func (n *node) helpText(reg *registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s <command> [<args>]\n", strings.Join(n.trail, " "))
	if n.group.Doc != "" {
		fmt.Fprintf(&b, "\n%s\n", n.group.Doc)
	}
	if reg == nil || len(reg.keys) == 0 {
		return b.String()
	}
	width := 0
	for _, k := range reg.keys {
		if d := reg.entries[k].display; len(d) > width {
			width = len(d)
		}
	}
	width += 6
	b.WriteString("\navailable commands:\n")
	for _, k := range reg.keys {
		e := reg.entries[k]
		doc := e.doc()
		fmt.Fprintf(&b, "  %-*s%s\n", width, e.display, firstLine(doc))
	}
	return b.String()
}

// doc returns the entry's own description, or the undocumented
// sentinel.
func (e entry) doc() string {
	var d string
	if e.leaf != nil {
		d = e.leaf.Doc
	} else {
		d = e.sub.Doc
	}
	if d == "" {
		return undocumented
	}
	return d
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// helpText renders a leaf command's help: the usage line, the command's
// documentation, and the flag tables with required flags in their own
// section.
func (s *schema) helpText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s\n", s.usage)
	if s.cmd.Doc != "" {
		fmt.Fprintf(&b, "\n%s\n", s.cmd.Doc)
	}
	if s.reqFlags.HasFlags() {
		b.WriteString("\nrequired arguments:\n")
		b.WriteString(s.reqFlags.FlagUsages())
	}
	b.WriteString("\noptional arguments:\n")
	b.WriteString(s.optFlags.FlagUsages())
	b.WriteString("  -h, --help   show this help message and exit\n")
	return b.String()
}
