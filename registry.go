// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// The registry maps normalized command names to the callable members of
// one tree node.

// entry is the resolved target for a command name: exactly one of leaf
// and sub is non-nil.
type entry struct {
	display string // name as declared
	leaf    *Command
	sub     *Group
}

type registry struct {
	keys    []string // in declaration order
	entries map[string]entry
}

// normalizeName converts a member or argv token to its registry key:
// underscores become dashes, and the name is case-folded unless the
// node opted into case-sensitive commands.
func normalizeName(s string, caseSensitive bool) string {
	s = strings.ReplaceAll(s, "_", "-")
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}

// buildRegistry enumerates a node's members, validates every leaf's
// full parameter signature, and detects name collisions. Under the
// default strict policies, signature and collision problems abort
// construction; under the lenient policies the offending command is
// skipped (types) or the later declaration silently wins (collisions),
// with a warning either way.
func buildRegistry(n *node) (*registry, error) {
	g := n.group
	reg := &registry{entries: make(map[string]entry)}
	var merr *multierror.Error
	for _, m := range g.members() {
		name := m.name()
		if name == "" {
			merr = multierror.Append(merr, fmt.Errorf("group %q has a member with no name", g.Name))
			continue
		}
		if strings.HasPrefix(name, internalPrefix) {
			continue
		}
		if m.leaf != nil {
			if m.leaf.Run == nil {
				merr = multierror.Append(merr, fmt.Errorf("command %q has no Run function", name))
				continue
			}
			// Derive every flag binding now so bad signatures surface
			// before any parsing begins. Warnings are replayed when the
			// schema is built for real.
			if _, err := buildArgs(m.leaf, n.argDocs, g.NoDisableFlags, io.Discard); err != nil {
				if g.LenientTypes {
					fmt.Fprintf(n.stderr, "Warning: skipping command %q: %v\n", name, err)
				} else {
					merr = multierror.Append(merr, fmt.Errorf("command %q: %w", name, err))
				}
				continue
			}
		}
		key := normalizeName(name, g.CaseSensitive)
		if prev, ok := reg.entries[key]; ok {
			cerr := &CollisionError{Key: key, First: prev.display, Second: name}
			if g.LenientValidation {
				fmt.Fprintf(n.stderr, "Warning: %v\n", cerr)
			} else {
				merr = multierror.Append(merr, cerr)
			}
		} else {
			reg.keys = append(reg.keys, key)
		}
		// The later declaration wins whether or not the collision was fatal.
		reg.entries[key] = entry{display: name, leaf: m.leaf, sub: m.sub}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return reg, nil
}

// suggestCommands returns the registered keys that look like the
// unmatched token: one is a substring of the other, or they differ only
// in case and dash/underscore punctuation. Order follows declaration
// order.
func suggestCommands(token string, keys []string) []string {
	squash := func(s string) string {
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, "-", "")
		return strings.ReplaceAll(s, "_", "")
	}
	st := squash(token)
	var out []string
	for _, k := range keys {
		if strings.Contains(k, token) || strings.Contains(token, k) || squash(k) == st {
			out = append(out, k)
		}
	}
	return out
}
