// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"fmt"
	"strings"
)

// Error types reported during registry construction and dispatch.

// A TypeError reports a declared parameter type that cannot be turned
// into a value parser.
type TypeError struct {
	Param string // parameter name
	Err   error  // underlying reason
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("invalid type for parameter %q: %v", e.Param, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

// A ConflictError reports ambiguous boolean flag naming within one
// command signature: a double-negative "no_no_" parameter, or a command
// that declares both x and no_x.
type ConflictError struct {
	Command string
	Param   string
	Reason  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("command %q: parameter %q: %s", e.Command, e.Param, e.Reason)
}

// A CollisionError reports two members of one tree node whose names
// normalize to the same registry key. The later declaration wins in the
// registry; under strict validation the collision is fatal.
type CollisionError struct {
	Key    string // normalized key
	First  string // earlier-declared member
	Second string // later-declared member, the one kept
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("command name collision: %q and %q both normalize to %q", e.First, e.Second, e.Key)
}

// An UnknownCommandError reports an argument token that matched no
// registered command at the current tree level.
type UnknownCommandError struct {
	Name        string   // the token as given
	Suggestions []string // registered keys that look similar

	help string // rendered help for the node, printed by Main
}

func (e *UnknownCommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unrecognized command: %q", e.Name)
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// A ParseError wraps a failure from the flag-parsing primitive: an
// unknown flag, a missing required flag, or a value that did not
// convert.
type ParseError struct {
	Err error

	help string // rendered help for the command, printed by Main
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// helpErr carries rendered help text out of a dispatch that hit -h or
// --help. Main prints it to stdout and exits 0.
type helpErr struct {
	text string
}

func (e *helpErr) Error() string { return "help requested" }
