// Copyright 2021 Jonathan Amsterdam.

/*
Package cmdtree builds command-line programs from a tree of typed
command declarations. Given the tree, it derives the complete flag
schema for every command (spellings, requiredness, value parsers and
help text) and resolves the program's argument vector against it,
descending one tree level per argument until a concrete handler runs
with fully-typed bindings.

A command is declared as a structure pairing a handler with an explicit
parameter list:

	releases.Register(&cmdtree.Command{
		Name: "bump",
		Doc:  "bump a release version",
		Params: []cmdtree.Param{
			{Name: "name", Type: cmdtree.String, Doc: "release to bump"},
			{Name: "level", Type: cmdtree.String, Default: "patch"},
			{Name: "dry_run", Type: cmdtree.Bool, Default: false},
		},
		Run: func(ctx context.Context, args cmdtree.Args) error {
			return bump(args.String("name"), args.String("level"), args.Bool("dry_run"))
		},
	})

Each parameter becomes a flag: the long form replaces underscores with
dashes (--dry-run), and a short form is derived from the first letter of
the name when no earlier parameter of the same command has claimed it.
A parameter with no Default is required; defaults are rendered into the
help text.

# Types

Param.Type accepts several forms. nil means text. A reflect.Type or a
sample value resolves by kind: booleans become presence flags, slices
become repeatable flags whose occurrences are collected into one
sequence, maps parse their value as a literal structure, pointers
unwrap to their element (the optional wrapper), and string, integer,
float and time.Duration kinds parse with the obvious conversions. A
string such as "int" names a builtin type. A func(string) (interface{},
error) is used as the conversion directly, and types implementing
encoding.TextUnmarshaler convert through that interface. Union and
Optional declare union types; only the first non-nil alternative is
used.

# Booleans

Boolean parameters are never required. A boolean defaulting to true
also generates a --no-x flag that explicitly drives the same
destination to false, unless a parameter literally named no_x exists or
generation is turned off with Group.NoDisableFlags. Declaring a
parameter whose name starts with "no_" makes it such a disable flag by
hand. Double negatives (no_no_x) and declaring both x and no_x in one
command are errors.

# Trees

Groups nest to any depth. At depth n the nth argument selects the
command; a group consumes one argument and hands the rest to the
selected member. Command names are matched case-insensitively with
underscores and dashes interchangeable, unless the group sets
CaseSensitive. An unmatched name prints the level's help along with
similarly-spelled candidates and exits with code 1; parse failures
print the command's help and exit with code 2.

Signature problems (a bad parameter type, ambiguous boolean naming) and
command-name collisions are detected when a level's registry is built,
before any parsing. By default they are fatal; Group.LenientTypes
demotes signature problems to skipping the offending command, and
Group.LenientValidation demotes collisions to warnings with the
later declaration winning.

# Execution

Once the tree is declared, the entire main function can be

	func main() {
		os.Exit(tree.Main(context.Background()))
	}

For more control, call Group.Run with a context and an argument slice
and handle the error yourself.

# Completion

Shell completion for common shells is supported with the
github.com/posener/complete/v2 package. Completion logic is
automatically invoked if your program calls Group.Main. To install
completion for a program, run it with the COMP_INSTALL environment
variable set to 1.
*/
package cmdtree
