// Copyright 2021 Jonathan Amsterdam.

package cmdtree

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func nopRun(context.Context, Args) error { return nil }

func TestNewArg(t *testing.T) {
	for _, test := range []struct {
		name         string
		param        Param
		doc          string
		wantDest     string
		wantRequired bool
		wantNegates  bool
		wantHelp     string
	}{
		{
			name:         "scalar without default is required",
			param:        Param{Name: "name", Type: String},
			doc:          "who to greet",
			wantDest:     "name",
			wantRequired: true,
			wantHelp:     "who to greet",
		},
		{
			name:     "scalar default rendered in help",
			param:    Param{Name: "port", Type: Int, Default: 8080},
			doc:      "listen port",
			wantDest: "port",
			wantHelp: `listen port [default: "8080"]`,
		},
		{
			name:     "bool never required",
			param:    Param{Name: "verbose", Type: Bool},
			doc:      "more detail",
			wantDest: "verbose",
			wantHelp: "more detail",
		},
		{
			name:     "bool enabled by default",
			param:    Param{Name: "cache", Type: Bool, Default: true},
			doc:      "use the cache",
			wantDest: "cache",
			wantHelp: "use the cache [enabled by default]",
		},
		{
			name:     "bool disabled by default",
			param:    Param{Name: "verbose", Type: Bool, Default: false},
			doc:      "more detail",
			wantDest: "verbose",
			wantHelp: "more detail [disabled by default]",
		},
		{
			name:        "disable flag strips prefix",
			param:       Param{Name: "no_cache", Type: Bool, Default: true},
			doc:         "use the cache",
			wantDest:    "cache",
			wantNegates: true,
			wantHelp:    "Explicitly disable cache",
		},
		{
			name:        "undocumented disable flag keeps sentinel",
			param:       Param{Name: "no_cache", Type: Bool, Default: true},
			doc:         undocumented,
			wantDest:    "cache",
			wantNegates: true,
			wantHelp:    undocumented,
		},
		{
			name:         "collection without default is required",
			param:        Param{Name: "tags", Type: Strings},
			doc:          "tags to apply",
			wantDest:     "tags",
			wantRequired: true,
			wantHelp:     "tags to apply",
		},
		{
			name:     "collection with None default is optional",
			param:    Param{Name: "tags", Type: Strings, Default: None},
			doc:      "tags to apply",
			wantDest: "tags",
			wantHelp: "tags to apply",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			a, err := newArg(test.param, test.doc)
			if err != nil {
				t.Fatal(err)
			}
			if a.dest != test.wantDest {
				t.Errorf("dest: got %q, want %q", a.dest, test.wantDest)
			}
			if a.required != test.wantRequired {
				t.Errorf("required: got %t, want %t", a.required, test.wantRequired)
			}
			if a.negates != test.wantNegates {
				t.Errorf("negates: got %t, want %t", a.negates, test.wantNegates)
			}
			if a.help != test.wantHelp {
				t.Errorf("help: got %q, want %q", a.help, test.wantHelp)
			}
		})
	}
}

func TestNewArgTypeError(t *testing.T) {
	_, err := newArg(Param{Name: "x", Type: struct{ Y int }{}}, undocumented)
	var te *TypeError
	if err == nil || !errors.As(err, &te) {
		t.Fatalf("got %v, want *TypeError", err)
	}
	if te.Param != "x" {
		t.Errorf("param: got %q, want %q", te.Param, "x")
	}
}

func TestBuildArgsEmptyName(t *testing.T) {
	c := &Command{
		Name:   "cmd",
		Params: []Param{{Name: "", Type: String}},
		Run:    nopRun,
	}
	_, err := buildArgs(c, nil, false, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "empty name") {
		t.Errorf("got %v, want empty-name error", err)
	}
}

func TestBuildArgsDisableFlags(t *testing.T) {
	c := &Command{
		Name: "serve",
		Params: []Param{
			{Name: "cache", Type: Bool, Default: true, Doc: "use the cache"},
			{Name: "verbose", Type: Bool, Default: false, Doc: "more detail"},
		},
		Run: nopRun,
	}
	args, err := buildArgs(c, nil, false, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, a := range args {
		got = append(got, a.name)
	}
	// The synthetic disable flag follows its positive counterpart
	// immediately; false-default booleans get none.
	want := []string{"cache", "no_cache", "verbose"}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if args[1].dest != "cache" || !args[1].negates {
		t.Errorf("synthetic flag: got dest %q negates %t, want cache true", args[1].dest, args[1].negates)
	}
}

func TestBuildArgsExplicitNoSkipsGeneration(t *testing.T) {
	c := &Command{
		Name: "serve",
		Params: []Param{
			{Name: "cache", Type: Bool, Default: true},
			{Name: "no_cache_warmup", Type: Bool, Default: true},
		},
		Run: nopRun,
	}
	// no_cache is not declared, so cache still gets its companion; the
	// explicit no_cache_warmup disable flag gets no no_no_ companion.
	var buf bytes.Buffer
	args, err := buildArgs(c, nil, false, &buf)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, a := range args {
		names = append(names, a.name)
	}
	want := []string{"cache", "no_cache", "no_cache_warmup"}
	if !cmp.Equal(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestBuildArgsSkipWarning(t *testing.T) {
	// A non-boolean parameter can occupy the no_cache name; generation
	// of the synthetic disable flag is skipped with a warning.
	c := &Command{
		Name: "serve",
		Params: []Param{
			{Name: "cache", Type: Bool, Default: true},
			{Name: "no_cache", Type: Int, Default: 0},
		},
		Run: nopRun,
	}
	var buf bytes.Buffer
	args, err := buildArgs(c, nil, false, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	if !strings.Contains(buf.String(), "skipping auto-generation") {
		t.Errorf("got %q, want skip warning", buf.String())
	}
}

func TestValidateBools(t *testing.T) {
	for _, test := range []struct {
		name    string
		params  []Param
		wantErr string
	}{
		{
			name:    "double negative",
			params:  []Param{{Name: "no_no_cache", Type: Bool}},
			wantErr: "double negative",
		},
		{
			name: "positive and negative pair",
			params: []Param{
				{Name: "cache", Type: Bool, Default: true},
				{Name: "no_cache", Type: Bool},
			},
			wantErr: "ambiguous",
		},
		{
			name: "non-bool no_ name is fine",
			params: []Param{
				{Name: "no_limit", Type: Int, Default: 0},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := validateBools(&Command{Name: "c", Params: test.params})
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("got %v, want no error", err)
				}
				return
			}
			var ce *ConflictError
			if err == nil || !errors.As(err, &ce) {
				t.Fatalf("got %v, want *ConflictError", err)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("got %q, want error containing %q", err, test.wantErr)
			}
		})
	}
}
