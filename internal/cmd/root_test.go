package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootCommandStructure verifies the subcommand wiring.
func TestRootCommandStructure(t *testing.T) {
	root := NewRootCommand()

	if root.Use != "edimatch" {
		t.Errorf("Use = %q, want %q", root.Use, "edimatch")
	}

	want := map[string]bool{"compare": false, "batch": false, "history": false}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

// TestRootCommandHelp verifies help output renders without error.
func TestRootCommandHelp(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(--help) error = %v", err)
	}
	if !strings.Contains(out.String(), "compare") || !strings.Contains(out.String(), "batch") {
		t.Errorf("help output missing subcommands:\n%s", out.String())
	}
}

// TestCompareRequiresTwoArgs verifies argument validation.
func TestCompareRequiresTwoArgs(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"compare", "only-one.txt"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() error = nil, want argument count error")
	}
}

// TestBatchRequiresTwoArgs verifies argument validation.
func TestBatchRequiresTwoArgs(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"batch"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() error = nil, want argument count error")
	}
}
