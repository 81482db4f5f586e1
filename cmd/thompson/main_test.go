package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"abcd"},
			expected: "abcd",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"abcd", "", "a|b"},
			expected: "abcd, , a|b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	// Test adding multiple values
	if err := flags.Set("abcd"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 1 || flags[0] != "abcd" {
		t.Errorf("Set() = %v, want [\"abcd\"]", flags)
	}

	if err := flags.Set("ad"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "ad" {
		t.Errorf("Set() = %v, want [\"abcd\", \"ad\"]", flags)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stdin  string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "prints matching inputs",
			args:   []string{"a(b|c)*d", "abcd", "abc", "ad"},
			stdout: "abcd\nad\n",
		},
		{
			name:   "postfix",
			args:   []string{"-postfix", "a(b|c)*d"},
			stdout: "abc|*.d.\n",
		},
		{
			name:   "dot to stdout",
			args:   []string{"-dot", "-", "ab"},
			stdout: "digraph nfa {",
		},
		{
			name:   "lines from stdin",
			args:   []string{"-lines", "-", "ab*"},
			stdin:  "a\nabbb\nba\nab",
			stdout: "a\nabbb\nab",
		},
		{
			name:   "lines from missing file",
			args:   []string{"-lines", "/nonexistent/input.txt", "a"},
			code:   1,
			stderr: "failed to open input",
		},
		{
			name:   "invalid pattern",
			args:   []string{"(a", "a"},
			code:   1,
			stderr: "unbalanced parenthesis",
		},
		{
			name:   "missing pattern",
			args:   nil,
			code:   2,
			stderr: "usage: thompson",
		},
		{
			name:   "unknown flag",
			args:   []string{"-nope", "a"},
			code:   2,
			stderr: "flag provided but not defined",
		},
		{
			name:   "gen without options",
			args:   []string{"-gen", "a"},
			code:   1,
			stderr: "invalid options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if !strings.HasPrefix(stdout.String(), tt.stdout) {
				t.Errorf("stdout = %q, want prefix %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "ab.go")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-gen", "-name", "AB", "-package", "generated", "-output", out,
		"-test-input", "ab", "-test-input", "ba",
		"a(b)*",
	}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	for _, path := range []string{out, filepath.Join(dir, "ab_test.go")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing generated file: %v", err)
		}
	}
}

func TestRunGenerateVerbose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "v.go")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-gen", "-verbose", "-table", "-name", "V", "-package", "generated", "-output", out,
		"(a|b)*",
	}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"=== Pattern Analysis ===", "Match engine: table (forced by user)", "Scratch pool: true"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestRunCases(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.cases")
	bad := filepath.Join(dir, "bad.cases")
	if err := os.WriteFile(good, []byte("pattern \"a+\"\n  match \"aa\"\n  reject \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("pattern \"a+\" match \"b\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-cases", good}, nil, &stdout, &stderr); code != 0 {
		t.Errorf("good cases: exit code = %d, output: %s%s", code, stdout.String(), stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 checks, 0 failed") {
		t.Errorf("good cases: stdout = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"-cases", bad}, nil, &stdout, &stderr); code != 1 {
		t.Errorf("bad cases: exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout.String(), "FAIL") {
		t.Errorf("bad cases: stdout = %q", stdout.String())
	}

	malformed := filepath.Join(dir, "malformed.cases")
	if err := os.WriteFile(malformed, []byte("pattern \"a\" matches \"a\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stderr.Reset()
	if code := run([]string{"-cases", malformed}, nil, &stdout, &stderr); code != 1 {
		t.Errorf("malformed cases: exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "malformed.cases:1:") {
		t.Errorf("malformed cases: stderr = %q, want a positioned parse error", stderr.String())
	}
}
