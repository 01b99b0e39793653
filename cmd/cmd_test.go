package cmd

import (
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(data)
}

func TestExecute_UnknownCommand(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"kusari", "frobnicate"}

	err := Execute()
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown command")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("error %q does not name the unknown command", err)
	}
}

func TestExecute_Help(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"kusari", "--help"}

	out := captureStdout(t, func() {
		if err := Execute(); err != nil {
			t.Errorf("Execute() with --help = %v, want nil", err)
		}
	})

	if !strings.Contains(out, "Usage:") {
		t.Errorf("help output missing usage section:\n%s", out)
	}
}

func TestExecute_NoArgs(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"kusari"}

	out := captureStdout(t, func() {
		if err := Execute(); err != nil {
			t.Errorf("Execute() with no args = %v, want nil", err)
		}
	})

	if !strings.Contains(out, "Usage:") {
		t.Errorf("bare invocation should print help:\n%s", out)
	}
}

func TestRunHelp(t *testing.T) {
	out := captureStdout(t, runHelp)

	for _, want := range []string{
		"kusari serve",
		"kusari ask",
		"kusari mcp",
		"kusari seed",
		"127.0.0.1:8000",
		"GEMINI_API_KEY",
		"DEBUG",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}
