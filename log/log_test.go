package log

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestDebugRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Verbose = false
	Debug("hidden %d\n", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug message printed without verbose: %q", buf.String())
	}

	Verbose = true
	defer func() { Verbose = false }()
	Debug("shown %d\n", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("debug message missing: %q", buf.String())
	}
}

func TestIndentation(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	IndentationLevel = 2
	defer func() { IndentationLevel = 0 }()
	Log("nested\n")
	if !strings.Contains(buf.String(), `"    nested"`) && !strings.Contains(buf.String(), "    nested") {
		t.Fatalf("message not indented: %q", buf.String())
	}
}

func TestErrorOccured(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	errorOccured = false
	Warning("just a warning\n")
	if ErrorOccured() {
		t.Fatal("warning must not count as error")
	}
	Error("broken\n")
	if !ErrorOccured() {
		t.Fatal("error not recorded")
	}
}

func TestFatalExits(t *testing.T) {
	if os.Getenv("CHILD") == "1" {
		Fatal("goodbye\n")
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestFatalExits")
	cmd.Env = append(os.Environ(), "CHILD=1")
	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); !ok || e.Success() {
		t.Fatalf("process ran with err %v, want exit status 1", err)
	}
}
