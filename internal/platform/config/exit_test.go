package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/config"
)

// TestExitfExitsWithCodeOne runs Exitf in a child process since os.Exit ends
// the test binary.
func TestExitfExitsWithCodeOne(t *testing.T) {
	if os.Getenv("MAID_HIRING_EXITF_SUBPROCESS") == "1" {
		config.Exitf("compile %s: %s", "hi", "disk full")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfExitsWithCodeOne$")
	cmd.Env = append(os.Environ(), "MAID_HIRING_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "compile hi: disk full") {
		t.Fatalf("expected stderr to contain %q, got %q", "compile hi: disk full", string(out))
	}
}
