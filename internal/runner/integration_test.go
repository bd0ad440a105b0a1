package runner_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryPath builds the phpspace binary and returns its path.
func binaryPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "phpspace")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}

	cmd := exec.CommandContext(testContext(t), "go", "build", "-o", bin, "../../cmd/phpspace")
	cmd.Dir = filepath.Join(projectRoot(t), "internal", "runner")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return exitErr.ExitCode()
}

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := binaryPath(t)
	cfg := filepath.Join(t.TempDir(), "phpspace.yml")
	if err := os.WriteFile(cfg, []byte("output:\n  color: \"off\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		wantOut  string
	}{
		{
			name:     "clean stdin",
			args:     []string{"--config", cfg},
			stdin:    "<?php if ($a) {\n    foo($a, $b);\n}\n",
			wantCode: 0,
			wantOut:  "0 issues in 1 file",
		},
		{
			name:     "issues on stdin",
			args:     []string{"--config", cfg},
			stdin:    "<?php if ($a){\n    foo( $a,$b);\n}\n",
			wantCode: 1,
			wantOut:  "3 issues in 1 file",
		},
		{
			name:     "parse error",
			args:     []string{"--config", cfg},
			stdin:    "<?php foo(",
			wantCode: 2,
			wantOut:  "<stdin>: error: parse error",
		},
		{
			name:     "bad flag value",
			args:     []string{"--config", cfg, "--format", "yaml"},
			stdin:    "<?php\n",
			wantCode: 2,
		},
		{
			name:     "version",
			args:     []string{"version"},
			wantCode: 0,
			wantOut:  "phpspace",
		},
		{
			name:     "rules",
			args:     []string{"rules", "--config", cfg},
			wantCode: 0,
			wantOut:  "space_after_comma",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.CommandContext(testContext(t), bin, tt.args...)
			cmd.Stdin = strings.NewReader(tt.stdin)
			out, err := cmd.Output()
			if code := exitCodeOf(t, err); code != tt.wantCode {
				t.Errorf("exit code: got %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(string(out), tt.wantOut) {
				t.Errorf("stdout %q does not contain %q", out, tt.wantOut)
			}
		})
	}
}

// testContext returns a context canceled when the test finishes
// (equivalent of testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
