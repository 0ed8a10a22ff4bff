//go:build e2e

// cli_harness_test.go provides a test harness for E2E testing of the emocam CLI.
//
// The CLIHarness builds the emocam binary and runs commands in an isolated
// workspace with controlled environment variables.
package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CLIHarness manages an emocam CLI binary for E2E testing.
type CLIHarness struct {
	// BinaryPath is the path to the built emocam binary.
	BinaryPath string

	// WorkDir is the working directory where commands will be executed.
	WorkDir string

	// EnvVars contains environment variables to set for command execution.
	EnvVars map[string]string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the emocam binary and creates an empty workspace.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := findProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "emocam")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/emocam")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build emocam binary: %s", output)

	workDir := filepath.Join(tmpDir, "workspace")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	return &CLIHarness{
		BinaryPath: binaryPath,
		WorkDir:    workDir,
		EnvVars:    make(map[string]string),
		t:          t,
	}
}

// SetEnv sets an environment variable for subsequent command executions.
func (h *CLIHarness) SetEnv(key, value string) {
	h.EnvVars[key] = value
}

// Run executes an emocam command with default timeout (30 seconds).
func (h *CLIHarness) Run(args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return h.RunWithContext(ctx, args...)
}

// RunWithContext executes an emocam command with the given context. When ctx
// ends the process receives an interrupt, as from Ctrl+C.
func (h *CLIHarness) RunWithContext(ctx context.Context, args ...string) *CLIResult {
	h.t.Helper()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.WorkDir
	cmd.Env = h.buildEnv()
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = 10 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CLIResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	// An interrupted command that shut down cleanly reports the context
	// error from Run; the exit status is what matters.
	if err != nil && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}
	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}
	return result
}

// buildEnv drops inherited EMOCAM_* variables and adds the configured ones.
func (h *CLIHarness) buildEnv() []string {
	env := []string{}
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "EMOCAM_") {
			continue
		}
		env = append(env, e)
	}
	for k, v := range h.EnvVars {
		env = append(env, k+"="+v)
	}
	return env
}

// findProjectRoot walks up from the current directory to the go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("command failed: exit=%d err=%v\nstdout: %s\nstderr: %s",
			result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command result indicates success.
func (h *CLIHarness) RequireFailure(result *CLIResult) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			result.Stdout, result.Stderr)
	}
}
