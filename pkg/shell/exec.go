// Package shell provides utilities for executing external commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result holds the output and exit code of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner is an interface for executing external commands.
// This allows for mocking in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
	StartDetached(name string, args ...string) error
	Exists(name string) bool
}

// DefaultRunner implements the Runner interface using real command execution.
type DefaultRunner struct{}

// NewRunner creates a new DefaultRunner.
func NewRunner() Runner {
	return &DefaultRunner{}
}

// Run executes a command with context support.
func (r *DefaultRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return runCmd(ctx, name, args...)
}

// StartDetached starts a command and releases it so it outlives the caller.
// Output is discarded; failures after a successful start are invisible.
func (r *DefaultRunner) StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start '%s': %w", name, err)
	}
	return cmd.Process.Release()
}

// Exists checks if a command is available in PATH.
func (r *DefaultRunner) Exists(name string) bool {
	return CommandExists(name)
}

// runCmd is the internal function that executes commands.
func runCmd(ctx context.Context, name string, args ...string) (*Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		ExitCode: 0,
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to execute '%s': %w", name, err)
}

// Convenience functions that use background context.

// Run executes a command and returns the result.
func Run(name string, args ...string) (*Result, error) {
	return runCmd(context.Background(), name, args...)
}

// RunWithTimeout runs a command with a timeout.
func RunWithTimeout(timeout time.Duration, name string, args ...string) (*Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return runCmd(ctx, name, args...)
}

// RunSilent executes a command without capturing output (discards stdout/stderr).
func RunSilent(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// CommandExists checks if a command is available in PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Which returns the full path to a command, or empty string if not found.
func Which(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	return path
}
