// Package analysis dispatches the external insight generator. The
// generator is a separate program that writes its own report artifact and
// opens a viewer; the session flow never inspects its output or waits for
// it to finish.
package analysis

import (
	"fmt"

	"github.com/undistract/focus/internal/ui"
	"github.com/undistract/focus/pkg/shell"
)

// Dispatcher launches the analysis generator detached.
type Dispatcher struct {
	Command string
	Script  string

	runner shell.Runner
}

// New creates a Dispatcher using the given runner.
func New(command, script string, runner shell.Runner) *Dispatcher {
	return &Dispatcher{Command: command, Script: script, runner: runner}
}

// Available reports whether the interpreter for the generator is installed.
func (d *Dispatcher) Available() bool {
	return d.runner.Exists(d.Command)
}

// Dispatch fires the generator and returns immediately. The caller is free
// to start a new session while the report is being produced.
func (d *Dispatcher) Dispatch() error {
	if !d.Available() {
		return fmt.Errorf("%s not found; cannot run analysis", d.Command)
	}

	args := []string{}
	if d.Script != "" {
		args = append(args, d.Script)
	}
	if err := d.runner.StartDetached(d.Command, args...); err != nil {
		return fmt.Errorf("failed to dispatch analysis: %w", err)
	}

	ui.Debug("analysis generator dispatched")
	return nil
}
