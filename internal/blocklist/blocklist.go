// Package blocklist toggles an external website blocker around focus
// sessions. The blocker is a side-effecting command with no output
// contract; a missing binary degrades enforcement to a no-op.
package blocklist

import (
	"context"
	"fmt"

	"github.com/undistract/focus/internal/ui"
	"github.com/undistract/focus/pkg/shell"
)

// Blocker drives the external content-blocking tool for a named profile.
type Blocker struct {
	Command string
	Profile string

	runner shell.Runner
	warned bool
}

// New creates a Blocker using the given runner.
func New(command, profile string, runner shell.Runner) *Blocker {
	return &Blocker{Command: command, Profile: profile, runner: runner}
}

// Available reports whether the blocker binary is installed.
func (b *Blocker) Available() bool {
	return b.runner.Exists(b.Command)
}

// Start registers the domain exceptions and enables enforcement for the
// profile. When the blocker is missing this is a no-op; a warning is shown
// once per process so every session start does not repeat it.
func (b *Blocker) Start(ctx context.Context, exceptions []string) error {
	if !b.Available() {
		b.warnOnce()
		return nil
	}

	for _, domain := range exceptions {
		if domain == "" {
			continue
		}
		if res, err := b.runner.Run(ctx, b.Command, "allow", "--profile", b.Profile, domain); err != nil {
			ui.Debugf("blocker allow %s failed: %v", domain, err)
		} else if res.ExitCode != 0 {
			ui.Debugf("blocker allow %s exited %d", domain, res.ExitCode)
		}
	}

	res, err := b.runner.Run(ctx, b.Command, "start", "--profile", b.Profile)
	if err != nil {
		return fmt.Errorf("failed to start blocker: %w", err)
	}
	if res.ExitCode != 0 {
		ui.Debugf("blocker start exited %d: %s", res.ExitCode, res.Stderr)
	}
	return nil
}

// Stop disables enforcement for the profile. No-op when the blocker is
// missing.
func (b *Blocker) Stop(ctx context.Context) error {
	if !b.Available() {
		return nil
	}

	res, err := b.runner.Run(ctx, b.Command, "stop", "--profile", b.Profile)
	if err != nil {
		return fmt.Errorf("failed to stop blocker: %w", err)
	}
	if res.ExitCode != 0 {
		ui.Debugf("blocker stop exited %d: %s", res.ExitCode, res.Stderr)
	}
	return nil
}

func (b *Blocker) warnOnce() {
	if b.warned {
		return
	}
	b.warned = true
	ui.Warningf("%s not found; website blocking disabled for this session", b.Command)
}
