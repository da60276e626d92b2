package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/undistract/focus/internal/lock"
	"github.com/undistract/focus/internal/ui"
)

// Options holds the tunable limits of the session flow.
type Options struct {
	DefaultMinutes   int
	DurationCeiling  int
	ExtensionCeiling int
	FallbackMinutes  int
	DefaultSites     []string
}

// Controller orchestrates the ordered phases of one session. It is
// single-threaded: prompts, timers, and blocker toggles execute strictly
// sequentially; the analysis dispatch is the only detached operation.
type Controller struct {
	opts     Options
	prompter Prompter
	locks    lock.Store
	blocker  Enforcer
	recorder Recorder
	analysis Dispatcher
	waiter   Waiter

	now func() time.Time
}

// NewController wires a controller from its collaborators.
func NewController(opts Options, prompter Prompter, locks lock.Store, blocker Enforcer, recorder Recorder, analysis Dispatcher, waiter Waiter) *Controller {
	return &Controller{
		opts:     opts,
		prompter: prompter,
		locks:    locks,
		blocker:  blocker,
		recorder: recorder,
		analysis: analysis,
		waiter:   waiter,
		now:      time.Now,
	}
}

// setup phase steps, with back-edges only inside the phase.
const (
	stepIntention = iota
	stepDuration
	stepSites
)

// reflection phase steps.
const (
	stepExtension = iota
	stepAccomplished
	stepLearned
	stepNextAction
)

// Run executes one complete session cycle: lock, setup, focus period,
// extension offer, reflection, persistence. It returns nil when the cycle
// completed (including the analysis-dispatch shortcut) so the caller can
// loop straight into the next session. The lock is released on every
// return path.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.locks.Acquire(); err != nil {
		return err
	}
	defer c.locks.Release()

	state := &State{Started: c.now()}

	proceed, err := c.setup(state)
	if err != nil {
		return fmt.Errorf("session aborted: %w", err)
	}
	if !proceed {
		// Sentinel phrase: this run does not consume a session. The
		// analysis generator does not hold the session lock.
		c.locks.Release()
		if err := c.analysis.Dispatch(); err != nil {
			ui.Warningf("analysis dispatch failed: %v", err)
		}
		return nil
	}

	if err := c.focusAndReflect(ctx, state); err != nil {
		return err
	}

	return c.finalize(state)
}

// setup runs the Intention → Duration → Sites prompts. It returns
// proceed=false when the sentinel phrase was entered.
func (c *Controller) setup(state *State) (proceed bool, err error) {
	step := stepIntention
	for {
		switch step {
		case stepIntention:
			text, _, err := c.prompter.Prompt("Intention for this session", state.Intention, false)
			if err != nil {
				return false, err
			}
			if strings.Contains(text, SentinelPhrase) {
				return false, nil
			}
			state.Intention = strings.TrimSpace(text)
			step = stepDuration

		case stepDuration:
			def := strconv.Itoa(c.opts.DefaultMinutes)
			if state.PlannedMinutes > 0 {
				def = strconv.Itoa(state.PlannedMinutes)
			}
			text, back, err := c.prompter.Prompt("Session length in minutes", def, true)
			if err != nil {
				return false, err
			}
			if back {
				step = stepIntention
				continue
			}
			state.PlannedMinutes = c.coerceWithWarning(text, c.opts.DurationCeiling)
			step = stepSites

		case stepSites:
			def := strings.Join(c.opts.DefaultSites, ",")
			if len(state.Sites) > 0 {
				def = strings.Join(state.Sites, ",")
			}
			text, back, err := c.prompter.Prompt("Sites to keep reachable (comma-separated)", def, true)
			if err != nil {
				return false, err
			}
			if back {
				step = stepDuration
				continue
			}
			state.Sites = SplitSites(text)
			return true, nil
		}
	}
}

// focusAndReflect runs the Active phase, the extension offer, and the
// reflection prompts, honoring the back-edges between them.
func (c *Controller) focusAndReflect(ctx context.Context, state *State) error {
	if err := c.blocker.Start(ctx, state.Sites); err != nil {
		ui.Warningf("could not enable blocking: %v", err)
	}

	elapsed, err := c.waiter.Wait(ctx, state.Intention, state.PlannedMinutes)
	if err != nil {
		c.blocker.Stop(context.Background())
		return fmt.Errorf("session interrupted: %w", err)
	}
	state.ElapsedMinutes += elapsed

	step := stepExtension
	for {
		switch step {
		case stepExtension:
			if err := c.extensionOffer(ctx, state); err != nil {
				return err
			}
			step = stepAccomplished

		case stepAccomplished:
			// Back from here re-opens the extension offer, but only while
			// no extension has been granted; a consumed extension removes
			// that back-edge.
			allowBack := !state.ExtensionGranted
			text, back, err := c.prompter.Prompt("What did you get done?", state.Done, allowBack)
			if err != nil {
				return fmt.Errorf("session aborted: %w", err)
			}
			if back && allowBack {
				step = stepExtension
				continue
			}
			state.Done = text
			step = stepLearned

		case stepLearned:
			text, back, err := c.prompter.Prompt("What did you learn?", state.Learned, true)
			if err != nil {
				return fmt.Errorf("session aborted: %w", err)
			}
			if back {
				step = stepAccomplished
				continue
			}
			state.Learned = text
			step = stepNextAction

		case stepNextAction:
			text, back, err := c.prompter.Prompt("Next action", state.Actions, true)
			if err != nil {
				return fmt.Errorf("session aborted: %w", err)
			}
			if back {
				step = stepLearned
				continue
			}
			state.Actions = text
			return nil
		}
	}
}

// extensionOffer presents the single extension offer. Empty input
// declines; anything else goes through the uniform coercion policy. At
// most one extension is granted per session.
func (c *Controller) extensionOffer(ctx context.Context, state *State) error {
	if state.ExtensionGranted {
		c.blocker.Stop(context.Background())
		return nil
	}

	label := fmt.Sprintf("Extend the session? Minutes (1-%d, empty to finish)", c.opts.ExtensionCeiling)
	text, _, err := c.prompter.Prompt(label, "", false)
	if err != nil {
		c.blocker.Stop(context.Background())
		return fmt.Errorf("session aborted: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		c.blocker.Stop(context.Background())
		return nil
	}

	minutes := c.coerceWithWarning(text, c.opts.ExtensionCeiling)
	state.ExtensionGranted = true
	state.ExtensionMinutes = minutes

	if err := c.blocker.Start(ctx, state.Sites); err != nil {
		ui.Warningf("could not re-enable blocking: %v", err)
	}

	elapsed, err := c.waiter.Wait(ctx, state.Intention, minutes)
	c.blocker.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("extension interrupted: %w", err)
	}
	state.ElapsedMinutes += elapsed
	return nil
}

// finalize writes the log record if the intention is non-empty and
// reports the outcome. An empty intention discards the session silently.
func (c *Controller) finalize(state *State) error {
	if state.Intention == "" {
		ui.Info("No intention recorded; session not logged")
		return nil
	}

	if err := c.recorder.Append(state.Record()); err != nil {
		return err
	}

	ui.Successf("Logged %d focused minutes on: %s", state.ElapsedMinutes, state.Intention)
	return nil
}

// coerceWithWarning applies CoerceMinutes and emits the matching warning.
func (c *Controller) coerceWithWarning(input string, ceiling int) int {
	minutes, result := CoerceMinutes(input, c.opts.FallbackMinutes, ceiling)
	switch result {
	case CoerceFallback:
		ui.Warningf("%q is not a positive number; using %d minutes", strings.TrimSpace(input), minutes)
	case CoerceClamped:
		ui.Warningf("capping at %d minutes", ceiling)
	}
	return minutes
}
