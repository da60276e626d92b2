// Package session implements the focus-session lifecycle: setup prompts
// with backward navigation, the timed focus period, a single-shot
// extension offer, reflection prompts, and persistence. The controller
// owns all in-progress answers in a State value and reaches the outside
// world only through injected capabilities, so the whole flow is testable
// without a terminal, a lock file, or the external blocker.
package session

import (
	"context"
	"time"

	"github.com/undistract/focus/internal/logbook"
)

// SentinelPhrase diverts the flow into report generation when it appears
// in the intention input. The match is a case-sensitive substring match.
const SentinelPhrase = "analysis please"

// State holds the in-progress answers of one session. Created when the
// lock is acquired, mutated field-by-field as phases progress, finalized
// into a log record only when the intention is non-empty.
type State struct {
	Intention        string
	PlannedMinutes   int
	ExtensionMinutes int // applied extension, zero when none granted
	ElapsedMinutes   int // minutes actually spent focused
	Sites            []string
	Started          time.Time

	// Reflection answers
	Done    string
	Learned string
	Actions string

	ExtensionGranted bool
}

// Record converts the finalized state into a log row.
func (s *State) Record() logbook.Record {
	return logbook.Record{
		Intent:   s.Intention,
		Minutes:  s.ElapsedMinutes,
		Websites: s.Sites,
		Start:    s.Started,
		Done:     s.Done,
		Learned:  s.Learned,
		Actions:  s.Actions,
	}
}

// Prompter presents one modal text prompt. back is true when the user
// navigated backward; the implementation handles timeouts and retries
// internally and returns an error only when the retry ceiling is
// exhausted or input is impossible.
type Prompter interface {
	Prompt(label, defaultValue string, allowBack bool) (text string, back bool, err error)
}

// Enforcer toggles website blocking around the focus period.
type Enforcer interface {
	Start(ctx context.Context, exceptions []string) error
	Stop(ctx context.Context) error
}

// Recorder appends one finalized session to the persistent log.
type Recorder interface {
	Append(rec logbook.Record) error
}

// Dispatcher fires the external analysis generator without waiting for it.
type Dispatcher interface {
	Dispatch() error
}

// Waiter blocks for the focus period. It returns the minutes actually
// elapsed; cooperative cancellation may end the wait early.
type Waiter interface {
	Wait(ctx context.Context, intention string, minutes int) (elapsed int, err error)
}
