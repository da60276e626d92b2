package countdown

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/undistract/focus/internal/ui"
)

// Waiter blocks for the focus period. On a terminal it shows the
// full-screen countdown; otherwise it falls back to a spinner that ticks
// down minute by minute. Both paths honor context cancellation.
type Waiter struct {
	// Plain forces the spinner fallback even on a terminal.
	Plain bool
}

// NewWaiter creates a Waiter.
func NewWaiter(plain bool) *Waiter {
	return &Waiter{Plain: plain}
}

// Wait blocks for the given number of minutes and returns the minutes
// actually elapsed. Ending the countdown early via its quit key shortens
// the wait without error; context cancellation aborts with the context's
// error.
func (w *Waiter) Wait(ctx context.Context, intention string, minutes int) (int, error) {
	if minutes <= 0 {
		return 0, nil
	}

	if w.Plain || !stdoutIsTerminal() {
		return waitPlain(ctx, intention, minutes)
	}
	return waitFullScreen(ctx, intention, minutes)
}

// waitFullScreen runs the bubbletea countdown.
func waitFullScreen(ctx context.Context, intention string, minutes int) (int, error) {
	total := time.Duration(minutes) * time.Minute
	start := time.Now()

	p := tea.NewProgram(NewModel(intention, total), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return elapsedMinutes(start, minutes), ctx.Err()
		}
		return elapsedMinutes(start, minutes), fmt.Errorf("countdown failed: %w", err)
	}

	m, ok := final.(Model)
	if ok && m.EndedEarly() {
		ui.Info("Session ended early")
		return elapsedMinutes(start, minutes), nil
	}
	return minutes, nil
}

// waitPlain ticks down minute by minute behind a spinner.
func waitPlain(ctx context.Context, intention string, minutes int) (int, error) {
	sp := ui.NewSpinner(remainingMessage(intention, minutes))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for elapsed := 0; elapsed < minutes; {
		select {
		case <-ticker.C:
			elapsed++
			sp.UpdateMessage(remainingMessage(intention, minutes-elapsed))
		case <-ctx.Done():
			return elapsed, ctx.Err()
		}
	}
	return minutes, nil
}

func remainingMessage(intention string, remaining int) string {
	return fmt.Sprintf("%s — %d min remaining", intention, remaining)
}

// elapsedMinutes converts wall time since start into whole minutes,
// capped at the planned length.
func elapsedMinutes(start time.Time, planned int) int {
	elapsed := int(time.Since(start).Minutes())
	if elapsed > planned {
		return planned
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
