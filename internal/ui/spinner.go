package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps the briandowns/spinner package for consistent styling.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond) // Dots pattern
	s.Suffix = " " + msg
	s.Color("cyan")
	return &Spinner{s: s}
}

// Start starts the spinner.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the spinner.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// Success stops the spinner and prints a success message.
func (sp *Spinner) Success(msg string) {
	sp.s.Stop()
	Success(msg)
}

// UpdateMessage updates the spinner's message.
func (sp *Spinner) UpdateMessage(msg string) {
	sp.s.Suffix = " " + msg
}
