package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
)

// BackWord is the literal input that triggers backward navigation.
const BackWord = "back"

// ErrPromptExhausted is returned when a single prompt times out more times
// than the retry ceiling allows.
var ErrPromptExhausted = errors.New("prompt retries exhausted")

// Engine issues text prompts with a pre-filled default, optional backward
// navigation, and a timeout-and-retry policy. Prompting blocks the single
// control thread; there is no concurrent prompt handling.
type Engine struct {
	Timeout    time.Duration
	MaxRetries int
}

// NewEngine creates a prompt engine with the given timeout and retry ceiling.
func NewEngine(timeout time.Duration, maxRetries int) *Engine {
	return &Engine{Timeout: timeout, MaxRetries: maxRetries}
}

type promptResult struct {
	text string
	err  error
}

// Prompt shows a text prompt and returns (text, back, err). When allowBack
// is set, the label carries a hint and an input of exactly "back" yields
// back=true instead of text. A prompt left unanswered past the timeout is
// re-issued as a reminder, up to MaxRetries times; after that the whole
// prompt fails with ErrPromptExhausted. Only the first couple of reminders
// ring the bell to avoid spamming.
func (e *Engine) Prompt(label, defaultValue string, allowBack bool) (string, bool, error) {
	display := label
	if allowBack {
		display = fmt.Sprintf("%s (type %q to go back)", label, BackWord)
	}

	resultCh := make(chan promptResult, 1)
	go func() {
		p := promptui.Prompt{
			Label:     display,
			Default:   defaultValue,
			AllowEdit: true,
		}
		text, err := p.Run()
		resultCh <- promptResult{text: text, err: err}
	}()

	for attempt := 0; attempt <= e.MaxRetries; attempt++ {
		select {
		case res := <-resultCh:
			if res.err != nil {
				return "", false, res.err
			}
			if allowBack && res.text == BackWord {
				return "", true, nil
			}
			return res.text, false, nil
		case <-time.After(e.Timeout):
			if attempt < 2 {
				Notify(fmt.Sprintf("Still waiting for input: %s", label))
			}
		}
	}

	return "", false, ErrPromptExhausted
}

// PromptString asks for a string input without timeout handling.
func PromptString(label string, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	return prompt.Run()
}

// PromptYesNo asks a yes/no question and returns true for yes.
func PromptYesNo(question string, defaultYes bool) (bool, error) {
	defaultLabel := "y/N"
	if defaultYes {
		defaultLabel = "Y/n"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", question, defaultLabel),
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		// If user just pressed enter, use default
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}

	return result == "y" || result == "yes", nil
}
