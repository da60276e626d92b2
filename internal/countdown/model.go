// Package countdown renders the focus period: a full-screen bubbletea
// timer on a terminal, or a plain spinner countdown otherwise. The wait is
// cooperatively cancellable; ending early is a user action, not an error.
package countdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 60

// Styles holds the lipgloss styles for the countdown view.
type Styles struct {
	Frame     lipgloss.Style
	Intention lipgloss.Style
	Clock     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the standard countdown styling.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 3),
		Intention: lipgloss.NewStyle().Bold(true),
		Clock:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for the countdown view.
type Model struct {
	timer     timer.Model
	progress  progress.Model
	styles    Styles
	intention string
	total     time.Duration
	width     int
	early     bool
	done      bool
}

// NewModel creates a countdown for the given intention and duration.
func NewModel(intention string, total time.Duration) Model {
	return Model{
		timer:     timer.NewWithInterval(total, time.Second),
		progress:  progress.New(progress.WithDefaultGradient()),
		styles:    DefaultStyles(),
		intention: intention,
		total:     total,
		width:     defaultWidth,
	}
}

// EndedEarly reports whether the user ended the wait before the timer ran out.
func (m Model) EndedEarly() bool {
	return m.early
}

// Remaining returns the time left on the timer when the view exited.
func (m Model) Remaining() time.Duration {
	if m.done {
		return 0
	}
	return m.timer.Timeout
}

// Init starts the timer.
func (m Model) Init() tea.Cmd {
	return m.timer.Init()
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-10, defaultWidth)
		return m, nil

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.early = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the countdown frame.
func (m Model) View() string {
	remaining := m.timer.Timeout
	if remaining < 0 {
		remaining = 0
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Intention.Render(m.intention),
		"",
		m.styles.Clock.Render(formatRemaining(remaining)),
		m.progress.ViewAs(m.percent()),
		"",
		m.styles.Help.Render("q: end session early"),
	)

	return m.styles.Frame.Render(body) + "\n"
}

// percent returns the completed fraction of the focus period.
func (m Model) percent() float64 {
	if m.total <= 0 {
		return 1
	}
	elapsed := m.total - m.timer.Timeout
	if elapsed < 0 {
		elapsed = 0
	}
	pct := float64(elapsed) / float64(m.total)
	if pct > 1 {
		pct = 1
	}
	return pct
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d remaining", h, mnt, s)
	}
	return fmt.Sprintf("%02d:%02d remaining", mnt, s)
}
