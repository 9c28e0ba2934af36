// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
)

// State represents the current activity of a view for display.
type State string

const (
	StateReady     State = "ready"
	StateBusy      State = "busy"
	StateError     State = "error"
	StateResults   State = "results"
	StateSucceeded State = "succeeded"
)

// Bar displays view status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	bindings []key.Binding
	state    State
	message  string
	count    int
	width    int
}

// NewBar creates a new status bar component showing the given hints.
// Without hints it shows the keymap's short help.
func NewBar(s *styles.Styles, hints ...key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if len(hints) == 0 {
		hints = keymap.DefaultKeyMap().ShortHelp()
	}

	return &Bar{
		styles:   s,
		bindings: hints,
		state:    StateReady,
		width:    80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateBusy:
		if s.message != "" {
			return s.styles.Warning.Render(s.message)
		}
		return s.styles.Muted.Render("Working...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateSucceeded:
		return s.styles.Success.Render(s.message)
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.count))
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state and message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// SetResults switches to the results state with the given count.
func (s *Bar) SetResults(count int) {
	s.state = StateResults
	s.message = ""
	s.count = count
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
}
