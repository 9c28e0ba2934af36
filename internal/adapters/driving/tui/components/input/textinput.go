// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and the TUI's input styling.
// Secret fields echo bullets instead of the typed value.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	secret    bool
	width     int
}

// NewField creates a new labelled input.
func NewField(s *styles.Styles, label, placeholder string, secret bool) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		secret:    secret,
		width:     50,
	}
}

// NewSearchInput creates a focused search box.
func NewSearchInput(s *styles.Styles, placeholder string) *Field {
	f := NewField(s, "Search", placeholder, false)
	f.textinput.Focus()
	return f
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the input.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	if !f.textinput.Focused() {
		label = f.styles.Muted.Render(f.label + ": ")
	}
	box := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Secret returns whether the input is masked.
func (f *Field) Secret() bool {
	return f.secret
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
