// Package wizard provides the source configuration wizard view for the TUI.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// Key constants.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View drives a driving.Wizard: one page per descriptor step, inputs for the
// step's credential fields, and an inline error after a failed submission.
type View struct {
	styles *styles.Styles
	config driving.ConfigurationService

	wizard driving.Wizard
	inputs map[string]*input.Field
	focus  int
	err    error

	// submitting is set from the enter that starts a submission until its
	// WizardSubmitted arrives.
	submitting bool

	width  int
	height int
}

// NewView creates a new wizard view.
func NewView(s *styles.Styles, config driving.ConfigurationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		config: config,
	}
}

// Open starts a wizard for the descriptor, closing any previous one.
func (v *View) Open(d domain.Descriptor) tea.Cmd {
	v.Reset()
	if v.config == nil {
		v.err = errors.New("configuration service not available")
		return nil
	}

	w, err := v.config.OpenWizard(d.ID)
	if err != nil {
		v.err = err
		return nil
	}
	v.wizard = w

	v.inputs = make(map[string]*input.Field)
	for _, f := range d.Fields() {
		field := input.NewField(v.styles, f.Label, f.Label, f.Secret)
		field.SetWidth(v.width)
		v.inputs[f.Key] = field
	}
	return v.focusCurrent()
}

// stepFields returns the inputs on the current step, in descriptor order.
func (v *View) stepFields() []domain.Field {
	if v.wizard == nil {
		return nil
	}
	steps := v.wizard.Descriptor().Steps
	return steps[v.wizard.Step()].Fields
}

func (v *View) focusCurrent() tea.Cmd {
	fields := v.stepFields()
	var cmd tea.Cmd
	for i, f := range fields {
		in := v.inputs[f.Key]
		if i == v.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// Update handles messages for the wizard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.WizardSubmitted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.wizard == nil {
		if msg.String() == keyEsc || msg.String() == keyEnter {
			return v, v.leave()
		}
		return v, nil
	}

	if v.submitting {
		if msg.String() == keyEsc {
			return v, v.leave()
		}
		return v, nil
	}

	switch v.wizard.Phase() {
	case domain.PhaseSubmitting:
		if msg.String() == keyEsc {
			return v, v.leave()
		}
		return v, nil
	case domain.PhaseSucceeded:
		if msg.String() == keyEnter || msg.String() == keyEsc {
			return v, v.leave()
		}
		return v, nil
	}

	fields := v.stepFields()
	switch msg.String() {
	case "tab", "down":
		if len(fields) > 0 {
			v.focus = (v.focus + 1) % len(fields)
		}
		return v, v.focusCurrent()
	case "shift+tab", "up":
		if len(fields) > 0 {
			v.focus = (v.focus - 1 + len(fields)) % len(fields)
		}
		return v, v.focusCurrent()
	case keyEsc:
		if v.wizard.Step() == 0 {
			return v, v.leave()
		}
		if err := v.wizard.Back(); err != nil {
			v.err = err
			return v, nil
		}
		v.focus = 0
		return v, v.focusCurrent()
	case keyEnter:
		return v, v.next()
	}

	if v.focus < len(fields) {
		var cmd tea.Cmd
		v.inputs[fields[v.focus].Key], cmd = v.inputs[fields[v.focus].Key].Update(msg)
		return v, cmd
	}
	return v, nil
}

// next stores the current step's values and advances. On the last step the
// submission runs as a command and reports back with WizardSubmitted.
func (v *View) next() tea.Cmd {
	for _, f := range v.stepFields() {
		if err := v.wizard.SetField(f.Key, strings.TrimSpace(v.inputs[f.Key].Value())); err != nil {
			v.err = err
			return nil
		}
	}
	v.err = nil

	w := v.wizard
	if !w.IsLastStep() {
		if _, err := w.Next(context.Background()); err != nil {
			v.err = err
			return nil
		}
		v.focus = 0
		return v.focusCurrent()
	}

	v.submitting = true
	return func() tea.Msg {
		outcome, err := w.Next(context.Background())
		return messages.WizardSubmitted{SourceID: w.SourceID(), Outcome: outcome, Err: err}
	}
}

// leave closes the wizard and returns to the sources list.
func (v *View) leave() tea.Cmd {
	id := ""
	if v.wizard != nil {
		id = v.wizard.SourceID()
	}
	v.Reset()
	return func() tea.Msg {
		return messages.ConfigurationDone{SourceID: id}
	}
}

// View renders the wizard.
func (v *View) View() string {
	var b strings.Builder

	if v.wizard == nil {
		b.WriteString(v.styles.Title.Render("Configure Source"))
		b.WriteString("\n\n")
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
			b.WriteString("\n\n")
		}
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	d := v.wizard.Descriptor()
	b.WriteString(v.styles.Title.Render("Configure " + d.Name))
	b.WriteString("\n\n")
	b.WriteString(v.renderProgress(d.Steps))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	switch phase := v.wizard.Phase(); {
	case v.submitting || phase == domain.PhaseSubmitting:
		b.WriteString(v.styles.Warning.Render("Connecting to " + d.Name + "..."))
		b.WriteString("\n")
	case phase == domain.PhaseSucceeded:
		b.WriteString(v.styles.Success.Render(d.Name + " configured successfully"))
		b.WriteString("\n")
	default:
		b.WriteString(v.renderStep(d.Steps[v.wizard.Step()]))
		if v.wizard.Phase() == domain.PhaseFailed {
			b.WriteString("\n")
			b.WriteString(v.styles.Error.Render(v.wizard.Message()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderProgress(steps []domain.Step) string {
	current := v.wizard.Step()
	parts := make([]string, len(steps))
	for i, step := range steps {
		label := fmt.Sprintf("%d. %s", i+1, step.Label)
		switch {
		case i == current:
			parts[i] = v.styles.Selected.Render(label)
		case i < current:
			parts[i] = v.styles.Success.Render(label)
		default:
			parts[i] = v.styles.Muted.Render(label)
		}
	}
	return strings.Join(parts, " > ")
}

func (v *View) renderStep(step domain.Step) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(step.Label))
	b.WriteString("\n")
	if step.Description != "" {
		b.WriteString(v.styles.Muted.Render(step.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, f := range step.Fields {
		b.WriteString(v.inputs[f.Key].View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderHelp() string {
	if v.submitting {
		return v.styles.Help.Render("[esc] cancel")
	}
	switch v.wizard.Phase() {
	case domain.PhaseSubmitting:
		return v.styles.Help.Render("[esc] cancel")
	case domain.PhaseSucceeded:
		return v.styles.Help.Render("[enter] done")
	case domain.PhaseFailed:
		return v.styles.Help.Render("[enter] retry  [esc] back")
	}
	if v.wizard.IsLastStep() {
		return v.styles.Help.Render("[tab] next field  [enter] finish  [esc] back")
	}
	return v.styles.Help.Render("[tab] next field  [enter] next  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
}

// Wizard returns the open wizard, or nil.
func (v *View) Wizard() driving.Wizard {
	return v.wizard
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset closes the open wizard and clears the view.
func (v *View) Reset() {
	if v.wizard != nil {
		v.wizard.Close()
	}
	v.wizard = nil
	v.inputs = nil
	v.focus = 0
	v.err = nil
	v.submitting = false
}
