// Package sources provides the sources view component for the TUI.
package sources

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// View lists every source with its status chip and selection checkbox.
type View struct {
	styles  *styles.Styles
	configs driving.SourceConfigService

	sources  []domain.SourceState
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, configs driving.SourceConfigService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		configs: configs,
	}
}

// Init initialises the view and loads sources.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSources()
}

// loadSources returns a command that loads source states from the service.
func (v *View) loadSources() tea.Cmd {
	return func() tea.Msg {
		if v.configs == nil {
			return messages.SourcesLoaded{Err: fmt.Errorf("source config service not available")}
		}
		states, err := v.configs.List(context.Background())
		return messages.SourcesLoaded{Sources: states, Err: err}
	}
}

func (v *View) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		if v.configs == nil {
			return messages.SourceToggled{SourceID: id, Err: fmt.Errorf("source config service not available")}
		}
		selected, err := v.configs.Toggle(context.Background(), id)
		return messages.SourceToggled{SourceID: id, Selected: selected, Err: err}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourcesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.sources = msg.Sources
		v.err = nil
		if v.selected >= len(v.sources) {
			v.selected = max(len(v.sources)-1, 0)
		}
		return v, nil

	case messages.SourceToggled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		for i := range v.sources {
			if v.sources[i].Descriptor.ID == msg.SourceID {
				v.sources[i].Selected = msg.Selected
			}
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
	case " ":
		if st := v.current(); st != nil {
			return v, v.toggle(st.Descriptor.ID)
		}
	case "enter", "c":
		if st := v.current(); st != nil {
			descriptor := st.Descriptor
			return v, func() tea.Msg {
				return messages.ConfigureRequested{Descriptor: descriptor}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadSources()
	}

	return v, nil
}

func (v *View) current() *domain.SourceState {
	if v.selected < 0 || v.selected >= len(v.sources) {
		return nil
	}
	return &v.sources[v.selected]
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Data Sources"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading sources..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if !v.loading {
		for i := range v.sources {
			b.WriteString(v.renderSource(i, &v.sources[i]))
			b.WriteString("\n")
		}
		if st := v.current(); st != nil {
			b.WriteString("\n")
			b.WriteString(v.renderDetail(st))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[space] select  [enter] configure  [r] reload  [esc] back  [q] quit"))

	return b.String()
}

func (v *View) renderSource(index int, st *domain.SourceState) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	check := "[ ]"
	if st.Selected {
		check = "[x]"
	}

	name := fmt.Sprintf("%s %s %-20s", indicator, check, st.Descriptor.Name)
	if index == v.selected {
		name = v.styles.Selected.Render(name)
	} else {
		name = v.styles.Normal.Render(name)
	}
	return name + " " + v.styles.StatusChip(st.Config.Status)
}

func (v *View) renderDetail(st *domain.SourceState) string {
	var b strings.Builder
	d := st.Descriptor

	b.WriteString(v.styles.Subtitle.Render(d.Name))
	b.WriteString("  ")
	b.WriteString(v.styles.Availability(d.Availability))
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(v.styles.Muted.Render(d.Description))
		b.WriteString("\n")
	}
	if len(d.Capabilities) > 0 {
		b.WriteString(v.styles.Normal.Render("Provides: " + strings.Join(d.Capabilities, ", ")))
		b.WriteString("\n")
	}
	if d.AvgResponseTime != "" {
		b.WriteString(v.styles.Muted.Render("Avg response: " + d.AvgResponseTime))
		b.WriteString("\n")
	}
	if rl := st.Config.RateLimit; rl != nil {
		b.WriteString(v.styles.Muted.Render(
			fmt.Sprintf("Rate limit: %d req/min, %d max", rl.RequestsPerMinute, rl.MaxRequests)))
		b.WriteString("\n")
	}
	if f := st.Config.Filters; f != nil && len(f.Roles) > 0 {
		b.WriteString(v.styles.Normal.Render("Roles: " + strings.Join(f.Roles, ", ")))
		b.WriteString("\n")
	}
	if st.Config.Status == domain.StatusError && st.Config.Error != "" {
		b.WriteString(v.styles.Error.Render(st.Config.Error))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sources returns the current list of sources.
func (v *View) Sources() []domain.SourceState {
	return v.sources
}

// SelectedIndex returns the currently highlighted source index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
