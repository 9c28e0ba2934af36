// Package roles provides the role selection view for the role-based source.
package roles

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

// View lets the user search, browse and pick target roles.
//
// The candidate list shows the latest search results when there are any,
// otherwise the popular roles or one role category (cycled with tab).
type View struct {
	styles *styles.Styles
	config driving.ConfigurationService

	selector driving.RoleSelector
	search   *input.Field
	results  []string
	// browse is 0 for popular roles, i for category i-1.
	browse    int
	highlight int
	saving    bool
	stats     *domain.RoleStats
	err       error

	width  int
	height int
}

// NewView creates a new roles view.
func NewView(s *styles.Styles, config driving.ConfigurationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		config: config,
	}
}

// Open starts a fresh role selector, closing any previous one.
func (v *View) Open() tea.Cmd {
	v.Reset()
	if v.config == nil {
		v.err = errors.New("configuration service not available")
		return nil
	}
	v.selector = v.config.OpenRoleSelector()
	v.search = input.NewSearchInput(v.styles, "Search job titles...")
	v.search.SetWidth(v.width)

	sel := v.selector
	load := func() tea.Msg {
		return messages.RolesLoaded{Err: sel.Load(context.Background())}
	}
	return tea.Batch(load, waitForUpdate(sel), v.search.Init())
}

// waitForUpdate blocks on the selector's update channel. It returns nil once
// the channel is closed.
func waitForUpdate(sel driving.RoleSelector) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-sel.Updates()
		if !ok {
			return nil
		}
		return messages.RoleSearchUpdated{Selector: sel, Update: u}
	}
}

// candidates returns the roles currently offered for selection.
func (v *View) candidates() []string {
	if len(v.results) > 0 {
		return v.results
	}
	if v.selector == nil {
		return nil
	}
	if v.browse == 0 {
		return v.selector.Popular()
	}
	categories := v.selector.Categories()
	if v.browse-1 < len(categories) {
		return categories[v.browse-1].Roles
	}
	return nil
}

func (v *View) listTitle() string {
	if len(v.results) > 0 {
		return "Search results"
	}
	if v.browse > 0 {
		categories := v.selector.Categories()
		if v.browse-1 < len(categories) {
			return categories[v.browse-1].Name
		}
	}
	return "Popular roles"
}

// Update handles messages for the roles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RolesLoaded:
		// The banner carries load failures.
		return v, nil

	case messages.RoleSearchUpdated:
		// Updates buffered by a closed selector are dropped.
		if v.selector == nil || msg.Selector != v.selector {
			return v, nil
		}
		if msg.Update.Err != nil {
			v.err = msg.Update.Err
		} else {
			v.err = nil
		}
		v.results = msg.Update.Roles
		v.highlight = 0
		return v, waitForUpdate(v.selector)

	case messages.RolesSaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		stats := msg.Stats
		v.stats = &stats
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.selector == nil || v.stats != nil {
		if msg.String() == "esc" || msg.String() == "enter" {
			return v, v.leave()
		}
		return v, nil
	}

	candidates := v.candidates()
	switch msg.String() {
	case "esc":
		return v, v.leave()
	case "up":
		if v.highlight > 0 {
			v.highlight--
		}
		return v, nil
	case "down":
		if v.highlight < len(candidates)-1 {
			v.highlight++
		}
		return v, nil
	case "tab":
		v.browse = (v.browse + 1) % (len(v.selector.Categories()) + 1)
		v.highlight = 0
		return v, nil
	case "enter":
		if v.highlight < len(candidates) {
			v.selector.AddRole(candidates[v.highlight])
		} else if q := strings.TrimSpace(v.search.Value()); q != "" {
			v.selector.AddRole(q)
		}
		return v, nil
	case "ctrl+x":
		if selected := v.selector.Selected(); len(selected) > 0 {
			v.selector.RemoveRole(selected[len(selected)-1])
		}
		return v, nil
	case "ctrl+s":
		return v, v.save()
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if after := v.search.Value(); after != before {
		if strings.TrimSpace(after) == "" {
			v.results = nil
			v.highlight = 0
		}
		v.selector.Input(after)
	}
	return v, cmd
}

func (v *View) save() tea.Cmd {
	if !v.selector.CanSave() {
		if len(v.selector.Selected()) == 0 {
			v.err = domain.ErrNoRolesSelected
		}
		return nil
	}
	v.saving = true
	sel := v.selector
	return func() tea.Msg {
		stats, err := sel.Save(context.Background())
		return messages.RolesSaved{Stats: stats, Err: err}
	}
}

// leave closes the selector and returns to the sources list.
func (v *View) leave() tea.Cmd {
	v.Reset()
	return func() tea.Msg {
		return messages.ConfigurationDone{SourceID: domain.SourceRoleBased}
	}
}

// View renders the roles view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Target Roles"))
	b.WriteString("\n\n")

	if v.selector == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
			b.WriteString("\n\n")
		}
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	if banner := v.selector.Banner(); banner != "" {
		b.WriteString(v.styles.Banner.Render(banner))
		b.WriteString("\n\n")
	}

	if v.stats != nil {
		b.WriteString(v.renderStats())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] done"))
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render(v.listTitle()))
	b.WriteString("\n")
	candidates := v.candidates()
	if len(candidates) == 0 {
		b.WriteString(v.styles.Muted.Render("  No roles"))
		b.WriteString("\n")
	}
	for i, role := range candidates {
		if i == v.highlight {
			b.WriteString("> " + v.styles.Selected.Render(role))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(role))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderSelected())
	b.WriteString("\n\n")

	if v.saving {
		b.WriteString(v.styles.Warning.Render("Saving..."))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(
		"[↑/↓] navigate  [enter] add  [tab] browse  [ctrl+x] remove last  [ctrl+s] save  [esc] back"))
	return b.String()
}

func (v *View) renderSelected() string {
	selected := v.selector.Selected()
	if len(selected) == 0 {
		return v.styles.Muted.Render("No roles selected")
	}
	chips := make([]string, len(selected))
	for i, role := range selected {
		chips[i] = v.styles.Chip.Render(role)
	}
	return v.styles.Normal.Render("Selected: ") + strings.Join(chips, " ")
}

func (v *View) renderStats() string {
	var b strings.Builder
	s := v.stats
	b.WriteString(v.styles.Success.Render("Role targeting saved"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Total leads:       %d\n", s.TotalLeads))
	if s.AverageSeniority != "" {
		b.WriteString(fmt.Sprintf("Average seniority: %s\n", s.AverageSeniority))
	}
	if len(s.TopIndustries) > 0 {
		b.WriteString("Top industries:\n")
		for _, ind := range s.TopIndustries {
			b.WriteString(fmt.Sprintf("  %-24s %d\n", ind.Industry, ind.Count))
		}
	}
	if len(s.RoleDistribution) > 0 {
		b.WriteString("Role distribution:\n")
		for _, r := range s.RoleDistribution {
			b.WriteString(fmt.Sprintf("  %-24s %5.1f%%\n", r.Role, r.Percentage))
		}
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if v.search != nil {
		v.search.SetWidth(width)
	}
}

// Selector returns the open role selector, or nil.
func (v *View) Selector() driving.RoleSelector {
	return v.selector
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset closes the open selector and clears the view.
func (v *View) Reset() {
	if v.selector != nil {
		v.selector.Close()
	}
	v.selector = nil
	v.search = nil
	v.results = nil
	v.browse = 0
	v.highlight = 0
	v.saving = false
	v.stats = nil
	v.err = nil
}
