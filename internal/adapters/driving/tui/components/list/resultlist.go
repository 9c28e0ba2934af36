// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// LeadList displays lead search results in a navigable list.
type LeadList struct {
	leads    []domain.Lead
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewLeadList creates a new lead list component.
func NewLeadList(s *styles.Styles) *LeadList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &LeadList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the lead list.
func (r *LeadList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *LeadList) Update(msg tea.Msg) (*LeadList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the lead list.
func (r *LeadList) View() string {
	if len(r.leads) == 0 {
		return r.styles.Muted.Render("No leads")
	}

	lines := make([]string, 0, len(r.leads)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Leads (%d of %d)", len(r.leads), r.total)), "")

	// Each lead takes two lines.
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.leads))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderLead(i, &r.leads[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *LeadList) renderLead(index int, lead *domain.Lead) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := truncate(lead.CompanyName, max(r.width-24, 10))
	confidence := fmt.Sprintf("%3.0f%%", lead.Confidence*100)

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, name, confidence))
	} else {
		nameLine = r.styles.Normal.Render(indicator+name+"  ") + r.styles.Muted.Render(confidence)
	}

	var details []string
	for _, s := range []string{lead.Industry, lead.Location, lead.Size, lead.Source} {
		if s != "" {
			details = append(details, s)
		}
	}
	if n := len(lead.Contacts); n > 0 {
		details = append(details, fmt.Sprintf("%d contacts", n))
	}
	detailLine := r.styles.Muted.Render("    " + truncate(strings.Join(details, " · "), max(r.width-6, 20)))

	return nameLine + "\n" + detailLine
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// SetLeads replaces the list contents and resets the selection.
func (r *LeadList) SetLeads(page domain.LeadPage) {
	r.leads = page.Leads
	r.total = max(page.Total, len(page.Leads))
	r.selected = 0
}

// Leads returns the current leads.
func (r *LeadList) Leads() []domain.Lead {
	return r.leads
}

// Selected returns the index of the selected lead.
func (r *LeadList) Selected() int {
	return r.selected
}

// SelectedLead returns the currently selected lead, or nil if none.
func (r *LeadList) SelectedLead() *domain.Lead {
	if r.selected < 0 || r.selected >= len(r.leads) {
		return nil
	}
	return &r.leads[r.selected]
}

// MoveUp moves selection up.
func (r *LeadList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *LeadList) MoveDown() {
	if r.selected < len(r.leads)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *LeadList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of leads.
func (r *LeadList) Count() int {
	return len(r.leads)
}

// Total returns the total number of matches reported by the search.
func (r *LeadList) Total() int {
	return r.total
}
