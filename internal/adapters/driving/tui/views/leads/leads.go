// Package leads provides the lead search view for the TUI.
package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// PageSize is the number of leads requested per page.
const PageSize = 20

// leadsSaved reports the outcome of saving a lead to the local cache.
type leadsSaved struct {
	name string
	err  error
}

// View searches the selected sources and lists the leads found.
type View struct {
	styles *styles.Styles
	leads  driving.LeadService

	search *input.Field
	list   *list.LeadList
	bar    *status.Bar

	query string
	page  int
	err   error
}

// NewView creates a new leads view.
func NewView(s *styles.Styles, leads driving.LeadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles: s,
		leads:  leads,
		search: input.NewSearchInput(s, "Company, keyword or industry..."),
		list:   list.NewLeadList(s),
		bar:    status.NewBar(s, km.Select, km.Save, km.Back),
		page:   1,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.search.Init(), v.search.Focus())
}

// runSearch returns a command that searches for one page of leads.
func (v *View) runSearch(query string, page int) tea.Cmd {
	v.bar.SetState(status.StateBusy, "Searching leads...")
	return func() tea.Msg {
		if v.leads == nil {
			return messages.LeadsFound{Query: query, Err: errors.New("lead service not available")}
		}
		result, err := v.leads.Search(context.Background(), domain.LeadSearchParams{
			Query: query,
			Page:  page,
			Limit: PageSize,
		})
		return messages.LeadsFound{Query: query, Page: result, Err: err}
	}
}

func (v *View) saveLead(lead domain.Lead) tea.Cmd {
	return func() tea.Msg {
		if v.leads == nil {
			return leadsSaved{name: lead.CompanyName, err: errors.New("lead service not available")}
		}
		err := v.leads.Save(context.Background(), []domain.Lead{lead})
		return leadsSaved{name: lead.CompanyName, err: err}
	}
}

// Update handles messages for the leads view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LeadsFound:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError, msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.query = msg.Query
		v.list.SetLeads(msg.Page)
		v.bar.SetResults(v.list.Total())
		return v, nil

	case leadsSaved:
		if msg.err != nil {
			v.bar.SetState(status.StateError, msg.err.Error())
		} else {
			v.bar.SetState(status.StateSucceeded, "Saved "+msg.name)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "enter":
		v.page = 1
		return v, v.runSearch(strings.TrimSpace(v.search.Value()), v.page)
	case "up", "down":
		v.list.Update(msg)
		return v, nil
	case "ctrl+n":
		if v.list.Count() > 0 && v.page*PageSize < v.list.Total() {
			v.page++
			return v, v.runSearch(v.query, v.page)
		}
		return v, nil
	case "ctrl+p":
		if v.page > 1 {
			v.page--
			return v, v.runSearch(v.query, v.page)
		}
		return v, nil
	case "ctrl+s":
		if lead := v.list.SelectedLead(); lead != nil {
			return v, v.saveLead(*lead)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

// View renders the leads view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Search Leads"))
	b.WriteString("\n\n")
	b.WriteString(v.search.View())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.errorText()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(v.list.View())
		b.WriteString("\n")
		if v.list.Count() > 0 {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Page %d  [ctrl+n] next  [ctrl+p] previous", v.page)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) errorText() string {
	switch {
	case errors.Is(v.err, domain.ErrNoConfiguredSources):
		return "No configured sources are selected. Select and configure a source under Data Sources."
	case errors.Is(v.err, domain.ErrRequestLimit):
		return "A source reached its request limit for this session."
	default:
		return fmt.Sprintf("Error: %s", v.err.Error())
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.search.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.bar.SetWidth(width)
}

// Page returns the current result page.
func (v *View) Page() int {
	return v.page
}

// Err returns the last search error.
func (v *View) Err() error {
	return v.err
}

// Reset clears the search box and results.
func (v *View) Reset() {
	v.search.Reset()
	v.list.SetLeads(domain.LeadPage{})
	v.bar.Clear()
	v.query = ""
	v.page = 1
	v.err = nil
}
