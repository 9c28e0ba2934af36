package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/views/leads"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/views/roles"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/views/sources"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/views/wizard"
	"github.com/custodia-labs/leadscout/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	menuView    *menu.View
	sourcesView *sources.View
	wizardView  *wizard.View
	rolesView   *roles.View
	leadsView   *leads.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keys:        keymap.DefaultKeyMap(),
		menuView:    menu.NewView(s),
		sourcesView: sources.NewView(s, ports.Sources),
		wizardView:  wizard.NewView(s, ports.Configuration),
		rolesView:   roles.NewView(s, ports.Configuration),
		leadsView:   leads.NewView(s, ports.Leads),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("leadscout"),
		a.loadSummary(),
	)
}

// loadSummary loads source states for the menu summary.
func (a *App) loadSummary() tea.Cmd {
	sourcesSvc := a.ports.Sources
	ctx := a.ctx
	return func() tea.Msg {
		states, err := sourcesSvc.List(ctx)
		return messages.SourcesLoaded{Sources: states, Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.closeFlows()
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ConfigureRequested:
		if msg.Descriptor.Flow == domain.FlowRoleSelection {
			a.currentView = messages.ViewRoles
			return a, a.rolesView.Open()
		}
		a.currentView = messages.ViewWizard
		return a, a.wizardView.Open(msg.Descriptor)

	case messages.ConfigurationDone:
		return a, a.switchTo(messages.ViewSources)

	case messages.SourcesLoaded:
		if msg.Err == nil {
			a.menuView.SetSummary(msg)
		}
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.SourceToggled:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.WizardSubmitted:
		a.wizardView, cmd = a.wizardView.Update(msg)
		return a, cmd

	case messages.RolesLoaded, messages.RoleSearchUpdated, messages.RolesSaved:
		a.rolesView, cmd = a.rolesView.Update(msg)
		return a, cmd

	case messages.LeadsFound:
		a.leadsView, cmd = a.leadsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		a.closeFlows()
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewLeads:
		a.leadsView, cmd = a.leadsView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)
	case messages.ViewRoles:
		a.rolesView, cmd = a.rolesView.Update(msg)
	case messages.ViewMenu, messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSources:
		if msg.Type == tea.KeyEsc {
			return a.switchTo(messages.ViewMenu)
		}
		if keymap.Matches(msg.String(), a.keys.Quit) {
			return tea.Quit
		}
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewWizard:
		a.wizardView, cmd = a.wizardView.Update(msg)
	case messages.ViewRoles:
		a.rolesView, cmd = a.rolesView.Update(msg)
	case messages.ViewLeads:
		a.leadsView, cmd = a.leadsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			return a.switchTo(messages.ViewMenu)
		}
	}
	return cmd
}

// switchTo activates a view and runs its initialisation.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewSources:
		return a.sourcesView.Init()
	case messages.ViewLeads:
		return a.leadsView.Init()
	case messages.ViewMenu:
		return a.loadSummary()
	case messages.ViewWizard, messages.ViewRoles, messages.ViewHelp:
	}
	return nil
}

// closeFlows retires any open wizard or role selector.
func (a *App) closeFlows() {
	a.wizardView.Reset()
	a.rolesView.Reset()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSources:
		return a.sourcesView.View()
	case messages.ViewWizard:
		return a.wizardView.View()
	case messages.ViewRoles:
		return a.rolesView.View()
	case messages.ViewLeads:
		return a.leadsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the keybindings grouped as in the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.closeFlows()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.sourcesView.SetDimensions(width, height)
	a.wizardView.SetDimensions(width, height)
	a.rolesView.SetDimensions(width, height)
	a.leadsView.SetDimensions(width, height)
}
