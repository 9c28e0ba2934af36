package roles

import (
	"context"
	"errors"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// fakeSelector records calls and returns canned data.
type fakeSelector struct {
	categories []domain.RoleCategory
	popular    []string
	banner     string
	loadErr    error
	inputs     []string
	selected   []string
	stats      domain.RoleStats
	saveErr    error
	saved      bool
	closed     bool
	updates    chan domain.SearchUpdate
}

func newFakeSelector() *fakeSelector {
	return &fakeSelector{
		categories: []domain.RoleCategory{
			{ID: "eng", Name: "Engineering", Roles: []string{"CTO", "VP Engineering"}},
			{ID: "sales", Name: "Sales", Roles: []string{"VP Sales"}},
		},
		popular: []string{"CEO", "CTO", "CFO"},
		updates: make(chan domain.SearchUpdate, 1),
	}
}

func (f *fakeSelector) Load(context.Context) error {
	if f.loadErr != nil {
		f.banner = "Failed to load role data"
	}
	return f.loadErr
}
func (f *fakeSelector) Banner() string { return f.banner }
func (f *fakeSelector) Categories() []domain.RoleCategory { return f.categories }
func (f *fakeSelector) Popular() []string { return f.popular }
func (f *fakeSelector) Input(q string) { f.inputs = append(f.inputs, q) }
func (f *fakeSelector) Results() []string { return nil }
func (f *fakeSelector) Updates() <-chan domain.SearchUpdate { return f.updates }
func (f *fakeSelector) AddRole(role string) {
	if !slices.Contains(f.selected, role) {
		f.selected = append(f.selected, role)
	}
}
func (f *fakeSelector) RemoveRole(role string) {
	f.selected = slices.DeleteFunc(f.selected, func(s string) bool { return s == role })
}
func (f *fakeSelector) Selected() []string { return slices.Clone(f.selected) }
func (f *fakeSelector) CanSave() bool { return len(f.selected) > 0 }
func (f *fakeSelector) Save(context.Context) (domain.RoleStats, error) {
	f.saved = true
	return f.stats, f.saveErr
}
func (f *fakeSelector) Close() {
	if !f.closed {
		close(f.updates)
	}
	f.closed = true
}

type fakeConfig struct {
	selector *fakeSelector
}

func (c *fakeConfig) OpenWizard(string) (driving.Wizard, error) { return nil, domain.ErrNotImplemented }
func (c *fakeConfig) OpenRoleSelector() driving.RoleSelector { return c.selector }

func openView(t *testing.T) (*View, *fakeSelector) {
	t.Helper()
	sel := newFakeSelector()
	view := NewView(nil, &fakeConfig{selector: sel})
	view.SetDimensions(100, 40)
	require.NotNil(t, view.Open())
	require.NotNil(t, view.Selector())
	return view, sel
}

func press(view *View, msg tea.KeyMsg) tea.Cmd {
	_, cmd := view.Update(msg)
	return cmd
}

func TestView_ShowsPopularAndCategories(t *testing.T) {
	view, _ := openView(t)

	out := view.View()
	assert.Contains(t, out, "Popular roles")
	assert.Contains(t, out, "CFO")

	press(view, tea.KeyMsg{Type: tea.KeyTab})
	out = view.View()
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "VP Engineering")

	press(view, tea.KeyMsg{Type: tea.KeyTab})
	press(view, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, view.View(), "Popular roles")
}

func TestView_TypingFeedsSelector(t *testing.T) {
	view, sel := openView(t)

	press(view, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dev")})

	assert.Equal(t, []string{"dev"}, sel.inputs)
}

func TestView_SearchUpdateReplacesCandidates(t *testing.T) {
	view, _ := openView(t)

	_, cmd := view.Update(messages.RoleSearchUpdated{Selector: view.Selector(), Update: domain.SearchUpdate{
		Query: "dev",
		Roles: []string{"Developer Advocate", "DevOps Lead"},
	}})

	assert.NotNil(t, cmd)
	out := view.View()
	assert.Contains(t, out, "Search results")
	assert.Contains(t, out, "DevOps Lead")

	press(view, tea.KeyMsg{Type: tea.KeyDown})
	press(view, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"DevOps Lead"}, view.Selector().Selected())
}

func TestView_SearchUpdateError(t *testing.T) {
	view, _ := openView(t)

	view.Update(messages.RoleSearchUpdated{
		Selector: view.Selector(),
		Update:   domain.SearchUpdate{Query: "dev", Err: errors.New("timeout")},
	})

	assert.EqualError(t, view.Err(), "timeout")
	assert.Contains(t, view.View(), "Error: timeout")
}

func TestView_DropsUpdatesFromClosedSelector(t *testing.T) {
	first := newFakeSelector()
	config := &fakeConfig{selector: first}
	view := NewView(nil, config)
	view.SetDimensions(100, 40)
	view.Open()

	second := newFakeSelector()
	config.selector = second
	view.Open()
	require.True(t, first.closed)

	_, cmd := view.Update(messages.RoleSearchUpdated{
		Selector: first,
		Update:   domain.SearchUpdate{Query: "dev", Roles: []string{"Stale Role"}},
	})

	assert.Nil(t, cmd)
	assert.NotContains(t, view.View(), "Stale Role")
	assert.Contains(t, view.View(), "Popular roles")
}

func TestView_AddAndRemove(t *testing.T) {
	view, sel := openView(t)

	press(view, tea.KeyMsg{Type: tea.KeyEnter})
	press(view, tea.KeyMsg{Type: tea.KeyDown})
	press(view, tea.KeyMsg{Type: tea.KeyEnter})
	press(view, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"CEO", "CTO"}, sel.selected)
	assert.Contains(t, view.View(), "Selected:")

	press(view, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, []string{"CEO"}, sel.selected)
}

func TestView_SaveWithoutRoles(t *testing.T) {
	view, sel := openView(t)

	cmd := press(view, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.False(t, sel.saved)
	assert.ErrorIs(t, view.Err(), domain.ErrNoRolesSelected)
}

func TestView_SaveShowsStats(t *testing.T) {
	view, sel := openView(t)
	sel.stats = domain.RoleStats{
		TotalLeads:       1250,
		AverageSeniority: "Senior",
		TopIndustries:    []domain.IndustryCount{{Industry: "Software", Count: 400}},
		RoleDistribution: []domain.RoleShare{{Role: "CEO", Percentage: 62.5}},
	}
	press(view, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(view, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Saving...")
	view.Update(cmd())

	assert.True(t, sel.saved)
	out := view.View()
	assert.Contains(t, out, "Role targeting saved")
	assert.Contains(t, out, "1250")
	assert.Contains(t, out, "Software")
	assert.Contains(t, out, "62.5%")

	cmd = press(view, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	done, ok := cmd().(messages.ConfigurationDone)
	require.True(t, ok)
	assert.Equal(t, domain.SourceRoleBased, done.SourceID)
	assert.True(t, sel.closed)
}

func TestView_SaveFailureKeepsSelection(t *testing.T) {
	view, sel := openView(t)
	sel.saveErr = errors.New("stats unavailable")
	press(view, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(view, tea.KeyMsg{Type: tea.KeyCtrlS})
	view.Update(cmd())

	assert.EqualError(t, view.Err(), "stats unavailable")
	assert.Equal(t, []string{"CEO"}, sel.selected)
	assert.NotContains(t, view.View(), "Role targeting saved")
}

func TestView_LoadFailureBanner(t *testing.T) {
	sel := newFakeSelector()
	sel.loadErr = errors.New("down")
	view := NewView(nil, &fakeConfig{selector: sel})
	view.Open()

	require.Error(t, sel.Load(context.Background()))
	assert.Contains(t, view.View(), "Failed to load role data")
}

func TestView_WaitForUpdateReturnsNilWhenClosed(t *testing.T) {
	sel := newFakeSelector()
	sel.Close()

	assert.Nil(t, waitForUpdate(sel)())
}

func TestView_EscClosesSelector(t *testing.T) {
	view, sel := openView(t)

	cmd := press(view, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, messages.ConfigurationDone{}, cmd())
	assert.True(t, sel.closed)
	assert.Nil(t, view.Selector())
}
