package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/session"
	"github.com/spesecasa/cassa/internal/tui/components"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	sess := session.New(api.New("http://127.0.0.1:1", ""))
	a := NewApp(config.DefaultConfig(), sess, bus.New(), nil, false)
	a.width = 100
	a.height = 40
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func asApp(t *testing.T, m tea.Model) App {
	t.Helper()
	a, ok := m.(App)
	require.True(t, ok)
	return a
}

func tabIndex(t *testing.T, a App, name string) int {
	t.Helper()
	for i, tab := range a.tabs {
		if tab.Name == name {
			return i
		}
	}
	t.Fatalf("tab %q not visible", name)
	return -1
}

func TestStartupWithoutTokenShowsLogin(t *testing.T) {
	sess := session.New(api.New("http://127.0.0.1:1", ""))
	a := NewApp(config.DefaultConfig(), sess, bus.New(), nil, false)
	a.Init()

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = asApp(t, m)

	view := a.View()
	assert.Contains(t, view, "Accedi per continuare")
	assert.NotContains(t, view, "Verifica della sessione")

	// Keys must reach the login form, not be swallowed by the loading route.
	m, _ = a.Update(keyRunes("mario"))
	a = asApp(t, m)
	assert.Equal(t, "mario", a.login.username.Value())
}

func TestStartupWithTokenChecksSession(t *testing.T) {
	sess := session.New(api.New("http://127.0.0.1:1", "tok-1"))
	a := NewApp(config.DefaultConfig(), sess, bus.New(), nil, true)
	require.NotNil(t, a.Init())

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = asApp(t, m)
	assert.Contains(t, a.View(), "Verifica della sessione")
}

func TestShortSearchQueryStaysLocal(t *testing.T) {
	a := newTestApp(t)
	a.route = routeMain

	m, _ := a.openSearch()
	a = asApp(t, m)
	require.True(t, a.search.active)

	m, _ = a.Update(keyRunes("a"))
	a = asApp(t, m)
	assert.False(t, a.search.loading)
	assert.Nil(t, a.search.results)

	// Neither enter nor an elapsed debounce may fire a request below the
	// minimum query length.
	m, cmd := a.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
	a = asApp(t, m)
	assert.Nil(t, cmd)
	assert.False(t, a.search.loading)

	_, cmd = a.Update(searchTickMsg{seq: a.search.seq})
	assert.Nil(t, cmd)
}

func TestStaleSearchResponseDiscarded(t *testing.T) {
	a := newTestApp(t)
	a.route = routeMain
	a.search = searchState{active: true, seq: 5, loading: true, cursor: -1}

	stale := api.SearchResults{Query: "vecchia", TotalResults: 1}
	m, _ := a.Update(searchResultMsg{seq: 4, res: stale})
	a = asApp(t, m)
	assert.Nil(t, a.search.results)
	assert.True(t, a.search.loading)

	fresh := api.SearchResults{Query: "nuova", TotalResults: 2}
	m, _ = a.Update(searchResultMsg{seq: 5, res: fresh})
	a = asApp(t, m)
	require.NotNil(t, a.search.results)
	assert.Equal(t, "nuova", a.search.results.Query)
	assert.False(t, a.search.loading)
}

func TestBudgetDeleteWithoutExpensesAsksPlainConfirm(t *testing.T) {
	a := newTestApp(t)
	a.route = routeMain
	a.activeTab = tabIndex(t, a, "Budget")
	a.buds.seq = 3

	m, _ := a.Update(budgetExpensesMsg{
		seq:    3,
		budget: api.Budget{ID: 7, Category: "Spesa"},
	})
	a = asApp(t, m)

	require.NotNil(t, a.confirm)
	assert.Nil(t, a.buds.reassign)
	assert.Contains(t, a.confirm.body, "Spesa")
}

func TestBudgetDeleteWithExpensesOpensReassignPicker(t *testing.T) {
	a := newTestApp(t)
	a.route = routeMain
	a.activeTab = tabIndex(t, a, "Budget")
	a.buds.seq = 3
	a.cats.items = []api.Category{
		{Name: "Spesa"}, {Name: "Altro"}, {Name: "Bollette"},
	}

	m, _ := a.Update(budgetExpensesMsg{
		seq:      3,
		budget:   api.Budget{ID: 7, Category: "Spesa"},
		expenses: []api.Movement{{ID: 1}, {ID: 2}},
	})
	a = asApp(t, m)

	require.NotNil(t, a.buds.reassign)
	assert.Nil(t, a.confirm)
	assert.Equal(t, 2, a.buds.reassign.count)
	assert.Equal(t, []string{"Altro", "Bollette"}, a.buds.reassign.candidates)
}

func TestStaleBudgetExpenseCheckDropped(t *testing.T) {
	a := newTestApp(t)
	a.route = routeMain
	a.activeTab = tabIndex(t, a, "Budget")
	a.buds.seq = 4

	// Outdated seq: the tab reloaded while the check was in flight.
	m, _ := a.Update(budgetExpensesMsg{seq: 3, budget: api.Budget{ID: 7, Category: "Spesa"}})
	a = asApp(t, m)
	assert.Nil(t, a.confirm)
	assert.Nil(t, a.buds.reassign)

	// Right seq but the user left the tab: no overlay either.
	a.activeTab = tabIndex(t, a, "Dashboard")
	m, _ = a.Update(budgetExpensesMsg{seq: 4, budget: api.Budget{ID: 7, Category: "Spesa"}})
	a = asApp(t, m)
	assert.Nil(t, a.confirm)
	assert.Nil(t, a.buds.reassign)
}

func TestSearchJumpTargetsFollowRenderOrder(t *testing.T) {
	res := &api.SearchResults{}
	res.Results.Movements = []api.Movement{{ID: 1}, {ID: 2}}
	res.Results.Categories = []api.Category{{Name: "Spesa"}}
	res.Results.RecurringExpenses = []api.RecurringExpense{{Name: "Affitto"}}

	assert.Equal(t,
		[]string{"Movimenti", "Movimenti", "Categorie", "Ricorrenti"},
		searchResultTabs(res))
	assert.Nil(t, searchResultTabs(nil))
}

func TestTabBarHidesAdminTabs(t *testing.T) {
	for _, tab := range components.VisibleTabs(false) {
		assert.False(t, tab.AdminOnly)
	}
	assert.Greater(t, len(components.VisibleTabs(true)), len(components.VisibleTabs(false)))
}
