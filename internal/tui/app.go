// Package tui provides the interactive Bubble Tea interface for cassa.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/session"
	"github.com/spesecasa/cassa/internal/store"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

type route int

const (
	routeLoading route = iota
	routeLogin
	routeMain
)

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
)

// confirmState is a generic yes/no modal. The command runs on confirm.
type confirmState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// pickerState is the month picker overlay.
type pickerState struct {
	active bool
	month  int
	year   int
}

// App is the root Bubble Tea model.
type App struct {
	cfg   config.Config
	sess  *session.Store
	bus   *bus.Bus
	snaps *store.Snapshots

	width  int
	height int

	route     route
	hasToken  bool
	tabs      []components.Tab
	activeTab int
	showHelp  bool

	// Uniform notices: errNotice for failures, notice for successes.
	errNotice string
	notice    string

	// Shared period; every month-scoped tab follows it.
	month int
	year  int
	years []int

	spinner spinner.Model

	login   loginState
	picker  pickerState
	quick   quickState
	search  searchState
	confirm *confirmState

	dash  dashState
	movs  movState
	buds  budState
	cats  catState
	recs  recState
	goals goalState
	fams  famState
	set   setState
}

// NewApp creates the root TUI model. hasToken selects between the token
// check and the login form at startup.
func NewApp(cfg config.Config, sess *session.Store, b *bus.Bus, snaps *store.Snapshots, hasToken bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	month, year := b.DateContext()

	// The route is fixed here: Init cannot mutate the model, it only
	// returns commands.
	r := routeLoading
	if !hasToken {
		r = routeLogin
	}

	return App{
		cfg:      cfg,
		sess:     sess,
		bus:      b,
		snaps:    snaps,
		hasToken: hasToken,
		route:    r,
		month:    month,
		year:     year,
		spinner:  sp,
		login:    newLoginState(),
		tabs:     components.VisibleTabs(false),
	}
}

// Run starts the TUI program.
func Run(cfg config.Config, sess *session.Store, b *bus.Bus, snaps *store.Snapshots, hasToken bool) error {
	app := NewApp(cfg, sess, b, snaps, hasToken)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.route == routeLogin {
		return tea.Batch(a.spinner.Tick, a.login.username.Cursor.BlinkCmd())
	}
	return tea.Batch(a.spinner.Tick, resumeSessionCmd(&a))
}

func (a App) activeTabName() string {
	if a.activeTab >= 0 && a.activeTab < len(a.tabs) {
		return a.tabs[a.activeTab].Name
	}
	return ""
}

// errText translates transport and server errors into one consistent user
// message. Raw error strings never reach the screen.
func errText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	var netErr *api.NetworkError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Sessione scaduta, accedi di nuovo"
	case errors.As(err, &netErr):
		return "Impossibile raggiungere il server"
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("Errore del server (%d)", apiErr.Status)
	default:
		return "Si è verificato un errore imprevisto"
	}
}

// fail records a failed operation. An expired session routes back to login.
func (a *App) fail(err error) {
	a.errNotice = errText(err)
	a.notice = ""
	if errors.Is(err, api.ErrUnauthorized) {
		a.route = routeLogin
		a.login = newLoginState()
		a.login.err = a.errNotice
	}
}

func (a *App) enterMain() tea.Cmd {
	a.route = routeMain
	a.tabs = components.VisibleTabs(a.sess.IsSuperuser())
	if a.activeTab >= len(a.tabs) {
		a.activeTab = 0
	}
	a.errNotice = ""
	// Categories back every entry form, so they load eagerly.
	return tea.Batch(a.reloadDashboard(), a.reloadCategories())
}

// setPeriod applies a new month selection everywhere at once.
func (a *App) setPeriod(month, year int) tea.Cmd {
	a.month = month
	a.year = year
	a.bus.SetDateContext(month, year)
	a.dash.loaded = false
	a.movs.loaded = false
	a.buds.loaded = false
	return a.ensureTabData()
}

// ensureTabData refetches the active tab when it has never loaded or a
// mutation elsewhere invalidated it.
func (a *App) ensureTabData() tea.Cmd {
	switch a.activeTabName() {
	case "Dashboard":
		if !a.dash.loaded || a.bus.Stale(bus.TopicMovements, a.dash.seenRev) || a.bus.Stale(bus.TopicBudgets, a.dash.seenBudRev) {
			return a.reloadDashboard()
		}
	case "Movimenti":
		if !a.movs.loaded || a.bus.Stale(bus.TopicMovements, a.movs.seenRev) {
			return a.reloadMovements()
		}
	case "Budget":
		if !a.buds.loaded || a.bus.Stale(bus.TopicBudgets, a.buds.seenRev) || a.bus.Stale(bus.TopicMovements, a.buds.seenMovRev) {
			return a.reloadBudgets()
		}
	case "Categorie":
		if !a.cats.loaded || a.bus.Stale(bus.TopicCategories, a.cats.seenRev) {
			return a.reloadCategories()
		}
	case "Ricorrenti":
		if !a.recs.loaded || a.bus.Stale(bus.TopicRecurring, a.recs.seenRev) {
			return a.reloadRecurring()
		}
	case "Obiettivi":
		if !a.goals.loaded || a.bus.Stale(bus.TopicGoals, a.goals.seenRev) {
			return a.reloadGoals()
		}
	case "Famiglie":
		if !a.fams.loaded {
			return a.reloadFamilies()
		}
	case "Impostazioni":
		if !a.set.loaded {
			return a.reloadSettings()
		}
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forwardToForms(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case sessionReadyMsg:
		if msg.err != nil {
			a.route = routeLogin
			a.login = newLoginState()
			if !errors.Is(msg.err, api.ErrUnauthorized) {
				a.login.err = errText(msg.err)
			}
			return a, a.login.username.Cursor.BlinkCmd()
		}
		return a, a.enterMain()

	case loginResultMsg:
		a.login.busy = false
		if msg.err != nil {
			a.login.err = errText(msg.err)
			a.login.password.SetValue("")
			return a, nil
		}
		return a, a.enterMain()

	case dashboardMsg:
		return a.applyDashboardMsg(msg)

	case movementsMsg:
		return a.applyMovementsMsg(msg)

	case budgetsMsg:
		return a.applyBudgetsMsg(msg)

	case budgetExpensesMsg:
		return a.applyBudgetExpensesMsg(msg)

	case categoriesMsg:
		return a.applyCategoriesMsg(msg)

	case categoryMovementsMsg:
		return a.applyCategoryMovementsMsg(msg)

	case recurringMsg:
		return a.applyRecurringMsg(msg)

	case goalsMsg:
		return a.applyGoalsMsg(msg)

	case familiesMsg:
		return a.applyFamiliesMsg(msg)

	case familiesInvalidatedMsg:
		a.fams.loaded = false
		return a, a.ensureTabData()

	case smtpMsg:
		return a.applySMTPMsg(msg)

	case logoutMsg:
		_ = a.sess.Logout()
		a.hasToken = false
		a.route = routeLogin
		a.login = newLoginState()
		a.notice = ""
		a.errNotice = ""
		return a, a.login.username.Cursor.BlinkCmd()

	case actionDoneMsg:
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.bus.Publish(msg.topics...)
		a.errNotice = ""
		a.notice = msg.notice
		return a, a.ensureTabData()

	case searchTickMsg:
		return a.applySearchTick(msg)

	case searchResultMsg:
		return a.applySearchResult(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.forwardToForms(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.route == routeLoading {
		return a, nil
	}

	if a.route == routeLogin {
		return a.updateLogin(msg)
	}

	// Overlays intercept everything while open.
	if a.confirm != nil {
		switch key {
		case "enter", "y", "s":
			cmd := a.confirm.cmd
			a.confirm = nil
			return a, cmd
		case "esc", "n":
			a.confirm = nil
			return a, nil
		}
		return a, nil
	}
	if a.buds.reassign != nil {
		return a.updateReassign(msg)
	}
	if a.quick.form != nil {
		return a.updateQuickAdd(msg)
	}
	if a.search.active {
		return a.updateSearch(msg)
	}
	if a.picker.active {
		return a.updatePicker(msg)
	}
	if a.set.editing() {
		return a.updateSettingsForm(msg)
	}
	if form := a.activeTabForm(); form != nil {
		return a.updateTabForm(msg)
	}
	if a.cats.drill != nil {
		return a.updateDrill(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Global keys
	switch key {
	case "q":
		return a, tea.Quit
	case "/":
		return a.openSearch()
	case "n":
		return a.openQuickAdd()
	case "p":
		a.picker = pickerState{active: true, month: a.month, year: a.year}
		return a, nil
	case "left", "h":
		if a.activeTab > 0 {
			a.activeTab--
		} else {
			a.activeTab = len(a.tabs) - 1
		}
		return a, a.ensureTabData()
	case "right", "l":
		a.activeTab = (a.activeTab + 1) % len(a.tabs)
		return a, a.ensureTabData()
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(a.tabs, rune(key[0])); idx >= 0 && idx != a.activeTab {
			a.activeTab = idx
			return a, a.ensureTabData()
		}
	}

	// Tab-specific keys
	switch a.activeTabName() {
	case "Dashboard":
		return a.updateDashboardKeys(key)
	case "Movimenti":
		return a.updateMovementsKeys(key)
	case "Budget":
		return a.updateBudgetsKeys(key)
	case "Categorie":
		return a.updateCategoriesKeys(key)
	case "Ricorrenti":
		return a.updateRecurringKeys(key)
	case "Obiettivi":
		return a.updateGoalsKeys(key)
	case "Famiglie":
		return a.updateFamiliesKeys(key)
	case "Impostazioni":
		return a.updateSettingsKeys(key)
	}

	return a, nil
}

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.picker.active = false
		return a, nil
	case "enter":
		a.picker.active = false
		return a, a.setPeriod(a.picker.month, a.picker.year)
	case "left":
		a.picker.month = components.StepMonth(a.picker.month, -1)
	case "right":
		a.picker.month = components.StepMonth(a.picker.month, 1)
	case "up":
		a.picker.month = components.StepMonth(a.picker.month, -3)
	case "down":
		a.picker.month = components.StepMonth(a.picker.month, 3)
	case "h":
		a.picker.year = components.StepYear(a.picker.year, -1, a.years)
	case "l":
		a.picker.year = components.StepYear(a.picker.year, 1, a.years)
	}
	return a, nil
}

// forwardToForms routes non-key messages (blinks, form ticks) to whichever
// form is active.
func (a App) forwardToForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.route == routeLogin {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.login.username, cmd = a.login.username.Update(msg)
		cmds = append(cmds, cmd)
		a.login.password, cmd = a.login.password.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)
	}
	if a.quick.form != nil {
		return a.updateQuickAdd(msg)
	}
	if a.set.editing() {
		return a.updateSettingsForm(msg)
	}
	if a.activeTabForm() != nil {
		return a.updateTabForm(msg)
	}
	if a.search.active {
		var cmd tea.Cmd
		a.search.input, cmd = a.search.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminale troppo stretto (%d colonne)\n\n  cassa richiede almeno %d colonne.\n", a.width, minTerminalWidth)
	}

	switch a.route {
	case routeLoading:
		return a.viewLoading()
	case routeLogin:
		return a.viewLogin()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) viewLoading() string {
	t := theme.Active
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + logoStyle.Render("◈ cassa"))
	b.WriteString(subStyle.Render(" · SpeseCasa"))
	b.WriteString("\n\n  ")
	b.WriteString(a.spinner.View())
	b.WriteString(subStyle.Render(" Verifica della sessione..."))
	return b.String()
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	var b strings.Builder

	// Header: app name left, period right
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	periodStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	header := " " + titleStyle.Render("◈ cassa")
	period := cli.FormatMonthYear(a.month, a.year) + " "
	pad := cw - lipgloss.Width(header) - lipgloss.Width(period)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(header + strings.Repeat(" ", pad) + periodStyle.Render(period))
	b.WriteString("\n")

	b.WriteString(components.RenderTabBar(a.tabs, a.activeTab, cw))
	b.WriteString("\n")

	if a.errNotice != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		b.WriteString(" " + errStyle.Render("✗ "+a.errNotice))
		b.WriteString("\n")
	} else if a.notice != "" {
		okStyle := lipgloss.NewStyle().Foreground(t.Green)
		b.WriteString(" " + okStyle.Render("✓ "+a.notice))
		b.WriteString("\n")
	}

	// Overlays replace the tab content.
	switch {
	case a.confirm != nil:
		b.WriteString(a.viewConfirm(cw))
	case a.buds.reassign != nil:
		b.WriteString(a.viewReassign(cw))
	case a.quick.form != nil:
		b.WriteString(components.ContentCard("Nuovo movimento", a.quick.form.View(), cw))
	case a.search.active:
		b.WriteString(a.viewSearch(cw))
	case a.picker.active:
		b.WriteString(components.ContentCard("Seleziona periodo", components.RenderMonthGrid(a.picker.month, a.picker.year, a.years), cw))
	case a.cats.drill != nil:
		b.WriteString(a.viewDrill(cw))
	default:
		switch a.activeTabName() {
		case "Dashboard":
			b.WriteString(a.renderDashboardTab(cw))
		case "Movimenti":
			b.WriteString(a.renderMovementsTab(cw))
		case "Budget":
			b.WriteString(a.renderBudgetsTab(cw))
		case "Categorie":
			b.WriteString(a.renderCategoriesTab(cw))
		case "Ricorrenti":
			b.WriteString(a.renderRecurringTab(cw))
		case "Obiettivi":
			b.WriteString(a.renderGoalsTab(cw))
		case "Famiglie":
			b.WriteString(a.renderFamiliesTab(cw))
		case "Impostazioni":
			b.WriteString(a.renderSettingsTab(cw))
		}
	}
	b.WriteString("\n")

	user := ""
	if u := a.sess.User(); u != nil {
		user = u.DisplayName()
	}
	b.WriteString(components.RenderStatusBar(cw, user, cli.FormatMonthYear(a.month, a.year)))

	return b.String()
}

func (a App) viewConfirm(cw int) string {
	t := theme.Active
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := bodyStyle.Render(a.confirm.body) + "\n\n" +
		hintStyle.Render("[Invio/s] conferma  [Esc/n] annulla")
	return components.ContentCard(a.confirm.title, body, cw)
}

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	key := lipgloss.NewStyle().Foreground(t.AccentBright)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := [][2]string{
		{"d m b c r o x", "cambia scheda (f Famiglie per admin)"},
		{"←/→", "scheda precedente/successiva"},
		{"p", "seleziona mese e anno"},
		{"n", "nuovo movimento rapido"},
		{"/", "ricerca globale"},
		{"j/k", "sposta la selezione"},
		{"Invio", "espandi/apri"},
		{"e", "modifica la voce selezionata"},
		{"canc/-", "elimina la voce selezionata"},
		{"?", "questo aiuto"},
		{"q", "esci"},
	}

	var b strings.Builder
	b.WriteString("\n  " + title.Render("Scorciatoie") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-14s", r[0])), desc.Render(r[1])))
	}
	b.WriteString("\n" + desc.Render("  Premi un tasto per chiudere"))
	return b.String()
}
