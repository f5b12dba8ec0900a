package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// budgetFormVals backs the budget create/edit form.
type budgetFormVals struct {
	categoria string
	importo   string
	mesi      string // comma-separated month numbers, empty = every month
}

// reassignState is the second step of budget deletion: the category's
// expenses must move somewhere before the budget goes away.
type reassignState struct {
	budget     api.Budget
	count      int
	candidates []string
	cursor     int
}

// budState holds the budgets tab.
type budState struct {
	loaded     bool
	loading    bool
	seq        uint64
	seenRev    uint64
	seenMovRev uint64

	items    []api.Budget
	statuses []api.BudgetStatus
	cursor   int

	form     *huh.Form
	vals     *budgetFormVals
	editID   int
	reassign *reassignState
}

func (a *App) reloadBudgets() tea.Cmd {
	a.buds.seq++
	a.buds.loading = true
	a.buds.seenRev = a.bus.Revision(bus.TopicBudgets)
	a.buds.seenMovRev = a.bus.Revision(bus.TopicMovements)
	return fetchBudgetsCmd(a, a.month, a.year, a.buds.seq)
}

func (a App) applyBudgetsMsg(msg budgetsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.buds.seq {
		return a, nil
	}
	a.buds.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.buds.loaded = true
	a.buds.items = msg.items
	a.buds.statuses = msg.statuses
	if a.buds.cursor >= len(msg.items) {
		a.buds.cursor = len(msg.items) - 1
	}
	if a.buds.cursor < 0 {
		a.buds.cursor = 0
	}
	return a, nil
}

func (a App) selectedBudget() *api.Budget {
	if a.buds.cursor < 0 || a.buds.cursor >= len(a.buds.items) {
		return nil
	}
	return &a.buds.items[a.buds.cursor]
}

func (a App) statusFor(category string) *api.BudgetStatus {
	for i := range a.buds.statuses {
		if a.buds.statuses[i].Category == category {
			return &a.buds.statuses[i]
		}
	}
	return nil
}

func (a App) updateBudgetsKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.buds.cursor < len(a.buds.items)-1 {
			a.buds.cursor++
		}
		return a, nil
	case "k", "up":
		if a.buds.cursor > 0 {
			a.buds.cursor--
		}
		return a, nil

	case "a":
		return a.openBudgetForm(nil)

	case "e":
		if b := a.selectedBudget(); b != nil {
			return a.openBudgetForm(b)
		}
		return a, nil

	case "delete", "-":
		b := a.selectedBudget()
		if b == nil {
			return a, nil
		}
		// Check for movements in the category before deciding how to
		// delete. The answer drives either a plain confirm or the
		// reassignment picker.
		return a, fetchBudgetExpensesCmd(&a, *b, a.buds.seq)
	}
	return a, nil
}

func (a App) applyBudgetExpensesMsg(msg budgetExpensesMsg) (tea.Model, tea.Cmd) {
	// The user may have moved on while the check was in flight. Never
	// pop an overlay over an unrelated tab.
	if msg.seq != a.buds.seq || a.activeTabName() != "Budget" {
		return a, nil
	}

	client := a.sess.Client()
	budget := msg.budget

	if msg.err != nil {
		// The expense check failed; fall back to a plain confirm so the
		// user can still delete. The server refuses the delete anyway if
		// movements would be orphaned.
		a.confirm = &confirmState{
			title: "Elimina budget",
			body:  fmt.Sprintf("Impossibile verificare i movimenti di \"%s\". Eliminare comunque il budget?", budget.Category),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteBudget(ctx, budget.ID)
			}, "Budget eliminato", bus.TopicBudgets),
		}
		return a, nil
	}

	if len(msg.expenses) == 0 {
		a.confirm = &confirmState{
			title: "Elimina budget",
			body:  fmt.Sprintf("Eliminare il budget di \"%s\"? Nessun movimento associato.", budget.Category),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteBudget(ctx, budget.ID)
			}, "Budget eliminato", bus.TopicBudgets),
		}
		return a, nil
	}

	// Candidates are every category except the budget's own.
	var candidates []string
	for _, c := range a.cats.items {
		if c.Name != budget.Category {
			candidates = append(candidates, c.Name)
		}
	}
	sort.Strings(candidates)

	if len(candidates) == 0 {
		a.errNotice = "Nessuna categoria disponibile per la riassegnazione"
		return a, nil
	}

	a.buds.reassign = &reassignState{
		budget:     budget,
		count:      len(msg.expenses),
		candidates: candidates,
	}
	return a, nil
}

func (a App) updateReassign(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := a.buds.reassign
	switch msg.String() {
	case "esc":
		a.buds.reassign = nil
		return a, nil
	case "j", "down":
		if r.cursor < len(r.candidates)-1 {
			r.cursor++
		}
		return a, nil
	case "k", "up":
		if r.cursor > 0 {
			r.cursor--
		}
		return a, nil
	case "enter":
		target := r.candidates[r.cursor]
		budget := r.budget
		client := a.sess.Client()
		a.buds.reassign = nil
		return a, actionCmd(func(ctx context.Context) error {
			return client.ReassignAndDeleteBudget(ctx, budget.ID, target)
		}, fmt.Sprintf("Budget eliminato, movimenti spostati in %s", target),
			bus.TopicBudgets, bus.TopicMovements, bus.TopicCategories)
	}
	return a, nil
}

func (a App) viewReassign(cw int) string {
	t := theme.Active
	r := a.buds.reassign

	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(bodyStyle.Render(fmt.Sprintf("Il budget \"%s\" ha %d movimenti associati.", r.budget.Category, r.count)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Scegli la categoria che li erediterà:"))
	b.WriteString("\n\n")

	for i, c := range r.candidates {
		if i == r.cursor {
			b.WriteString("  " + selStyle.Render("▸ "+c) + "\n")
		} else {
			b.WriteString("    " + labelStyle.Render(c) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("j/k: scegli  Invio: sposta ed elimina  Esc: annulla"))
	return components.ContentCard("Riassegna ed elimina", b.String(), cw)
}

func parseMonths(s string) (api.MonthList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var months api.MonthList
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 12 {
			return nil, errors.New("mesi non validi, usa numeri 1-12 separati da virgola")
		}
		months = append(months, n)
	}
	sort.Ints(months)
	return months, nil
}

func (a App) openBudgetForm(b *api.Budget) (tea.Model, tea.Cmd) {
	vals := &budgetFormVals{}
	a.buds.editID = 0

	if b != nil {
		a.buds.editID = b.ID
		vals.categoria = b.Category
		vals.importo = b.Amount.StringFixed(2)
		if len(b.ApplicableMonths) > 0 {
			parts := make([]string, len(b.ApplicableMonths))
			for i, m := range b.ApplicableMonths {
				parts[i] = strconv.Itoa(m)
			}
			vals.mesi = strings.Join(parts, ",")
		}
	} else if len(a.cats.items) > 0 {
		vals.categoria = a.cats.items[0].Name
	}

	fields := []huh.Field{}
	if len(a.cats.items) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Categoria").
			Options(categoryOptions(a.cats.items)...).
			Value(&vals.categoria))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Categoria").
			Value(&vals.categoria))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Limite mensile").
			Placeholder("0,00").
			Validate(validateAmount).
			Value(&vals.importo),
		huh.NewInput().
			Title("Mesi applicabili").
			Placeholder("vuoto = tutti, oppure 1,2,9").
			Validate(func(s string) error {
				_, err := parseMonths(s)
				return err
			}).
			Value(&vals.mesi),
	)

	a.buds.vals = vals
	a.buds.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(a.contentWidth() - 6)
	return a, a.buds.form.Init()
}

func (a App) submitBudgetForm() tea.Cmd {
	vals := a.buds.vals
	amount, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(vals.importo, ",", ".")))
	if err != nil {
		return func() tea.Msg { return actionDoneMsg{err: fmt.Errorf("parsing amount: %w", err)} }
	}
	months, err := parseMonths(vals.mesi)
	if err != nil {
		return func() tea.Msg { return actionDoneMsg{err: err} }
	}

	budget := api.Budget{
		ID:               a.buds.editID,
		Category:         vals.categoria,
		Amount:           amount,
		ApplicableMonths: months,
	}
	client := a.sess.Client()
	return actionCmd(func(ctx context.Context) error {
		_, err := client.SaveBudget(ctx, budget)
		return err
	}, "Budget salvato", bus.TopicBudgets)
}

func monthListLabel(months api.MonthList) string {
	parts := make([]string, len(months))
	for i, m := range months {
		parts[i] = finance.MonthShort(m)
	}
	return strings.Join(parts, ", ")
}

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active

	if a.buds.form != nil {
		title := "Nuovo budget"
		if a.buds.editID != 0 {
			title = "Modifica budget"
		}
		return components.ContentCard(title, a.buds.form.View(), cw)
	}

	if a.buds.loading && !a.buds.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento budget...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)

	var b strings.Builder

	if len(a.buds.items) == 0 {
		b.WriteString(dimStyle.Render("Nessun budget definito"))
	}

	labelW := 0
	for _, bud := range a.buds.items {
		if len(bud.Category) > labelW {
			labelW = len(bud.Category)
		}
	}
	barW := components.CardInnerWidth(cw) - labelW - 26
	if barW < 10 {
		barW = 10
	}

	for i, bud := range a.buds.items {
		marker := "  "
		if i == a.buds.cursor {
			marker = lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
		}

		if !bud.ApplicableMonths.Contains(a.month) {
			b.WriteString(fmt.Sprintf("%s%-*s %s\n", marker, labelW, bud.Category,
				dimStyle.Render(fmt.Sprintf("non attivo in %s (attivo: %s)",
					cli.FormatMonthYear(a.month, a.year), monthListLabel(bud.ApplicableMonths)))))
			continue
		}

		st := a.statusFor(bud.Category)
		if st == nil {
			b.WriteString(fmt.Sprintf("%s%-*s %s\n", marker, labelW, bud.Category,
				labelStyle.Render("limite "+cli.FormatEUR(bud.Amount))))
			continue
		}

		spent, _ := st.Spent.Float64()
		limit, _ := st.Limit.Float64()
		pct := finance.BudgetProgress(spent, limit)
		label := finance.BudgetLabel(spent, limit)
		b.WriteString(marker + components.BudgetBar(bud.Category, pct, label, labelW, barW) + "\n")

		detail := fmt.Sprintf("%-*s %s di %s", labelW+2, "",
			cli.FormatEUR(st.Spent), cli.FormatEUR(st.Limit))
		if over := finance.BudgetOverage(spent, limit); !over.IsZero() {
			detail += "  " + overStyle.Render(cli.FormatEUR(over)+" oltre il limite")
		} else {
			detail += "  " + labelStyle.Render("restano "+cli.FormatEUR(st.Remaining))
		}
		if len(bud.ApplicableMonths) > 0 {
			detail += "  · " + monthListLabel(bud.ApplicableMonths)
		}
		b.WriteString(dimStyle.Render(detail) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" [a]ggiungi  [e]modifica  [canc]elimina"))

	return components.ContentCard(
		fmt.Sprintf("Budget · %s", cli.FormatMonthYear(a.month, a.year)),
		b.String(), cw)
}
