package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// movState holds the movements tab. Rows expand in place to show the full
// detail of a movement.
type movState struct {
	loaded  bool
	loading bool
	seq     uint64
	seenRev uint64

	items    []api.Movement
	cursor   int
	expanded map[int]bool // movement ID -> expanded

	form   *huh.Form
	vals   *movementFormVals
	editID int // 0 when creating
}

func (a *App) reloadMovements() tea.Cmd {
	a.movs.seq++
	a.movs.loading = true
	a.movs.seenRev = a.bus.Revision(bus.TopicMovements)
	return fetchMovementsCmd(a, api.MovementFilter{
		Month:          a.month,
		Year:           a.year,
		IncludePlanned: a.cfg.General.IncludePlanned,
	}, a.movs.seq)
}

func (a App) applyMovementsMsg(msg movementsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.movs.seq {
		return a, nil
	}
	a.movs.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.movs.loaded = true
	a.movs.items = msg.items
	if a.movs.expanded == nil {
		a.movs.expanded = make(map[int]bool)
	}
	if a.movs.cursor >= len(msg.items) {
		a.movs.cursor = len(msg.items) - 1
	}
	if a.movs.cursor < 0 {
		a.movs.cursor = 0
	}
	return a, nil
}

func (a App) selectedMovement() *api.Movement {
	if a.movs.cursor < 0 || a.movs.cursor >= len(a.movs.items) {
		return nil
	}
	return &a.movs.items[a.movs.cursor]
}

func (a App) updateMovementsKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.movs.cursor < len(a.movs.items)-1 {
			a.movs.cursor++
		}
		return a, nil
	case "k", "up":
		if a.movs.cursor > 0 {
			a.movs.cursor--
		}
		return a, nil
	case "g":
		a.movs.cursor = 0
		return a, nil
	case "G":
		if len(a.movs.items) > 0 {
			a.movs.cursor = len(a.movs.items) - 1
		}
		return a, nil

	case "enter":
		if m := a.selectedMovement(); m != nil {
			if a.movs.expanded == nil {
				a.movs.expanded = make(map[int]bool)
			}
			a.movs.expanded[m.ID] = !a.movs.expanded[m.ID]
		}
		return a, nil

	case "t":
		// Toggle planned movements and persist the choice.
		a.cfg.General.IncludePlanned = !a.cfg.General.IncludePlanned
		_ = config.Save(a.cfg)
		return a, a.reloadMovements()

	case "a":
		return a.openMovementForm(nil)

	case "e":
		if m := a.selectedMovement(); m != nil {
			return a.openMovementForm(m)
		}
		return a, nil

	case "f":
		// Confirm a planned occurrence spawned by a recurring expense.
		m := a.selectedMovement()
		if m == nil || m.FromRecurringID == nil || m.IsConfirmed {
			return a, nil
		}
		id := m.ID
		client := a.sess.Client()
		return a, actionCmd(func(ctx context.Context) error {
			_, err := client.ConfirmRecurringMovement(ctx, id)
			return err
		}, "Movimento confermato", bus.TopicMovements, bus.TopicBudgets)

	case "delete", "-":
		m := a.selectedMovement()
		if m == nil {
			return a, nil
		}
		id := m.ID
		client := a.sess.Client()
		desc := m.Description
		if desc == "" {
			desc = m.Category
		}
		a.confirm = &confirmState{
			title: "Elimina movimento",
			body:  fmt.Sprintf("Eliminare \"%s\" del %s (%s)?", desc, cli.FormatDate(m.Date.Time), cli.FormatEUR(m.Amount)),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteMovement(ctx, id)
			}, "Movimento eliminato", bus.TopicMovements, bus.TopicBudgets),
		}
		return a, nil
	}
	return a, nil
}

func (a App) openMovementForm(m *api.Movement) (tea.Model, tea.Cmd) {
	vals := &movementFormVals{tipo: string(api.Expense)}
	a.movs.editID = 0

	if m != nil {
		a.movs.editID = m.ID
		vals.tipo = string(m.Type)
		vals.importo = m.Amount.StringFixed(2)
		vals.data = m.Date.String()
		vals.categoria = m.Category
		vals.descrizione = m.Description
		vals.pianificato = m.IsPlanned
	} else {
		month, year := a.bus.DateContext()
		vals.data = fmt.Sprintf("%04d-%02d-01", year, month)
		if len(a.cats.items) > 0 {
			vals.categoria = a.cats.items[0].Name
		}
	}

	a.movs.vals = vals
	a.movs.form = newMovementForm(vals, a.cats.items, a.contentWidth()-6)
	return a, a.movs.form.Init()
}

func (a App) submitMovementForm() tea.Cmd {
	m, err := movementFromVals(a.movs.vals)
	if err != nil {
		return func() tea.Msg { return actionDoneMsg{err: err} }
	}
	client := a.sess.Client()
	editID := a.movs.editID

	if editID != 0 {
		return actionCmd(func(ctx context.Context) error {
			_, err := client.UpdateMovement(ctx, editID, m)
			return err
		}, "Movimento aggiornato", bus.TopicMovements, bus.TopicBudgets)
	}
	return actionCmd(func(ctx context.Context) error {
		_, err := client.CreateMovement(ctx, m)
		return err
	}, "Movimento registrato", bus.TopicMovements, bus.TopicBudgets)
}

func (a App) renderMovementsTab(cw int) string {
	t := theme.Active

	if a.movs.form != nil {
		title := "Nuovo movimento"
		if a.movs.editID != 0 {
			title = "Modifica movimento"
		}
		return components.ContentCard(title, a.movs.form.View(), cw)
	}

	if a.movs.loading && !a.movs.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento movimenti...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	plannedStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder

	if len(a.movs.items) == 0 {
		b.WriteString(dimStyle.Render("Nessun movimento in " + cli.FormatMonthYear(a.month, a.year)))
	}

	for i, m := range a.movs.items {
		desc := m.Description
		if desc == "" {
			desc = m.Category
		}

		marker := "  "
		badge := " "
		if m.IsPlanned && !m.IsConfirmed {
			badge = plannedStyle.Render("◦")
		}
		amountStyle := expenseStyle
		if m.Type == api.Income {
			amountStyle = incomeStyle
		}

		line := fmt.Sprintf("%s %s  %-26.26s %-14.14s %s",
			badge,
			dimStyle.Render(cli.FormatDate(m.Date.Time)),
			desc,
			labelStyle.Render(m.Category),
			amountStyle.Render(cli.FormatSignedEUR(m.Amount, m.Type == api.Income)))

		if i == a.movs.cursor {
			marker = lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
			b.WriteString(marker + selStyle.Render(line) + "\n")
		} else {
			b.WriteString(marker + rowStyle.Render(line) + "\n")
		}

		if a.movs.expanded[m.ID] {
			detail := fmt.Sprintf("    tipo: %s   pianificato: %s   confermato: %s",
				strings.ToLower(string(m.Type)), boolIT(m.IsPlanned), boolIT(m.IsConfirmed))
			if m.FromRecurringID != nil {
				detail += fmt.Sprintf("   da ricorrente #%d", *m.FromRecurringID)
			}
			b.WriteString(dimStyle.Render(detail) + "\n")
		}
	}

	b.WriteString("\n")
	hints := "[a]ggiungi  [e]modifica  [canc]elimina  [Invio]dettagli  [t]pianificati"
	if m := a.selectedMovement(); m != nil && m.FromRecurringID != nil && !m.IsConfirmed {
		hints += "  [f]conferma"
	}
	b.WriteString(dimStyle.Render(" " + hints))

	return components.ContentCard(
		fmt.Sprintf("Movimenti · %s", cli.FormatMonthYear(a.month, a.year)),
		b.String(), cw)
}

func boolIT(v bool) string {
	if v {
		return "sì"
	}
	return "no"
}
