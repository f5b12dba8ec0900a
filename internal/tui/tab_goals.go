package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// goalFormVals backs the savings goal create/edit form.
type goalFormVals struct {
	nome      string
	obiettivo string
	attuale   string
	scadenza  string
	colore    string
}

// goalState holds the savings goals tab.
type goalState struct {
	loaded  bool
	loading bool
	seq     uint64
	seenRev uint64

	items  []api.SavingsGoal
	cursor int

	form   *huh.Form
	vals   *goalFormVals
	editID int
}

func (a *App) reloadGoals() tea.Cmd {
	a.goals.seq++
	a.goals.loading = true
	a.goals.seenRev = a.bus.Revision(bus.TopicGoals)
	return fetchGoalsCmd(a, a.goals.seq)
}

func (a App) applyGoalsMsg(msg goalsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.goals.seq {
		return a, nil
	}
	a.goals.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.goals.loaded = true
	a.goals.items = msg.items
	if a.goals.cursor >= len(msg.items) {
		a.goals.cursor = len(msg.items) - 1
	}
	if a.goals.cursor < 0 {
		a.goals.cursor = 0
	}
	return a, nil
}

func (a App) selectedGoal() *api.SavingsGoal {
	if a.goals.cursor < 0 || a.goals.cursor >= len(a.goals.items) {
		return nil
	}
	return &a.goals.items[a.goals.cursor]
}

func (a App) updateGoalsKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.goals.cursor < len(a.goals.items)-1 {
			a.goals.cursor++
		}
		return a, nil
	case "k", "up":
		if a.goals.cursor > 0 {
			a.goals.cursor--
		}
		return a, nil

	case "a":
		return a.openGoalForm(nil)

	case "e":
		if g := a.selectedGoal(); g != nil {
			return a.openGoalForm(g)
		}
		return a, nil

	case "delete", "-":
		g := a.selectedGoal()
		if g == nil {
			return a, nil
		}
		id := g.ID
		client := a.sess.Client()
		a.confirm = &confirmState{
			title: "Elimina obiettivo",
			body:  fmt.Sprintf("Eliminare l'obiettivo \"%s\"?", g.Name),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteGoal(ctx, id)
			}, "Obiettivo eliminato", bus.TopicGoals),
		}
		return a, nil
	}
	return a, nil
}

func (a App) openGoalForm(g *api.SavingsGoal) (tea.Model, tea.Cmd) {
	vals := &goalFormVals{attuale: "0"}
	a.goals.editID = 0

	if g != nil {
		a.goals.editID = g.ID
		vals.nome = g.Name
		vals.obiettivo = g.TargetAmount.StringFixed(2)
		vals.attuale = g.CurrentAmount.StringFixed(2)
		if g.Deadline != nil {
			vals.scadenza = g.Deadline.String()
		}
		vals.colore = g.Color
	}

	a.goals.vals = vals
	a.goals.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Nome").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("il nome è obbligatorio")
				}
				return nil
			}).
			Value(&vals.nome),
		huh.NewInput().
			Title("Importo obiettivo").
			Placeholder("0,00").
			Validate(validateAmount).
			Value(&vals.obiettivo),
		huh.NewInput().
			Title("Già risparmiato").
			Placeholder("0,00").
			Validate(func(s string) error {
				v, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")))
				if err != nil || v.IsNegative() {
					return errors.New("importo non valido")
				}
				return nil
			}).
			Value(&vals.attuale),
		huh.NewInput().
			Title("Scadenza (opzionale)").
			Placeholder("AAAA-MM-GG").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				return validateDate(s)
			}).
			Value(&vals.scadenza),
		huh.NewInput().
			Title("Colore").
			Placeholder("#10B981").
			Validate(validateHexColor).
			Value(&vals.colore),
	)).WithWidth(a.contentWidth() - 6)
	return a, a.goals.form.Init()
}

func (a App) submitGoalForm() tea.Cmd {
	vals := a.goals.vals
	fail := func(err error) tea.Cmd {
		return func() tea.Msg { return actionDoneMsg{err: err} }
	}

	target, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(vals.obiettivo, ",", ".")))
	if err != nil {
		return fail(fmt.Errorf("parsing target: %w", err))
	}
	current, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(vals.attuale, ",", ".")))
	if err != nil {
		return fail(fmt.Errorf("parsing current: %w", err))
	}

	goal := api.SavingsGoal{
		ID:            a.goals.editID,
		Name:          strings.TrimSpace(vals.nome),
		TargetAmount:  target,
		CurrentAmount: current,
		Color:         strings.TrimSpace(vals.colore),
	}
	if s := strings.TrimSpace(vals.scadenza); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return fail(fmt.Errorf("parsing deadline: %w", err))
		}
		d := api.NewDate(t.Year(), t.Month(), t.Day())
		goal.Deadline = &d
	}

	client := a.sess.Client()
	editID := a.goals.editID

	if editID != 0 {
		return actionCmd(func(ctx context.Context) error {
			_, err := client.UpdateGoal(ctx, editID, goal)
			return err
		}, "Obiettivo aggiornato", bus.TopicGoals)
	}
	return actionCmd(func(ctx context.Context) error {
		_, err := client.CreateGoal(ctx, goal)
		return err
	}, "Obiettivo creato", bus.TopicGoals)
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active

	if a.goals.form != nil {
		title := "Nuovo obiettivo"
		if a.goals.editID != 0 {
			title = "Modifica obiettivo"
		}
		return components.ContentCard(title, a.goals.form.View(), cw)
	}

	if a.goals.loading && !a.goals.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento obiettivi...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	selNameStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	var b strings.Builder
	if len(a.goals.items) == 0 {
		b.WriteString(dimStyle.Render("Nessun obiettivo di risparmio"))
	}

	now := time.Now()
	barW := components.CardInnerWidth(cw) - 12
	if barW > 40 {
		barW = 40
	}
	if barW < 10 {
		barW = 10
	}

	for i, g := range a.goals.items {
		if i > 0 {
			b.WriteString("\n")
		}

		style := nameStyle
		marker := "  "
		if i == a.goals.cursor {
			style = selNameStyle
			marker = lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
		}
		b.WriteString(marker + style.Render(g.Name) + "\n")

		pct := finance.GoalProgress(g.TargetAmount, g.CurrentAmount)
		b.WriteString("  " + components.GoalBar(pct, barW) + "\n")
		b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%s di %s",
			cli.FormatEUR(g.CurrentAmount), cli.FormatEUR(g.TargetAmount))))

		if g.Deadline != nil {
			b.WriteString(labelStyle.Render("  ·  entro " + cli.FormatDate(g.Deadline.Time)))
			var deadline *time.Time
			d := g.Deadline.Time
			deadline = &d
			if monthly := finance.MonthlySavingsNeeded(g.TargetAmount, g.CurrentAmount, deadline, now); monthly != nil {
				if monthly.IsZero() {
					b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Green).Render("obiettivo raggiunto"))
				} else {
					b.WriteString(labelStyle.Render("  ·  servono ") +
						lipgloss.NewStyle().Foreground(t.AccentBright).Render(cli.FormatEUR(*monthly)+"/mese"))
				}
			} else if d.Before(now) {
				b.WriteString("  " + lipgloss.NewStyle().Foreground(t.Red).Render("scadenza superata"))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" [a]ggiungi  [e]modifica  [canc]elimina"))

	return components.ContentCard("Obiettivi di risparmio", b.String(), cw)
}
