package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// recurringFormVals backs the recurring expense create/edit form.
type recurringFormVals struct {
	nome        string
	importo     string
	categoria   string
	descrizione string
	cadenza     string
	giorno      string
	inizio      string
	fine        string
}

// recState holds the recurring expenses tab.
type recState struct {
	loaded  bool
	loading bool
	seq     uint64
	seenRev uint64

	items    []api.RecurringExpense
	cursor   int
	expanded map[int]bool

	form   *huh.Form
	vals   *recurringFormVals
	editID int
}

func (a *App) reloadRecurring() tea.Cmd {
	a.recs.seq++
	a.recs.loading = true
	a.recs.seenRev = a.bus.Revision(bus.TopicRecurring)
	return fetchRecurringCmd(a, a.recs.seq)
}

func (a App) applyRecurringMsg(msg recurringMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.recs.seq {
		return a, nil
	}
	a.recs.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.recs.loaded = true
	a.recs.items = msg.items
	if a.recs.expanded == nil {
		a.recs.expanded = make(map[int]bool)
	}
	if a.recs.cursor >= len(msg.items) {
		a.recs.cursor = len(msg.items) - 1
	}
	if a.recs.cursor < 0 {
		a.recs.cursor = 0
	}
	return a, nil
}

func (a App) selectedRecurring() *api.RecurringExpense {
	if a.recs.cursor < 0 || a.recs.cursor >= len(a.recs.items) {
		return nil
	}
	return &a.recs.items[a.recs.cursor]
}

func (a App) updateRecurringKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.recs.cursor < len(a.recs.items)-1 {
			a.recs.cursor++
		}
		return a, nil
	case "k", "up":
		if a.recs.cursor > 0 {
			a.recs.cursor--
		}
		return a, nil

	case "enter":
		if r := a.selectedRecurring(); r != nil {
			if a.recs.expanded == nil {
				a.recs.expanded = make(map[int]bool)
			}
			a.recs.expanded[r.ID] = !a.recs.expanded[r.ID]
		}
		return a, nil

	case "a":
		return a.openRecurringForm(nil)

	case "e":
		if r := a.selectedRecurring(); r != nil {
			return a.openRecurringForm(r)
		}
		return a, nil

	case "delete", "-":
		r := a.selectedRecurring()
		if r == nil {
			return a, nil
		}
		id := r.ID
		client := a.sess.Client()
		a.confirm = &confirmState{
			title: "Elimina spesa ricorrente",
			body: fmt.Sprintf("Eliminare \"%s\"? Le occorrenze già confermate restano, quelle pianificate verranno rimosse.",
				r.Name),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteRecurring(ctx, id)
			}, "Spesa ricorrente eliminata", bus.TopicRecurring, bus.TopicMovements),
		}
		return a, nil
	}
	return a, nil
}

func (a App) openRecurringForm(r *api.RecurringExpense) (tea.Model, tea.Cmd) {
	vals := &recurringFormVals{cadenza: "monthly", giorno: "1"}
	a.recs.editID = 0

	if r != nil {
		a.recs.editID = r.ID
		vals.nome = r.Name
		vals.importo = r.Amount.StringFixed(2)
		vals.categoria = r.Category
		vals.descrizione = r.Description
		vals.cadenza = r.RecurrenceType
		vals.giorno = strconv.Itoa(r.DayOfMonth)
		vals.inizio = r.StartDate.String()
		if r.EndDate != nil {
			vals.fine = r.EndDate.String()
		}
	} else {
		vals.inizio = api.Today().String()
		if len(a.cats.items) > 0 {
			vals.categoria = a.cats.items[0].Name
		}
	}

	fields := []huh.Field{
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
			Title("Importo").
			Placeholder("0,00").
			Validate(validateAmount).
			Value(&vals.importo),
	}
	if len(a.cats.items) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Categoria").
			Options(categoryOptions(a.cats.items)...).
			Value(&vals.categoria))
	} else {
		fields = append(fields, huh.NewInput().Title("Categoria").Value(&vals.categoria))
	}
	fields = append(fields,
		huh.NewSelect[string]().
			Title("Cadenza").
			Options(
				huh.NewOption("Mensile", "monthly"),
				huh.NewOption("Trimestrale", "quarterly"),
				huh.NewOption("Annuale", "yearly"),
			).
			Value(&vals.cadenza),
		huh.NewInput().
			Title("Giorno del mese").
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 || n > 31 {
					return errors.New("usa un giorno tra 1 e 31")
				}
				return nil
			}).
			Value(&vals.giorno),
		huh.NewInput().
			Title("Data inizio").
			Placeholder("AAAA-MM-GG").
			Validate(validateDate).
			Value(&vals.inizio),
		huh.NewInput().
			Title("Data fine (opzionale)").
			Placeholder("AAAA-MM-GG").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				return validateDate(s)
			}).
			Value(&vals.fine),
		huh.NewInput().
			Title("Descrizione").
			Value(&vals.descrizione),
	)

	a.recs.vals = vals
	a.recs.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(a.contentWidth() - 6)
	return a, a.recs.form.Init()
}

func (a App) submitRecurringForm() tea.Cmd {
	vals := a.recs.vals
	fail := func(err error) tea.Cmd {
		return func() tea.Msg { return actionDoneMsg{err: err} }
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(vals.importo, ",", ".")))
	if err != nil {
		return fail(fmt.Errorf("parsing amount: %w", err))
	}
	day, err := strconv.Atoi(strings.TrimSpace(vals.giorno))
	if err != nil {
		return fail(fmt.Errorf("parsing day: %w", err))
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(vals.inizio))
	if err != nil {
		return fail(fmt.Errorf("parsing start date: %w", err))
	}

	rec := api.RecurringExpense{
		ID:             a.recs.editID,
		Name:           strings.TrimSpace(vals.nome),
		Amount:         amount,
		Category:       vals.categoria,
		Description:    strings.TrimSpace(vals.descrizione),
		RecurrenceType: vals.cadenza,
		DayOfMonth:     day,
		StartDate:      api.NewDate(start.Year(), start.Month(), start.Day()),
		IsActive:       true,
	}
	if end := strings.TrimSpace(vals.fine); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return fail(fmt.Errorf("parsing end date: %w", err))
		}
		d := api.NewDate(t.Year(), t.Month(), t.Day())
		rec.EndDate = &d
	}

	client := a.sess.Client()
	editID := a.recs.editID

	if editID != 0 {
		return actionCmd(func(ctx context.Context) error {
			_, err := client.UpdateRecurring(ctx, editID, rec)
			return err
		}, "Spesa ricorrente aggiornata", bus.TopicRecurring, bus.TopicMovements)
	}
	return actionCmd(func(ctx context.Context) error {
		_, err := client.CreateRecurring(ctx, rec)
		return err
	}, "Spesa ricorrente creata", bus.TopicRecurring, bus.TopicMovements)
}

func (a App) renderRecurringTab(cw int) string {
	t := theme.Active

	if a.recs.form != nil {
		title := "Nuova spesa ricorrente"
		if a.recs.editID != 0 {
			title = "Modifica spesa ricorrente"
		}
		return components.ContentCard(title, a.recs.form.View(), cw)
	}

	if a.recs.loading && !a.recs.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento spese ricorrenti...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextDim).Strikethrough(true)

	var b strings.Builder
	if len(a.recs.items) == 0 {
		b.WriteString(dimStyle.Render("Nessuna spesa ricorrente definita"))
	}

	for i, r := range a.recs.items {
		line := fmt.Sprintf("%-24.24s %-14.14s %10s  %s",
			r.Name,
			labelStyle.Render(r.Category),
			cli.FormatEUR(r.Amount),
			labelStyle.Render(cli.FormatRecurrence(r.RecurrenceType, r.DayOfMonth)))

		style := rowStyle
		if !r.IsActive {
			style = inactiveStyle
		}

		if i == a.recs.cursor {
			marker := lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
			b.WriteString(marker + selStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + style.Render(line) + "\n")
		}

		if a.recs.expanded[r.ID] {
			detail := fmt.Sprintf("    dal %s", cli.FormatDate(r.StartDate.Time))
			if r.EndDate != nil {
				detail += fmt.Sprintf(" al %s", cli.FormatDate(r.EndDate.Time))
			}
			if r.Description != "" {
				detail += "   " + r.Description
			}
			b.WriteString(dimStyle.Render(detail) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" [a]ggiungi  [e]modifica  [canc]elimina  [Invio]dettagli"))

	return components.ContentCard("Spese ricorrenti", b.String(), cw)
}
