package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
)

// movementFormVals backs both the global quick-add form and the movements
// tab edit form.
type movementFormVals struct {
	tipo        string
	importo     string
	data        string
	categoria   string
	descrizione string
	pianificato bool
}

// quickState is the global quick-add overlay, reachable from any tab.
type quickState struct {
	form *huh.Form
	vals *movementFormVals
}

func validateAmount(s string) error {
	v, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")))
	if err != nil {
		return errors.New("importo non valido")
	}
	if v.LessThanOrEqual(decimal.Zero) {
		return errors.New("l'importo deve essere positivo")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("usa il formato AAAA-MM-GG")
	}
	return nil
}

func categoryOptions(categories []api.Category) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c.Name, c.Name))
	}
	return opts
}

func newMovementForm(vals *movementFormVals, categories []api.Category, width int) *huh.Form {
	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Tipo").
			Options(
				huh.NewOption("Spesa", string(api.Expense)),
				huh.NewOption("Entrata", string(api.Income)),
			).
			Value(&vals.tipo),
		huh.NewInput().
			Title("Importo").
			Placeholder("0,00").
			Validate(validateAmount).
			Value(&vals.importo),
		huh.NewInput().
			Title("Data").
			Placeholder("AAAA-MM-GG").
			Validate(validateDate).
			Value(&vals.data),
	}

	if len(categories) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Categoria").
			Options(categoryOptions(categories)...).
			Value(&vals.categoria))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Categoria").
			Value(&vals.categoria))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Descrizione").
			Value(&vals.descrizione),
		huh.NewConfirm().
			Title("Pianificato?").
			Affirmative("Sì").
			Negative("No").
			Value(&vals.pianificato),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}

func movementFromVals(vals *movementFormVals) (api.Movement, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(vals.importo, ",", ".")))
	if err != nil {
		return api.Movement{}, fmt.Errorf("parsing amount: %w", err)
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(vals.data))
	if err != nil {
		return api.Movement{}, fmt.Errorf("parsing date: %w", err)
	}
	return api.Movement{
		Type:        api.MovementType(vals.tipo),
		Amount:      amount,
		Date:        api.NewDate(date.Year(), date.Month(), date.Day()),
		Category:    vals.categoria,
		Description: strings.TrimSpace(vals.descrizione),
		IsPlanned:   vals.pianificato,
	}, nil
}

func (a App) openQuickAdd() (tea.Model, tea.Cmd) {
	// The date defaults to the month the user is looking at, not today.
	month, year := a.bus.DateContext()
	now := time.Now()
	day := now.Day()
	if month != int(now.Month()) || year != now.Year() {
		day = 1
	}

	vals := &movementFormVals{
		tipo: string(api.Expense),
		data: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
	}
	if len(a.cats.items) > 0 {
		vals.categoria = a.cats.items[0].Name
	}

	a.quick = quickState{
		form: newMovementForm(vals, a.cats.items, a.contentWidth()-6),
		vals: vals,
	}
	return a, a.quick.form.Init()
}

func (a App) updateQuickAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.quick.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.quick.form = f
	}

	switch a.quick.form.State {
	case huh.StateCompleted:
		vals := a.quick.vals
		a.quick = quickState{}
		m, err := movementFromVals(vals)
		if err != nil {
			a.fail(err)
			return a, nil
		}
		client := a.sess.Client()
		return a, actionCmd(func(ctx context.Context) error {
			_, err := client.CreateMovement(ctx, m)
			return err
		}, "Movimento registrato", bus.TopicMovements, bus.TopicBudgets)

	case huh.StateAborted:
		a.quick = quickState{}
		return a, nil
	}

	return a, cmd
}
