package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// categoryMovementsMsg carries the drill-down listing for one category.
type categoryMovementsMsg struct {
	seq      uint64
	category string
	items    []api.Movement
	err      error
}

func fetchCategoryMovementsCmd(a *App, category string, month, year int, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListMovements(context.Background(), api.MovementFilter{
			Month: month, Year: year, Category: category, IncludePlanned: true,
		})
		return categoryMovementsMsg{seq: seq, category: category, items: items, err: err}
	}
}

// drillState shows the movements behind one category for the current month.
type drillState struct {
	category string
	loading  bool
	seq      uint64
	items    []api.Movement
}

// categoryFormVals backs the category create/edit form.
type categoryFormVals struct {
	nome   string
	colore string
	icona  string
}

// catState holds the categories tab.
type catState struct {
	loaded  bool
	loading bool
	seq     uint64
	seenRev uint64

	items  []api.Category
	cursor int

	form   *huh.Form
	vals   *categoryFormVals
	editID int
	drill  *drillState
}

func (a *App) reloadCategories() tea.Cmd {
	a.cats.seq++
	a.cats.loading = true
	a.cats.seenRev = a.bus.Revision(bus.TopicCategories)
	return fetchCategoriesCmd(a, a.cats.seq)
}

func (a App) applyCategoriesMsg(msg categoriesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.cats.seq {
		return a, nil
	}
	a.cats.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.cats.loaded = true
	a.cats.items = msg.items
	if a.cats.cursor >= len(msg.items) {
		a.cats.cursor = len(msg.items) - 1
	}
	if a.cats.cursor < 0 {
		a.cats.cursor = 0
	}
	return a, nil
}

func (a App) applyCategoryMovementsMsg(msg categoryMovementsMsg) (tea.Model, tea.Cmd) {
	if a.cats.drill == nil || msg.seq != a.cats.drill.seq {
		return a, nil
	}
	a.cats.drill.loading = false
	if msg.err != nil {
		a.cats.drill = nil
		a.fail(msg.err)
		return a, nil
	}
	a.cats.drill.items = msg.items
	return a, nil
}

func (a App) selectedCategory() *api.Category {
	if a.cats.cursor < 0 || a.cats.cursor >= len(a.cats.items) {
		return nil
	}
	return &a.cats.items[a.cats.cursor]
}

func (a App) updateCategoriesKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.cats.cursor < len(a.cats.items)-1 {
			a.cats.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cats.cursor > 0 {
			a.cats.cursor--
		}
		return a, nil

	case "enter":
		c := a.selectedCategory()
		if c == nil {
			return a, nil
		}
		drill := &drillState{category: c.Name, loading: true, seq: a.cats.seq + 1000}
		a.cats.drill = drill
		return a, fetchCategoryMovementsCmd(&a, c.Name, a.month, a.year, drill.seq)

	case "a":
		return a.openCategoryForm(nil)

	case "e":
		if c := a.selectedCategory(); c != nil {
			return a.openCategoryForm(c)
		}
		return a, nil

	case "delete", "-":
		c := a.selectedCategory()
		if c == nil {
			return a, nil
		}
		id := c.ID
		client := a.sess.Client()
		a.confirm = &confirmState{
			title: "Elimina categoria",
			body:  fmt.Sprintf("Eliminare la categoria \"%s\"? I movimenti associati la perderanno.", c.Name),
			cmd: actionCmd(func(ctx context.Context) error {
				return client.DeleteCategory(ctx, id)
			}, "Categoria eliminata", bus.TopicCategories, bus.TopicMovements),
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateDrill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		a.cats.drill = nil
	}
	return a, nil
}

func (a App) viewDrill(cw int) string {
	t := theme.Active
	d := a.cats.drill

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	if d.loading {
		b.WriteString(a.spinner.View() + dimStyle.Render(" Caricamento..."))
	} else if len(d.items) == 0 {
		b.WriteString(dimStyle.Render("Nessun movimento in " + cli.FormatMonthYear(a.month, a.year)))
	} else {
		for _, m := range d.items {
			desc := m.Description
			if desc == "" {
				desc = "(senza descrizione)"
			}
			b.WriteString(fmt.Sprintf("%s  %-30.30s %s\n",
				dimStyle.Render(cli.FormatDate(m.Date.Time)),
				valueStyle.Render(desc),
				cli.FormatSignedEUR(m.Amount, m.Type == api.Income)))
		}
	}
	b.WriteString("\n" + dimStyle.Render("Esc: torna alle categorie"))

	return components.ContentCard(
		fmt.Sprintf("%s · %s", d.category, cli.FormatMonthYear(a.month, a.year)),
		b.String(), cw)
}

func validateHexColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) != 7 || s[0] != '#' {
		return errors.New("usa un colore esadecimale, es. #10B981")
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return errors.New("usa un colore esadecimale, es. #10B981")
		}
	}
	return nil
}

func (a App) openCategoryForm(c *api.Category) (tea.Model, tea.Cmd) {
	vals := &categoryFormVals{}
	a.cats.editID = 0

	if c != nil {
		a.cats.editID = c.ID
		vals.nome = c.Name
		vals.colore = c.Color
		vals.icona = c.Icon
	}

	a.cats.vals = vals
	a.cats.form = huh.NewForm(huh.NewGroup(
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
			Title("Colore").
			Placeholder("#10B981").
			Validate(validateHexColor).
			Value(&vals.colore),
		huh.NewInput().
			Title("Icona").
			Placeholder("emoji o nome icona").
			Value(&vals.icona),
	)).WithWidth(a.contentWidth() - 6)
	return a, a.cats.form.Init()
}

func (a App) submitCategoryForm() tea.Cmd {
	vals := a.cats.vals
	cat := api.Category{
		ID:    a.cats.editID,
		Name:  strings.TrimSpace(vals.nome),
		Color: strings.TrimSpace(vals.colore),
		Icon:  strings.TrimSpace(vals.icona),
	}
	client := a.sess.Client()
	editID := a.cats.editID

	if editID != 0 {
		return actionCmd(func(ctx context.Context) error {
			_, err := client.UpdateCategory(ctx, editID, cat)
			return err
		}, "Categoria aggiornata", bus.TopicCategories, bus.TopicMovements)
	}
	return actionCmd(func(ctx context.Context) error {
		_, err := client.CreateCategory(ctx, cat)
		return err
	}, "Categoria creata", bus.TopicCategories)
}

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active

	if a.cats.form != nil {
		title := "Nuova categoria"
		if a.cats.editID != 0 {
			title = "Modifica categoria"
		}
		return components.ContentCard(title, a.cats.form.View(), cw)
	}

	if a.cats.loading && !a.cats.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento categorie...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	var b strings.Builder
	if len(a.cats.items) == 0 {
		b.WriteString(dimStyle.Render("Nessuna categoria definita"))
	}

	for i, c := range a.cats.items {
		swatch := "  "
		if c.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■ ")
		}
		name := c.Name
		if c.Icon != "" {
			name = c.Icon + " " + name
		}

		if i == a.cats.cursor {
			marker := lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
			b.WriteString(marker + swatch + selStyle.Render(name) + "\n")
		} else {
			b.WriteString("  " + swatch + rowStyle.Render(name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" [Invio]movimenti del mese  [a]ggiungi  [e]modifica  [canc]elimina"))

	return components.ContentCard("Categorie", b.String(), cw)
}
