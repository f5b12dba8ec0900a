package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// dashState holds the dashboard tab data. All figures come straight from
// the server; nothing is aggregated locally.
type dashState struct {
	loaded     bool
	loading    bool
	seq        uint64
	seenRev    uint64 // movements revision at fetch time
	seenBudRev uint64 // budgets revision at fetch time

	summary  api.Summary
	statuses []api.BudgetStatus
	chart    api.ChartData
	recent   []api.Movement
}

func (a *App) reloadDashboard() tea.Cmd {
	a.dash.seq++
	a.dash.loading = true
	a.dash.seenRev = a.bus.Revision(bus.TopicMovements)
	a.dash.seenBudRev = a.bus.Revision(bus.TopicBudgets)
	return fetchDashboardCmd(a, a.month, a.year, a.dash.seq)
}

func (a App) applyDashboardMsg(msg dashboardMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.dash.seq {
		return a, nil
	}
	a.dash.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.dash.loaded = true
	a.dash.summary = msg.summary
	a.dash.statuses = msg.statuses
	a.dash.chart = msg.chart
	a.dash.recent = msg.recent
	a.years = msg.years
	return a, nil
}

func (a App) updateDashboardKeys(key string) (tea.Model, tea.Cmd) {
	if key == "R" {
		return a, a.reloadDashboard()
	}
	return a, nil
}

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active

	if a.dash.loading && !a.dash.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render(" Caricamento dashboard...")
	}
	if !a.dash.loaded {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	// Welcome line
	if u := a.sess.User(); u != nil {
		b.WriteString(" " + labelStyle.Render(fmt.Sprintf("Ciao %s, ecco la situazione di %s.", u.DisplayName(), cli.FormatMonthYear(a.month, a.year))))
		b.WriteString("\n")
	}

	// Metric cards: monthly income, monthly expense, all-time balance
	widths := components.LayoutRow(cw, 3)
	cards := []string{
		components.MetricCard("Entrate", cli.FormatEUR(a.dash.summary.Income), cli.FormatMonthYear(a.month, a.year), widths[0]),
		components.MetricCard("Uscite", cli.FormatEUR(a.dash.summary.Expense), cli.FormatMonthYear(a.month, a.year), widths[1]),
		components.MetricCard("Saldo", cli.FormatEUR(a.dash.summary.Balance), "complessivo ad oggi", widths[2]),
	}
	b.WriteString(components.CardRow(cards))
	b.WriteString("\n")

	// Budget gauges
	if len(a.dash.statuses) > 0 {
		var gauges strings.Builder
		labelW := 0
		for _, s := range a.dash.statuses {
			if len(s.Category) > labelW {
				labelW = len(s.Category)
			}
		}
		barW := components.CardInnerWidth(cw) - labelW - 22
		if barW < 10 {
			barW = 10
		}
		for i, s := range a.dash.statuses {
			if i > 0 {
				gauges.WriteString("\n")
			}
			spent, _ := s.Spent.Float64()
			limit, _ := s.Limit.Float64()
			pct := finance.BudgetProgress(spent, limit)
			label := finance.BudgetLabel(spent, limit)
			gauges.WriteString(components.BudgetBar(s.Category, pct, label, labelW, barW))
		}
		b.WriteString(components.ContentCard("Stato budget", gauges.String(), cw))
		b.WriteString("\n")
	}

	// Expenses by category bars + recent movements side by side
	half := components.LayoutRow(cw, 2)

	var chart strings.Builder
	if len(a.dash.chart.ExpensesByCategory) > 0 {
		byCat := make([]api.CategoryAmount, len(a.dash.chart.ExpensesByCategory))
		copy(byCat, a.dash.chart.ExpensesByCategory)
		sort.Slice(byCat, func(i, j int) bool {
			return byCat[i].Amount.GreaterThan(byCat[j].Amount)
		})
		maxVal, _ := byCat[0].Amount.Float64()
		barW := components.CardInnerWidth(half[0]) / 2
		if barW < 8 {
			barW = 8
		}
		for i, c := range byCat {
			if i > 0 {
				chart.WriteString("\n")
			}
			v, _ := c.Amount.Float64()
			chart.WriteString(cli.RenderHorizontalBar(c.Category, cli.FormatEUR(c.Amount), v, maxVal, barW))
		}
	} else {
		chart.WriteString(dimStyle.Render("Nessuna spesa nel periodo"))
	}

	var recent strings.Builder
	if len(a.dash.recent) == 0 {
		recent.WriteString(dimStyle.Render("Nessun movimento nel periodo"))
	} else {
		n := len(a.dash.recent)
		if n > 8 {
			n = 8
		}
		for i := 0; i < n; i++ {
			m := a.dash.recent[i]
			if i > 0 {
				recent.WriteString("\n")
			}
			desc := m.Description
			if desc == "" {
				desc = m.Category
			}
			recent.WriteString(fmt.Sprintf("%s  %-24.24s %s",
				dimStyle.Render(cli.FormatDate(m.Date.Time)),
				desc,
				cli.FormatSignedEUR(m.Amount, m.Type == api.Income)))
		}
	}

	row := components.CardRow([]string{
		components.ContentCard("Spese per categoria", chart.String(), half[0]),
		components.ContentCard("Ultimi movimenti", recent.String(), half[1]),
	})
	b.WriteString(row)

	return b.String()
}
