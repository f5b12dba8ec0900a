package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/logx"
)

// sessionReadyMsg reports the outcome of the startup token check.
type sessionReadyMsg struct {
	err error
}

// loginResultMsg reports the outcome of a credential login.
type loginResultMsg struct {
	err error
}

// dashboardMsg carries everything the dashboard tab renders. seq guards
// against a slow response landing after the user switched month.
type dashboardMsg struct {
	seq      uint64
	summary  api.Summary
	statuses []api.BudgetStatus
	chart    api.ChartData
	recent   []api.Movement
	years    []int
	err      error
}

type movementsMsg struct {
	seq   uint64
	items []api.Movement
	err   error
}

type budgetsMsg struct {
	seq      uint64
	items    []api.Budget
	statuses []api.BudgetStatus
	err      error
}

type categoriesMsg struct {
	seq   uint64
	items []api.Category
	err   error
}

type recurringMsg struct {
	seq   uint64
	items []api.RecurringExpense
	err   error
}

type goalsMsg struct {
	seq   uint64
	items []api.SavingsGoal
	err   error
}

type familiesMsg struct {
	seq   uint64
	items []api.Family
	err   error
}

type smtpMsg struct {
	seq uint64
	cfg api.SMTPConfig
	err error
}

// actionDoneMsg reports a completed mutation. Topics are published on the
// bus so every dependent tab refetches.
type actionDoneMsg struct {
	topics []bus.Topic
	notice string
	err    error
}

// budgetExpensesMsg carries the expense check that decides whether budget
// deletion needs a reassignment step. seq keeps a slow response from
// popping the overlay after the tab reloaded.
type budgetExpensesMsg struct {
	seq      uint64
	budget   api.Budget
	expenses []api.Movement
	err      error
}

// searchTickMsg fires when the search debounce window elapses.
type searchTickMsg struct {
	seq uint64
}

type searchResultMsg struct {
	seq uint64
	res api.SearchResults
	err error
}

const searchDebounce = 300 * time.Millisecond

func resumeSessionCmd(a *App) tea.Cmd {
	return func() tea.Msg {
		return sessionReadyMsg{err: a.sess.Resume(context.Background())}
	}
}

func loginCmd(a *App, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: a.sess.Login(context.Background(), username, password)}
	}
}

func fetchDashboardCmd(a *App, month, year int, seq uint64) tea.Cmd {
	client := a.sess.Client()
	snaps := a.snaps
	return func() tea.Msg {
		msg := dashboardMsg{seq: seq}

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.summary, err = client.Summary(ctx, month, year)
			return err
		})
		g.Go(func() error {
			var err error
			msg.statuses, err = client.BudgetStatuses(ctx, month, year)
			return err
		})
		g.Go(func() error {
			var err error
			msg.chart, err = client.ChartData(ctx, month, year)
			return err
		})
		g.Go(func() error {
			var err error
			msg.recent, err = client.ListMovements(ctx, api.MovementFilter{
				Month: month, Year: year, IncludePlanned: true,
			})
			return err
		})
		g.Go(func() error {
			var err error
			msg.years, err = client.AvailableYears(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			msg.err = err
			return msg
		}

		if snaps != nil {
			if err := snaps.SaveSummary(msg.summary); err != nil {
				logx.L().Warn().Err(err).Msg("snapshot save failed")
			}
			if err := snaps.SaveYears(msg.years); err != nil {
				logx.L().Warn().Err(err).Msg("snapshot years save failed")
			}
		}
		return msg
	}
}

func fetchMovementsCmd(a *App, f api.MovementFilter, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListMovements(context.Background(), f)
		return movementsMsg{seq: seq, items: items, err: err}
	}
}

func fetchBudgetsCmd(a *App, month, year int, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		msg := budgetsMsg{seq: seq}

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.items, err = client.ListBudgets(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.statuses, err = client.BudgetStatuses(ctx, month, year)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func fetchCategoriesCmd(a *App, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListCategories(context.Background())
		return categoriesMsg{seq: seq, items: items, err: err}
	}
}

func fetchRecurringCmd(a *App, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListRecurring(context.Background())
		return recurringMsg{seq: seq, items: items, err: err}
	}
}

func fetchGoalsCmd(a *App, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListGoals(context.Background())
		return goalsMsg{seq: seq, items: items, err: err}
	}
}

func fetchFamiliesCmd(a *App, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		items, err := client.ListFamilies(context.Background())
		return familiesMsg{seq: seq, items: items, err: err}
	}
}

func fetchSMTPCmd(a *App, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		cfg, err := client.GetSMTPConfig(context.Background())
		return smtpMsg{seq: seq, cfg: cfg, err: err}
	}
}

// actionCmd runs a mutation and reports which topics changed.
func actionCmd(fn func(ctx context.Context) error, notice string, topics ...bus.Topic) tea.Cmd {
	return func() tea.Msg {
		err := fn(context.Background())
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{topics: topics, notice: notice}
	}
}

func fetchBudgetExpensesCmd(a *App, b api.Budget, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		expenses, err := client.BudgetExpenses(context.Background(), b.ID)
		return budgetExpensesMsg{seq: seq, budget: b, expenses: expenses, err: err}
	}
}

func searchDebounceCmd(seq uint64) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func searchCmd(a *App, query string, seq uint64) tea.Cmd {
	client := a.sess.Client()
	return func() tea.Msg {
		res, err := client.Search(context.Background(), query)
		return searchResultMsg{seq: seq, res: res, err: err}
	}
}
