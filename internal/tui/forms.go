package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// activeTabForm returns the open edit form of the active tab, if any.
func (a App) activeTabForm() *huh.Form {
	switch {
	case a.movs.form != nil:
		return a.movs.form
	case a.buds.form != nil:
		return a.buds.form
	case a.cats.form != nil:
		return a.cats.form
	case a.recs.form != nil:
		return a.recs.form
	case a.goals.form != nil:
		return a.goals.form
	case a.fams.form != nil:
		return a.fams.form
	}
	return nil
}

// updateTabForm feeds a message to the open tab form and submits or
// dismisses it on completion.
func (a App) updateTabForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	step := func(form *huh.Form) (*huh.Form, tea.Cmd) {
		next, cmd := form.Update(msg)
		if f, ok := next.(*huh.Form); ok {
			return f, cmd
		}
		return form, cmd
	}

	switch {
	case a.movs.form != nil:
		var cmd tea.Cmd
		a.movs.form, cmd = step(a.movs.form)
		switch a.movs.form.State {
		case huh.StateCompleted:
			a.movs.form = nil
			return a, a.submitMovementForm()
		case huh.StateAborted:
			a.movs.form = nil
			return a, nil
		}
		return a, cmd

	case a.buds.form != nil:
		var cmd tea.Cmd
		a.buds.form, cmd = step(a.buds.form)
		switch a.buds.form.State {
		case huh.StateCompleted:
			a.buds.form = nil
			return a, a.submitBudgetForm()
		case huh.StateAborted:
			a.buds.form = nil
			return a, nil
		}
		return a, cmd

	case a.cats.form != nil:
		var cmd tea.Cmd
		a.cats.form, cmd = step(a.cats.form)
		switch a.cats.form.State {
		case huh.StateCompleted:
			a.cats.form = nil
			return a, a.submitCategoryForm()
		case huh.StateAborted:
			a.cats.form = nil
			return a, nil
		}
		return a, cmd

	case a.recs.form != nil:
		var cmd tea.Cmd
		a.recs.form, cmd = step(a.recs.form)
		switch a.recs.form.State {
		case huh.StateCompleted:
			a.recs.form = nil
			return a, a.submitRecurringForm()
		case huh.StateAborted:
			a.recs.form = nil
			return a, nil
		}
		return a, cmd

	case a.goals.form != nil:
		var cmd tea.Cmd
		a.goals.form, cmd = step(a.goals.form)
		switch a.goals.form.State {
		case huh.StateCompleted:
			a.goals.form = nil
			return a, a.submitGoalForm()
		case huh.StateAborted:
			a.goals.form = nil
			return a, nil
		}
		return a, cmd

	case a.fams.form != nil:
		var cmd tea.Cmd
		a.fams.form, cmd = step(a.fams.form)
		switch a.fams.form.State {
		case huh.StateCompleted:
			a.fams.form = nil
			return a, a.submitFamilyForm()
		case huh.StateAborted:
			a.fams.form = nil
			return a, nil
		}
		return a, cmd
	}

	return a, nil
}
