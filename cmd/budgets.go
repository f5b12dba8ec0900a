package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/finance"
)

var budgetsCmd = &cobra.Command{
	Use:     "budgets",
	Aliases: []string{"bud"},
	Short:   "Mostra i budget e quanto ne resta",
	RunE:    runBudgets,
}

func init() {
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	month, year, err := resolvePeriod()
	if err != nil {
		return err
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	statuses, err := sess.Client().BudgetStatuses(ctx, month, year)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(statuses) == 0 {
		fmt.Printf("  Nessun budget attivo per %s.\n\n", cli.FormatMonthYear(month, year))
		return nil
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		spent, _ := s.Spent.Float64()
		limit, _ := s.Limit.Float64()
		rows = append(rows, []string{
			s.Category,
			cli.FormatEUR(s.Spent),
			cli.FormatEUR(s.Limit),
			cli.FormatEUR(s.Remaining),
			cli.FormatPercent(s.Percentage),
			cli.RenderBudgetLabel(finance.BudgetLabel(spent, limit)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Budget · %s", cli.FormatMonthYear(month, year)),
		Headers: []string{"Categoria", "Speso", "Limite", "Residuo", "Uso", "Stato"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
