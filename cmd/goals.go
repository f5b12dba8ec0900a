package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/finance"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Mostra gli obiettivi di risparmio",
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	goals, err := sess.Client().ListGoals(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(goals) == 0 {
		fmt.Println("  Nessun obiettivo di risparmio.")
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		deadline := ""
		monthly := ""
		if g.Deadline != nil {
			deadline = cli.FormatDate(g.Deadline.Time)
			d := g.Deadline.Time
			if need := finance.MonthlySavingsNeeded(g.TargetAmount, g.CurrentAmount, &d, now); need != nil {
				if need.IsZero() {
					monthly = "raggiunto"
				} else {
					monthly = cli.FormatEUR(*need) + "/mese"
				}
			} else if d.Before(now) {
				monthly = "scaduto"
			}
		}
		rows = append(rows, []string{
			g.Name,
			cli.FormatEUR(g.CurrentAmount),
			cli.FormatEUR(g.TargetAmount),
			cli.FormatPercent(finance.GoalProgress(g.TargetAmount, g.CurrentAmount)),
			deadline,
			monthly,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Obiettivi di risparmio",
		Headers: []string{"Nome", "Risparmiato", "Obiettivo", "Avanzamento", "Scadenza", "Necessario"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
