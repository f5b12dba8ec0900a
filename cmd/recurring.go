package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/cli"
)

var recurringCmd = &cobra.Command{
	Use:     "recurring",
	Aliases: []string{"rec"},
	Short:   "Elenca le spese ricorrenti",
	RunE:    runRecurring,
}

func init() {
	rootCmd.AddCommand(recurringCmd)
}

func runRecurring(_ *cobra.Command, _ []string) error {
	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	items, err := sess.Client().ListRecurring(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(items) == 0 {
		fmt.Println("  Nessuna spesa ricorrente definita.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, r := range items {
		state := "attiva"
		if !r.IsActive {
			state = "sospesa"
		}
		rows = append(rows, []string{
			r.Name,
			r.Category,
			cli.FormatEUR(r.Amount),
			cli.FormatRecurrence(r.RecurrenceType, r.DayOfMonth),
			state,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Spese ricorrenti",
		Headers: []string{"Nome", "Categoria", "Importo", "Cadenza", "Stato"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
