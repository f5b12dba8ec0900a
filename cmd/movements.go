package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/cli"
)

var (
	flagMovCategory string
	flagMovType     string
	flagMovPlanned  bool
)

var movementsCmd = &cobra.Command{
	Use:     "movements",
	Aliases: []string{"mov"},
	Short:   "Elenca i movimenti del mese",
	RunE:    runMovements,
}

func init() {
	movementsCmd.Flags().StringVarP(&flagMovCategory, "category", "c", "", "Filtra per categoria")
	movementsCmd.Flags().StringVarP(&flagMovType, "type", "t", "", "Filtra per tipo (income|expense)")
	movementsCmd.Flags().BoolVar(&flagMovPlanned, "planned", false, "Includi i movimenti pianificati")
	rootCmd.AddCommand(movementsCmd)
}

func runMovements(_ *cobra.Command, _ []string) error {
	month, year, err := resolvePeriod()
	if err != nil {
		return err
	}

	filter := api.MovementFilter{
		Month:          month,
		Year:           year,
		Category:       flagMovCategory,
		IncludePlanned: flagMovPlanned,
	}
	switch flagMovType {
	case "":
	case "income", "entrata":
		filter.Type = api.Income
	case "expense", "uscita":
		filter.Type = api.Expense
	default:
		return fmt.Errorf("tipo non valido: %q (usa income o expense)", flagMovType)
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	movements, err := sess.Client().ListMovements(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(movements) == 0 {
		fmt.Printf("  Nessun movimento per %s.\n\n", cli.FormatMonthYear(month, year))
		return nil
	}

	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		desc := m.Description
		if m.IsPlanned {
			desc = "◦ " + desc
		}
		rows = append(rows, []string{
			cli.FormatDate(m.Date.Time),
			m.Category,
			cli.FormatSignedEUR(m.Amount, m.Type == api.Income),
			desc,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Movimenti · %s", cli.FormatMonthYear(month, year)),
		Headers: []string{"Data", "Categoria", "Importo", "Descrizione"},
		Rows:    rows,
	}))
	if flagMovPlanned {
		fmt.Println(cli.RenderMuted("  ◦ = movimento pianificato, non ancora confermato"))
	}
	fmt.Println()
	return nil
}
