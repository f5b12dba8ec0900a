package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/cli"
)

var searchCmd = &cobra.Command{
	Use:   "search <testo>",
	Short: "Cerca tra movimenti, categorie e spese ricorrenti",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if len([]rune(query)) < api.MinSearchLength {
		return fmt.Errorf("servono almeno %d caratteri per la ricerca", api.MinSearchLength)
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	res, err := sess.Client().Search(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println()
	if res.TotalResults == 0 {
		fmt.Printf("  Nessun risultato per %q.\n\n", query)
		return nil
	}

	if movs := res.Results.Movements; len(movs) > 0 {
		rows := make([][]string, 0, len(movs))
		for _, m := range movs {
			rows = append(rows, []string{
				cli.FormatDate(m.Date.Time),
				m.Category,
				cli.FormatSignedEUR(m.Amount, m.Type == api.Income),
				m.Description,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Movimenti",
			Headers: []string{"Data", "Categoria", "Importo", "Descrizione"},
			Rows:    rows,
		}))
	}

	if cats := res.Results.Categories; len(cats) > 0 {
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{c.Name, c.Color})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Categorie",
			Headers: []string{"Nome", "Colore"},
			Rows:    rows,
		}))
	}

	if recs := res.Results.RecurringExpenses; len(recs) > 0 {
		rows := make([][]string, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []string{
				r.Name,
				r.Category,
				cli.FormatEUR(r.Amount),
				cli.FormatRecurrence(r.RecurrenceType, r.DayOfMonth),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spese ricorrenti",
			Headers: []string{"Nome", "Categoria", "Importo", "Cadenza"},
			Rows:    rows,
		}))
	}

	fmt.Printf("  %d risultati in totale.\n\n", res.TotalResults)
	return nil
}
