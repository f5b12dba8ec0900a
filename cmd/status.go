package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Riepilogo del mese: entrate, uscite e stato dei budget",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	month, year, err := resolvePeriod()
	if err != nil {
		return err
	}

	_, sess := loadSetup()
	client := sess.Client()
	ctx, cancel := commandContext()
	defer cancel()

	summary, err := client.Summary(ctx, month, year)
	if err != nil {
		var netErr *api.NetworkError
		if errors.As(err, &netErr) {
			return statusFromSnapshot(month, year)
		}
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPESECASA · " + cli.FormatMonthYear(month, year)))
	fmt.Println()
	printSummaryTable(summary)

	statuses, err := client.BudgetStatuses(ctx, month, year)
	if err != nil {
		return err
	}
	if len(statuses) > 0 {
		rows := make([][]string, 0, len(statuses))
		for _, s := range statuses {
			spent, _ := s.Spent.Float64()
			limit, _ := s.Limit.Float64()
			rows = append(rows, []string{
				s.Category,
				cli.FormatEUR(s.Spent),
				cli.FormatEUR(s.Limit),
				cli.FormatPercent(s.Percentage),
				cli.RenderBudgetLabel(finance.BudgetLabel(spent, limit)),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Budget",
			Headers: []string{"Categoria", "Speso", "Limite", "Uso", "Stato"},
			Rows:    rows,
		}))
	}
	fmt.Println()
	return nil
}

// statusFromSnapshot renders the last figures seen from the server when it
// is unreachable. Snapshot data is read-only and clearly marked as stale.
func statusFromSnapshot(month, year int) error {
	snaps, err := store.Open(filepath.Join(config.StateDir(), "snapshots.db"))
	if err != nil {
		return errors.New("server non raggiungibile e nessun dato locale disponibile")
	}
	defer func() { _ = snaps.Close() }()

	summary, fetchedAt, ok, err := snaps.LoadSummary(month, year)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("server non raggiungibile e nessun dato locale per %s",
			cli.FormatMonthYear(month, year))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPESECASA · " + cli.FormatMonthYear(month, year)))
	fmt.Println()
	printSummaryTable(summary)
	fmt.Println(cli.RenderMuted(fmt.Sprintf(
		"  Server non raggiungibile: dati salvati il %s alle %s.",
		cli.FormatDate(fetchedAt), fetchedAt.Local().Format("15:04"))))
	fmt.Println()
	return nil
}

func printSummaryTable(s api.Summary) {
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Riepilogo",
		Headers: []string{"Voce", "Importo"},
		Rows: [][]string{
			{"Entrate", cli.FormatEUR(s.Income)},
			{"Uscite", cli.FormatEUR(s.Expense)},
			{"---"},
			{"Saldo", cli.FormatEUR(s.Balance)},
		},
	}))
}
