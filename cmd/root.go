// Package cmd wires the cassa command tree. The bare `cassa` command opens
// the TUI; every subcommand is a one-shot that prints and exits.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/session"
)

var (
	flagServer string
	flagMonth  int
	flagYear   int
)

var rootCmd = &cobra.Command{
	Use:   "cassa",
	Short: "Client per SpeseCasa, il registro delle spese di famiglia",
	Long: "cassa legge e registra movimenti, budget e obiettivi sul server SpeseCasa.\n" +
		"Senza argomenti apre l'interfaccia interattiva.",
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Errore: %s\n", commandErrText(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "URL del server SpeseCasa (default da config)")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", 0, "Mese (1-12, default corrente)")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Anno (default corrente)")
}

// loadSetup builds the shared client and session from config, environment
// and flags, in increasing priority.
func loadSetup() (config.Config, *session.Store) {
	cfg, _ := config.Load()

	url := config.GetServerURL(cfg)
	if flagServer != "" {
		url = flagServer
	}

	token := config.GetToken(cfg)
	client := api.New(url, token)
	return cfg, session.New(client)
}

// requireLogin validates the stored token before a one-shot command runs.
func requireLogin(ctx context.Context, sess *session.Store) error {
	if err := sess.Resume(ctx); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("non hai effettuato l'accesso: usa `cassa login`")
		}
		return err
	}
	return nil
}

// resolvePeriod returns the month/year selected by flags, defaulting to now.
func resolvePeriod() (int, int, error) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if flagMonth != 0 {
		if flagMonth < 1 || flagMonth > 12 {
			return 0, 0, fmt.Errorf("mese non valido: %d", flagMonth)
		}
		month = flagMonth
	}
	if flagYear != 0 {
		if flagYear < 2000 || flagYear > 2100 {
			return 0, 0, fmt.Errorf("anno non valido: %d", flagYear)
		}
		year = flagYear
	}
	return month, year, nil
}

// commandErrText mirrors the TUI error mapping for one-shot output.
func commandErrText(err error) string {
	var apiErr *api.APIError
	var netErr *api.NetworkError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "sessione scaduta, usa `cassa login`"
	case errors.As(err, &netErr):
		return "impossibile raggiungere il server"
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	default:
		return err.Error()
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
