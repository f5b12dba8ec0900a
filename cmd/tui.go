package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/bus"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/logx"
	"github.com/spesecasa/cassa/internal/store"
	"github.com/spesecasa/cassa/internal/tui"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Apri l'interfaccia interattiva",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// stdout belongs to the TUI, diagnostics go to the log file.
	logx.Init(config.StateDir())

	cfg, sess := loadSetup()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes;
	// lipgloss may otherwise pick the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	snaps, err := store.Open(filepath.Join(config.StateDir(), "snapshots.db"))
	if err != nil {
		// The TUI works without snapshots, only offline status suffers.
		logx.L().Warn().Err(err).Msg("snapshot db unavailable")
		snaps = nil
	} else {
		defer func() { _ = snaps.Close() }()
	}

	b := bus.New()
	if month, year, err := resolvePeriod(); err == nil {
		b.SetDateContext(month, year)
	}

	hasToken := config.GetToken(cfg) != ""
	if err := tui.Run(cfg, sess, b, snaps, hasToken); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
