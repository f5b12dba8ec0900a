package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Accedi al server e salva il token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Dimentica il token salvato",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(_ *cobra.Command, args []string) error {
	var username, password string
	if len(args) == 1 {
		username = args[0]
	}

	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Nome utente").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("il nome utente è obbligatorio")
				}
				return nil
			}).
			Value(&username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if s == "" {
				return errors.New("la password è obbligatoria")
			}
			return nil
		}).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()

	if err := sess.Login(ctx, strings.TrimSpace(username), password); err != nil {
		return err
	}

	user := sess.User()
	fmt.Printf("\n  Accesso effettuato come %s.\n\n", user.DisplayName())
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	_, sess := loadSetup()
	if err := sess.Logout(); err != nil {
		return err
	}
	fmt.Println("\n  Sessione chiusa.")
	return nil
}
