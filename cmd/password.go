package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/spesecasa/cassa/internal/finance"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Gestisci la password dell'account",
}

var passwordChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Cambia la password",
	RunE:  runPasswordChange,
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot <email>",
	Short: "Richiedi un token di recupero via email",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswordForgot,
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Imposta una nuova password con il token ricevuto",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswordReset,
}

func init() {
	passwordCmd.AddCommand(passwordChangeCmd)
	passwordCmd.AddCommand(passwordForgotCmd)
	passwordCmd.AddCommand(passwordResetCmd)
	rootCmd.AddCommand(passwordCmd)
}

// promptNewPassword asks for a new password twice, rejecting weak or
// mismatched input before anything reaches the server.
func promptNewPassword() (string, error) {
	var pw, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Nuova password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if len(s) < 8 {
					return errors.New("servono almeno 8 caratteri")
				}
				return nil
			}).
			Value(&pw),
		huh.NewInput().
			Title("Ripeti la nuova password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s != pw {
					return errors.New("le password non coincidono")
				}
				return nil
			}).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return "", err
	}

	score := finance.PasswordStrength(pw)
	fmt.Printf("  Robustezza: %s\n", finance.PasswordStrengthLabel(score))
	return pw, nil
}

func runPasswordChange(_ *cobra.Command, _ []string) error {
	var old string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Password attuale").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("la password attuale è obbligatoria")
				}
				return nil
			}).
			Value(&old),
	)).Run(); err != nil {
		return err
	}

	newPw, err := promptNewPassword()
	if err != nil {
		return err
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()
	if err := requireLogin(ctx, sess); err != nil {
		return err
	}

	if err := sess.Client().ChangePassword(ctx, old, newPw); err != nil {
		return err
	}
	fmt.Println("\n  Password aggiornata.")
	return nil
}

func runPasswordForgot(_ *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	if !strings.Contains(email, "@") {
		return fmt.Errorf("indirizzo email non valido: %q", email)
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()

	if err := sess.Client().ForgotPassword(ctx, email); err != nil {
		return err
	}
	fmt.Printf("\n  Se %s è registrato riceverà un token di recupero.\n\n", email)
	return nil
}

func runPasswordReset(_ *cobra.Command, args []string) error {
	token := strings.TrimSpace(args[0])

	newPw, err := promptNewPassword()
	if err != nil {
		return err
	}

	_, sess := loadSetup()
	ctx, cancel := commandContext()
	defer cancel()

	if err := sess.Client().ResetPassword(ctx, token, newPw); err != nil {
		return err
	}
	fmt.Println("\n  Password reimpostata, ora puoi accedere con `cassa login`.")
	return nil
}
