package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/tui/theme"
)

// loginState tracks the credential form shown while unauthenticated.
type loginState struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	busy     bool
	err      string
}

func newLoginState() loginState {
	user := textinput.New()
	user.Placeholder = "nome utente"
	user.CharLimit = 64
	user.Width = 36
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = 36
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginState{username: user, password: pass}
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.login.busy {
		return a, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.login.focus = 1 - a.login.focus
		if a.login.focus == 0 {
			a.login.username.Focus()
			a.login.password.Blur()
			return a, a.login.username.Cursor.BlinkCmd()
		}
		a.login.username.Blur()
		a.login.password.Focus()
		return a, a.login.password.Cursor.BlinkCmd()

	case "enter":
		if a.login.focus == 0 {
			a.login.focus = 1
			a.login.username.Blur()
			a.login.password.Focus()
			return a, a.login.password.Cursor.BlinkCmd()
		}
		username := strings.TrimSpace(a.login.username.Value())
		password := a.login.password.Value()
		if username == "" || password == "" {
			a.login.err = "Inserisci nome utente e password"
			return a, nil
		}
		a.login.busy = true
		a.login.err = ""
		return a, tea.Batch(loginCmd(&a, username, password), a.spinner.Tick)
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.username, cmd = a.login.username.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a App) viewLogin() string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + logoStyle.Render("◈ cassa"))
	b.WriteString(subStyle.Render(" · SpeseCasa"))
	b.WriteString("\n\n")
	b.WriteString("  " + labelStyle.Render("Accedi per continuare") + "\n\n")

	b.WriteString("  " + a.login.username.View() + "\n")
	b.WriteString("  " + a.login.password.View() + "\n\n")

	if a.login.busy {
		b.WriteString("  " + a.spinner.View() + subStyle.Render(" Accesso in corso...") + "\n")
	} else if a.login.err != "" {
		b.WriteString("  " + errStyle.Render("✗ "+a.login.err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  Tab: cambia campo  Invio: accedi  Ctrl+C: esci"))
	return b.String()
}
