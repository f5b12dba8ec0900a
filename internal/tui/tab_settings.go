package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/config"
	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// smtpFormVals backs the SMTP configuration form. The password field always
// starts empty: the stored password is never echoed back into the form.
type smtpFormVals struct {
	server   string
	porta    string
	utente   string
	password string
	mittente string
	tls      bool
}

// pwState is the change-password flow: three inputs with a live strength
// meter under the new password.
type pwState struct {
	active bool
	old    textinput.Model
	new1   textinput.Model
	new2   textinput.Model
	focus  int
	err    string
}

// setState holds the settings tab. form/submit carry whichever sub-form is
// currently open.
type setState struct {
	loaded  bool
	loading bool
	seq     uint64
	smtp    api.SMTPConfig
	cursor  int

	form   *huh.Form
	submit func(a *App) tea.Cmd

	smtpVals *smtpFormVals
	testVals *struct{ email string }
	servVals *struct{ url string }

	pw pwState
}

func (s setState) editing() bool {
	return s.form != nil || s.pw.active
}

type settingsRow struct {
	label  string
	value  string
	action string // row identifier for the enter handler
}

func (a App) settingsRows() []settingsRow {
	rows := []settingsRow{
		{"Tema", a.cfg.Appearance.Theme, "theme"},
		{"Server", a.cfg.Server.BaseURL, "server"},
		{"Includi pianificati", boolIT(a.cfg.General.IncludePlanned), "planned"},
		{"Cambia password", "", "password"},
	}
	if a.sess.IsSuperuser() {
		smtpValue := "(non configurato)"
		if a.set.smtp.SMTPServer != "" {
			smtpValue = fmt.Sprintf("%s:%d", a.set.smtp.SMTPServer, a.set.smtp.SMTPPort)
		}
		rows = append(rows,
			settingsRow{"Configura SMTP", smtpValue, "smtp"},
			settingsRow{"Email di prova", "", "testmail"},
		)
	}
	rows = append(rows, settingsRow{"Esci dall'account", "", "logout"})
	return rows
}

func (a *App) reloadSettings() tea.Cmd {
	if !a.sess.IsSuperuser() {
		a.set.loaded = true
		return nil
	}
	a.set.seq++
	a.set.loading = true
	return fetchSMTPCmd(a, a.set.seq)
}

func (a App) applySMTPMsg(msg smtpMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.set.seq {
		return a, nil
	}
	a.set.loading = false
	a.set.loaded = true
	if msg.err != nil {
		// A missing config is normal on first run; other errors surface.
		var apiErr *api.APIError
		if !errors.As(msg.err, &apiErr) || apiErr.Status != 404 {
			a.fail(msg.err)
		}
		return a, nil
	}
	a.set.smtp = msg.cfg
	return a, nil
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 36
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd) {
	rows := a.settingsRows()

	switch key {
	case "j", "down":
		if a.set.cursor < len(rows)-1 {
			a.set.cursor++
		}
		return a, nil
	case "k", "up":
		if a.set.cursor > 0 {
			a.set.cursor--
		}
		return a, nil
	case "enter":
		return a.settingsActivate(rows[a.set.cursor].action)
	}
	return a, nil
}

func (a App) settingsActivate(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "theme":
		// Cycle through the available themes and persist.
		cur := 0
		for i, t := range theme.All {
			if t.Name == a.cfg.Appearance.Theme {
				cur = i
				break
			}
		}
		next := theme.All[(cur+1)%len(theme.All)]
		a.cfg.Appearance.Theme = next.Name
		theme.SetActive(next.Name)
		_ = config.Save(a.cfg)
		return a, nil

	case "planned":
		a.cfg.General.IncludePlanned = !a.cfg.General.IncludePlanned
		_ = config.Save(a.cfg)
		a.movs.loaded = false
		return a, nil

	case "server":
		vals := &struct{ url string }{url: a.cfg.Server.BaseURL}
		a.set.servVals = vals
		a.set.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("URL del server").
				Placeholder("http://localhost:8000/api").
				Validate(func(s string) error {
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return errors.New("l'URL deve iniziare con http:// o https://")
					}
					return nil
				}).
				Value(&vals.url),
		)).WithWidth(a.contentWidth() - 6)
		a.set.submit = func(app *App) tea.Cmd {
			app.cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(app.set.servVals.url), "/")
			if err := config.Save(app.cfg); err != nil {
				app.fail(err)
				return nil
			}
			app.notice = "Server salvato, riavvia per applicare"
			return nil
		}
		return a, a.set.form.Init()

	case "password":
		a.set.pw = pwState{
			active: true,
			old:    newPasswordInput("password attuale"),
			new1:   newPasswordInput("nuova password"),
			new2:   newPasswordInput("ripeti la nuova password"),
		}
		a.set.pw.old.Focus()
		return a, a.set.pw.old.Cursor.BlinkCmd()

	case "smtp":
		vals := &smtpFormVals{
			server:   a.set.smtp.SMTPServer,
			utente:   a.set.smtp.SMTPUsername,
			mittente: a.set.smtp.FromEmail,
			tls:      a.set.smtp.UseTLS,
		}
		if a.set.smtp.SMTPPort != 0 {
			vals.porta = strconv.Itoa(a.set.smtp.SMTPPort)
		} else {
			vals.porta = "587"
		}
		a.set.smtpVals = vals
		a.set.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Server SMTP").Placeholder("smtp.example.com").Value(&vals.server),
			huh.NewInput().Title("Porta").Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 || n > 65535 {
					return errors.New("porta non valida")
				}
				return nil
			}).Value(&vals.porta),
			huh.NewInput().Title("Utente").Value(&vals.utente),
			huh.NewInput().Title("Password").
				Placeholder("vuoto = mantieni quella salvata").
				EchoMode(huh.EchoModePassword).
				Value(&vals.password),
			huh.NewInput().Title("Mittente").Placeholder("spese@example.com").Value(&vals.mittente),
			huh.NewConfirm().Title("Usa TLS?").Affirmative("Sì").Negative("No").Value(&vals.tls),
		)).WithWidth(a.contentWidth() - 6)
		a.set.submit = (*App).submitSMTPForm
		return a, a.set.form.Init()

	case "testmail":
		email := ""
		if u := a.sess.User(); u != nil {
			email = u.Email
		}
		vals := &struct{ email string }{email: email}
		a.set.testVals = vals
		a.set.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Invia una email di prova a").
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("indirizzo email non valido")
					}
					return nil
				}).
				Value(&vals.email),
		)).WithWidth(a.contentWidth() - 6)
		a.set.submit = func(app *App) tea.Cmd {
			addr := strings.TrimSpace(app.set.testVals.email)
			client := app.sess.Client()
			return actionCmd(func(ctx context.Context) error {
				return client.TestSMTP(ctx, addr)
			}, "Email di prova inviata")
		}
		return a, a.set.form.Init()

	case "logout":
		a.confirm = &confirmState{
			title: "Esci",
			body:  "Uscire dall'account su questo dispositivo?",
			cmd: func() tea.Msg {
				return logoutMsg{}
			},
		}
		return a, nil
	}
	return a, nil
}

// logoutMsg triggers the local logout transition.
type logoutMsg struct{}

func (a *App) submitSMTPForm() tea.Cmd {
	vals := a.set.smtpVals
	port, err := strconv.Atoi(strings.TrimSpace(vals.porta))
	if err != nil {
		return func() tea.Msg { return actionDoneMsg{err: fmt.Errorf("parsing port: %w", err)} }
	}
	cfg := api.SMTPConfig{
		SMTPServer:   strings.TrimSpace(vals.server),
		SMTPPort:     port,
		SMTPUsername: strings.TrimSpace(vals.utente),
		SMTPPassword: vals.password,
		FromEmail:    strings.TrimSpace(vals.mittente),
		UseTLS:       vals.tls,
	}
	client := a.sess.Client()
	a.set.loaded = false
	return actionCmd(func(ctx context.Context) error {
		return client.UpdateSMTPConfig(ctx, cfg)
	}, "Configurazione SMTP salvata")
}

func (a App) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.set.pw.active {
		return a.updatePasswordForm(msg)
	}
	if a.set.form == nil {
		return a, nil
	}

	form, cmd := a.set.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.set.form = f
	}

	switch a.set.form.State {
	case huh.StateCompleted:
		submit := a.set.submit
		a.set.form = nil
		a.set.submit = nil
		if submit != nil {
			return a, submit(&a)
		}
		return a, nil
	case huh.StateAborted:
		a.set.form = nil
		a.set.submit = nil
		return a, nil
	}
	return a, cmd
}

func (a App) updatePasswordForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.set.pw.old, cmd = a.set.pw.old.Update(msg)
		cmds = append(cmds, cmd)
		a.set.pw.new1, cmd = a.set.pw.new1.Update(msg)
		cmds = append(cmds, cmd)
		a.set.pw.new2, cmd = a.set.pw.new2.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)
	}

	focusAt := func(i int) tea.Cmd {
		a.set.pw.focus = i
		inputs := []*textinput.Model{&a.set.pw.old, &a.set.pw.new1, &a.set.pw.new2}
		for j, in := range inputs {
			if j == i {
				in.Focus()
			} else {
				in.Blur()
			}
		}
		return inputs[i].Cursor.BlinkCmd()
	}

	switch km.String() {
	case "esc":
		a.set.pw = pwState{}
		return a, nil
	case "tab", "down":
		return a, focusAt((a.set.pw.focus + 1) % 3)
	case "shift+tab", "up":
		return a, focusAt((a.set.pw.focus + 2) % 3)
	case "enter":
		if a.set.pw.focus < 2 {
			return a, focusAt(a.set.pw.focus + 1)
		}
		old := a.set.pw.old.Value()
		new1 := a.set.pw.new1.Value()
		new2 := a.set.pw.new2.Value()
		switch {
		case old == "" || new1 == "":
			a.set.pw.err = "Compila tutti i campi"
			return a, nil
		case new1 != new2:
			a.set.pw.err = "Le nuove password non coincidono"
			return a, nil
		case len(new1) < 8:
			a.set.pw.err = "La nuova password deve avere almeno 8 caratteri"
			return a, nil
		}
		a.set.pw = pwState{}
		client := a.sess.Client()
		return a, actionCmd(func(ctx context.Context) error {
			return client.ChangePassword(ctx, old, new1)
		}, "Password aggiornata")
	}

	var cmd tea.Cmd
	switch a.set.pw.focus {
	case 0:
		a.set.pw.old, cmd = a.set.pw.old.Update(msg)
	case 1:
		a.set.pw.new1, cmd = a.set.pw.new1.Update(msg)
	default:
		a.set.pw.new2, cmd = a.set.pw.new2.Update(msg)
	}
	return a, cmd
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	if a.set.pw.active {
		var b strings.Builder
		b.WriteString(a.set.pw.old.View() + "\n")
		b.WriteString(a.set.pw.new1.View() + "\n")
		b.WriteString("  " + components.StrengthMeter(finance.PasswordStrength(a.set.pw.new1.Value())) + "\n")
		b.WriteString(a.set.pw.new2.View() + "\n\n")
		if a.set.pw.err != "" {
			b.WriteString(errStyle.Render("✗ "+a.set.pw.err) + "\n")
		}
		b.WriteString(dimStyle.Render("Tab: cambia campo  Invio: conferma  Esc: annulla"))
		return components.ContentCard("Cambia password", b.String(), cw)
	}

	if a.set.form != nil {
		return components.ContentCard("Impostazioni", a.set.form.View(), cw)
	}

	if a.set.loading && !a.set.loaded {
		return "\n  " + a.spinner.View() + labelStyle.Render(" Caricamento impostazioni...")
	}

	var b strings.Builder
	for i, row := range a.settingsRows() {
		if i == a.set.cursor {
			marker := lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
			b.WriteString(marker + selLabelStyle.Render(fmt.Sprintf("%-22s", row.label)))
		} else {
			b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-22s", row.label)))
		}
		b.WriteString(valueStyle.Render(row.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" j/k: naviga  Invio: apri/cambia"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(" Config: ") + dimStyle.Render(config.Path()))

	return components.ContentCard("Impostazioni", b.String(), cw)
}
