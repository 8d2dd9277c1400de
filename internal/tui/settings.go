package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/auth"
	"plantpulse/internal/prefs"
)

type settingsModel struct {
	prefs   *prefs.Store
	session *auth.Session
	width   int
	height  int

	values     map[string]string
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	accountEmail *string
	accountName  *string
	accountToken *string
	sortKey      *string
	sortDesc     *string
	chartDays    *string
	exportDir    *string
}

func newSettingsModel(p *prefs.Store, s *auth.Session) settingsModel {
	email, name, token := "", "", ""
	sk, sd, cd, ed := "", "", "", ""
	return settingsModel{
		prefs:        p,
		session:      s,
		accountEmail: &email,
		accountName:  &name,
		accountToken: &token,
		sortKey:      &sk,
		sortDesc:     &sd,
		chartDays:    &cd,
		exportDir:    &ed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		values, _ := s.prefs.All()
		return settingsDataMsg{values: values}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.values = msg.values
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	pr := s.session.Principal()
	*s.accountEmail = pr.Email
	*s.accountName = pr.DisplayName
	*s.accountToken = s.session.Token()
	*s.sortKey = s.prefs.GetDefault(prefs.KeySortKey, "name")
	*s.sortDesc = s.prefs.GetDefault(prefs.KeySortDesc, "false")
	*s.chartDays = s.prefs.GetDefault(prefs.KeyChartDays, "7")
	*s.exportDir = s.prefs.GetDefault(prefs.KeyExportDir, "")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email (empty to sign out)").Value(s.accountEmail),
			huh.NewInput().Title("Display name").Value(s.accountName),
			huh.NewInput().Title("API token").Value(s.accountToken),
		).Title("Account"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default sort").
				Options(
					huh.NewOption("Name", "name"),
					huh.NewOption("Care level", "care_level"),
					huh.NewOption("Next watering", "next_watering"),
				).Value(s.sortKey),
			huh.NewSelect[string]().Title("Sort order").
				Options(
					huh.NewOption("Ascending", "false"),
					huh.NewOption("Descending", "true"),
				).Value(s.sortDesc),
			huh.NewInput().Title("Dashboard chart days").Value(s.chartDays),
			huh.NewInput().Title("Export directory").Value(s.exportDir),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.save()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) save() {
	if *s.accountEmail == "" {
		s.session.SignOut()
	} else {
		s.session.SignIn(auth.Principal{
			Email:       *s.accountEmail,
			DisplayName: *s.accountName,
		}, *s.accountToken)
	}

	s.prefs.Set(prefs.KeySortKey, *s.sortKey)
	s.prefs.Set(prefs.KeySortDesc, *s.sortDesc)
	if _, err := strconv.Atoi(*s.chartDays); err == nil {
		s.prefs.Set(prefs.KeyChartDays, *s.chartDays)
	}
	s.prefs.Set(prefs.KeyExportDir, *s.exportDir)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	pr := s.session.Principal()
	account := mutedStyle.Render("not signed in")
	if pr.Authenticated {
		account = highlightStyle.Render(pr.Email)
		if pr.DisplayName != "" {
			account += mutedStyle.Render(" (" + pr.DisplayName + ")")
		}
	}
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("account"), account))

	for _, k := range []string{prefs.KeySortKey, prefs.KeySortDesc, prefs.KeyChartDays, prefs.KeyExportDir} {
		label := lipgloss.NewStyle().Width(24).Render(k)
		value := highlightStyle.Render(formatSettingValue(k, s.values[k]))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatSettingValue(k, v string) string {
	switch k {
	case prefs.KeySortDesc:
		if v == "true" {
			return "descending"
		}
		return "ascending"
	case prefs.KeyExportDir:
		if v == "" {
			return "~ (home)"
		}
	case prefs.KeyChartDays:
		if v != "" {
			return v + " days"
		}
	}
	return v
}
