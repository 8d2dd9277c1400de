package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/auth"
	"plantpulse/internal/mutate"
	"plantpulse/internal/plant"
	"plantpulse/internal/store"
)

var plantCategories = []string{"Indoor", "Outdoor", "Succulent", "Flowering", "Herb", "Fern", "Tree", "Other"}
var healthStatuses = []string{"Healthy", "Needs Attention", "Sick", "Recovering"}

type myPlantsModel struct {
	records *store.Records
	coord   *mutate.Coordinator
	session *auth.Session
	width   int
	height  int

	plants []plant.Plant
	cursor int

	confirmingDelete bool

	formActive bool
	form       *huh.Form
	formType   string // "add", "edit"

	// Form field pointers (survive value copies)
	formName      *string
	formCategory  *string
	formDesc      *string
	formCareLevel *string
	formSunlight  *string
	formFreq      *string
	formHealth    *string
	formTips      *string

	editingID string
}

func newMyPlantsModel(r *store.Records, c *mutate.Coordinator, s *auth.Session) myPlantsModel {
	name, cat, desc, care := "", plantCategories[0], "", plant.CareLevelEasy
	sun, freq, health, tips := "", "", healthStatuses[0], ""
	return myPlantsModel{
		records:       r,
		coord:         c,
		session:       s,
		formName:      &name,
		formCategory:  &cat,
		formDesc:      &desc,
		formCareLevel: &care,
		formSunlight:  &sun,
		formFreq:      &freq,
		formHealth:    &health,
		formTips:      &tips,
	}
}

func (m *myPlantsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m myPlantsModel) refresh() tea.Cmd {
	owner := m.session.Principal().Email
	return func() tea.Msg {
		if owner == "" {
			return myPlantsDataMsg{}
		}
		q := store.Query{Owner: owner, Sort: store.SortByNextWatering}
		return myPlantsDataMsg{plants: store.RunQuery(m.records.GetAll(), q)}
	}
}

func (m myPlantsModel) update(msg tea.Msg) (myPlantsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case myPlantsDataMsg:
		m.plants = msg.plants
		if m.cursor >= len(m.plants) {
			m.cursor = max(0, len(m.plants)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmingDelete {
			return m.updateDeleteConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m myPlantsModel) updateList(msg tea.KeyMsg) (myPlantsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.plants)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		if !m.session.Principal().Authenticated {
			return m, signInNeeded("adding plants")
		}
		return m.showAddForm()
	case key.Matches(msg, keys.Enter):
		if len(m.plants) > 0 {
			return m.showEditForm()
		}
	case key.Matches(msg, keys.Water):
		if len(m.plants) > 0 {
			return m, m.waterPlant(m.plants[m.cursor])
		}
	case key.Matches(msg, keys.Delete):
		if len(m.plants) > 0 {
			m.confirmingDelete = true
		}
	}
	return m, nil
}

func (m myPlantsModel) updateDeleteConfirm(msg tea.KeyMsg) (myPlantsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		m.confirmingDelete = false
		if m.cursor < len(m.plants) {
			return m, m.deletePlant(m.plants[m.cursor])
		}
	case key.Matches(msg, keys.Back):
		m.confirmingDelete = false
	}
	return m, nil
}

func (m myPlantsModel) showAddForm() (myPlantsModel, tea.Cmd) {
	*m.formName = ""
	*m.formCategory = plantCategories[0]
	*m.formDesc = ""
	*m.formCareLevel = plant.CareLevelEasy
	*m.formSunlight = ""
	*m.formFreq = "7"
	*m.formHealth = healthStatuses[0]
	*m.formTips = ""
	m.formType = "add"

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m myPlantsModel) showEditForm() (myPlantsModel, tea.Cmd) {
	p := m.plants[m.cursor]
	*m.formName = p.Name
	*m.formCategory = p.Category
	*m.formDesc = p.Description
	*m.formCareLevel = p.CareLevel
	*m.formSunlight = p.Sunlight
	*m.formFreq = strconv.Itoa(p.WateringFrequencyDays)
	*m.formHealth = p.HealthStatus
	*m.formTips = p.CareTips
	m.formType = "edit"
	m.editingID = p.ID

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m myPlantsModel) buildForm() *huh.Form {
	catOptions := make([]huh.Option[string], len(plantCategories))
	for i, c := range plantCategories {
		catOptions[i] = huh.NewOption(c, c)
	}
	careOptions := []huh.Option[string]{
		huh.NewOption(plant.CareLevelEasy, plant.CareLevelEasy),
		huh.NewOption(plant.CareLevelModerate, plant.CareLevelModerate),
		huh.NewOption(plant.CareLevelDifficult, plant.CareLevelDifficult),
	}
	healthOptions := make([]huh.Option[string], len(healthStatuses))
	for i, h := range healthStatuses {
		healthOptions[i] = huh.NewOption(h, h)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCategory),
			huh.NewSelect[string]().Title("Care Level").Options(careOptions...).Value(m.formCareLevel),
			huh.NewInput().Title("Watering every (days)").Value(m.formFreq),
		),
		huh.NewGroup(
			huh.NewInput().Title("Sunlight").Value(m.formSunlight),
			huh.NewSelect[string]().Title("Health").Options(healthOptions...).Value(m.formHealth),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewInput().Title("Care Tips").Value(m.formTips),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m myPlantsModel) updateForm(msg tea.Msg) (myPlantsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formName == "" {
			return m, nil
		}
		switch m.formType {
		case "add":
			return m, m.createPlant()
		case "edit":
			return m, m.editPlant(m.editingID)
		}
	}

	return m, cmd
}

func (m myPlantsModel) createPlant() tea.Cmd {
	freq, _ := strconv.Atoi(strings.TrimSpace(*m.formFreq))
	draft := plant.Plant{
		Name:                  *m.formName,
		Category:              *m.formCategory,
		Description:           *m.formDesc,
		CareLevel:             *m.formCareLevel,
		Sunlight:              *m.formSunlight,
		HealthStatus:          *m.formHealth,
		CareTips:              *m.formTips,
		WateringFrequencyDays: freq,
	}
	if freq > 0 {
		next := time.Now().AddDate(0, 0, freq)
		draft.NextWatering = &next
	}
	pr := m.session.Principal()
	return func() tea.Msg {
		created, err := m.coord.Create(context.Background(), draft, pr)
		return mutationDoneMsg{action: "added", name: created.Name, err: err}
	}
}

func (m myPlantsModel) editPlant(id string) tea.Cmd {
	freq, _ := strconv.Atoi(strings.TrimSpace(*m.formFreq))
	patch := plant.Patch{
		Name:                  strPtr(*m.formName),
		Category:              strPtr(*m.formCategory),
		Description:           strPtr(*m.formDesc),
		CareLevel:             strPtr(*m.formCareLevel),
		Sunlight:              strPtr(*m.formSunlight),
		HealthStatus:          strPtr(*m.formHealth),
		CareTips:              strPtr(*m.formTips),
		WateringFrequencyDays: &freq,
	}
	name := *m.formName
	pr := m.session.Principal()
	return func() tea.Msg {
		_, err := m.coord.Update(context.Background(), id, patch, pr)
		return mutationDoneMsg{action: "updated", name: name, err: err}
	}
}

// waterPlant stamps the last-watered date and pushes the next due date out
// by the plant's watering interval.
func (m myPlantsModel) waterPlant(p plant.Plant) tea.Cmd {
	now := time.Now()
	patch := plant.Patch{LastWatered: &now}
	if p.WateringFrequencyDays > 0 {
		next := now.AddDate(0, 0, p.WateringFrequencyDays)
		patch.NextWatering = &next
	}
	pr := m.session.Principal()
	return func() tea.Msg {
		_, err := m.coord.Update(context.Background(), p.ID, patch, pr)
		return mutationDoneMsg{action: "watered", name: p.Name, err: err}
	}
}

func (m myPlantsModel) deletePlant(p plant.Plant) tea.Cmd {
	pr := m.session.Principal()
	return func() tea.Msg {
		err := m.coord.Delete(context.Background(), p.ID, pr)
		return mutationDoneMsg{action: "deleted", name: p.Name, err: err}
	}
}

func (m myPlantsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Plant")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Plant")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	if m.confirmingDelete && m.cursor < len(m.plants) {
		return m.renderDeleteConfirm(w)
	}

	return m.renderList(w)
}

func (m myPlantsModel) renderList(w int) string {
	pr := m.session.Principal()

	title := titleStyle.Render("My Plants")
	if pr.Authenticated {
		title += mutedStyle.Render("  " + pr.Email)
	}

	if !pr.Authenticated {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Not signed in. Set your account in Settings to manage plants."),
		)
		return panelStyle.Width(w).Render(content)
	}

	if len(m.plants) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No plants yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := time.Now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	colHeader := mutedStyle.Render(fmt.Sprintf("  %-24s %-12s %-12s %-12s %s",
		"Name", "Care", "Health", "Last Watered", "Next Watering"))
	rows = append(rows, colHeader)

	for i, p := range m.plants {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-24s %-12s %-12s %-12s ",
			cursor, truncate(p.Name, 24), p.CareLevel, truncate(p.HealthStatus, 12), formatDate(p.LastWatered)))
		row += scheduleBadge(p.NextWatering, now)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: edit  w: water  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m myPlantsModel) renderDeleteConfirm(w int) string {
	p := m.plants[m.cursor]
	title := titleStyle.Render("Delete Plant")

	rows := []string{
		title,
		"",
		fmt.Sprintf("  Delete %s? This removes it from the server.", accentStyle.Render(p.Name)),
		"",
		mutedStyle.Render("  enter: delete  esc: cancel"),
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func signInNeeded(what string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: "Sign in before " + what + " (Settings, tab 5)", isError: true}
	}
}

func strPtr(s string) *string { return &s }
