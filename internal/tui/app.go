package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/apperr"
	"plantpulse/internal/auth"
	"plantpulse/internal/export"
	"plantpulse/internal/mutate"
	"plantpulse/internal/prefs"
	"plantpulse/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	records *store.Records
	coord   *mutate.Coordinator
	session *auth.Session
	prefs   *prefs.Store
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	library   libraryModel
	myPlants  myPlantsModel
	dashboard dashboardModel
	careGuide careModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool

	refreshes *refreshControl
}

// refreshControl owns the context of the in-flight list fetch. It is shared
// by pointer across model copies.
type refreshControl struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// next cancels any fetch still in flight and hands out the context for the
// new one.
func (rc *refreshControl) next() context.Context {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.cancel != nil {
		rc.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	rc.cancel = cancel
	return ctx
}

func (rc *refreshControl) stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.cancel != nil {
		rc.cancel()
		rc.cancel = nil
	}
}

func NewApp(r *store.Records, c *mutate.Coordinator, s *auth.Session, p *prefs.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		records:    r,
		coord:      c,
		session:    s,
		prefs:      p,
		activeView: viewLibrary,
		library:    newLibraryModel(r, p),
		myPlants:   newMyPlantsModel(r, c, s),
		dashboard:  newDashboardModel(r, p, s),
		careGuide:  newCareModel(),
		settings:   newSettingsModel(p, s),
		help:       h,
		refreshes:  &refreshControl{},
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.refreshCmd(),
		a.library.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd pulls the full plant list from the server in the background.
// Starting a new fetch cancels the previous one.
func (a App) refreshCmd() tea.Cmd {
	ctx := a.refreshes.next()
	return func() tea.Msg {
		err := a.coord.Refresh(ctx, "")
		return refreshedMsg{err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.library.setSize(a.width, contentHeight)
		a.myPlants.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.careGuide.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or search), delegate first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.refreshes.stop()
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Refresh):
			a.status = "Refreshing…"
			a.statusErr = false
			return a, a.refreshCmd()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewLibrary
			return a, a.library.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewMyPlants
			return a, a.myPlants.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewCareGuide
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case refreshedMsg:
		if msg.err != nil {
			// A superseded or quit-time fetch reports cancellation; not an
			// error worth surfacing.
			if apperr.Is(msg.err, apperr.CodeCancelled) {
				return a, nil
			}
			a.status = "Refresh failed: " + msg.err.Error()
			a.statusErr = true
			return a, nil
		}
		a.status = fmt.Sprintf("Synced %d plants", a.records.Len())
		a.statusErr = false
		return a, tea.Batch(
			a.library.refresh(),
			a.myPlants.refresh(),
			a.dashboard.loadData(),
		)

	case mutationDoneMsg:
		if msg.err != nil {
			a.status = "Error: " + msg.err.Error()
			a.statusErr = true
		} else {
			a.status = fmt.Sprintf("%s %s", capitalize(msg.action), msg.name)
			a.statusErr = false
		}
		return a, tea.Batch(
			a.library.refresh(),
			a.myPlants.refresh(),
			a.dashboard.loadData(),
		)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewLibrary:
		a.library, cmd = a.library.update(msg)
	case viewMyPlants:
		a.myPlants, cmd = a.myPlants.update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewCareGuide:
		a.careGuide, cmd = a.careGuide.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewLibrary:
		return a.library.searching
	case viewMyPlants:
		return a.myPlants.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewLibrary:
		return a.library.refresh()
	case viewMyPlants:
		return a.myPlants.refresh()
	case viewDashboard:
		return a.dashboard.loadData()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewLibrary:
		content = a.library.view()
	case viewMyPlants:
		content = a.myPlants.view()
	case viewDashboard:
		content = a.dashboard.view()
	case viewCareGuide:
		content = a.careGuide.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("plantpulse")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Account indicator in footer
	account := ""
	if pr := a.session.Principal(); pr.Authenticated {
		account = successStyle.Render(" ● " + pr.Email)
	}

	left := footerStyle.Render(helpView)
	right := account + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		plants := store.RunQuery(a.records.GetAll(), store.Query{})

		dir := a.prefs.GetDefault(prefs.KeyExportDir, "")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			dir = home
		}

		now := time.Now()
		dateStr := now.Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("plantpulse-export-%s.csv", dateStr))
			if err := export.ToCSV(plants, now, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("plantpulse-export-%s.json", dateStr))
			if err := export.ToJSON(plants, now, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
