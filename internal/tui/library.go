package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/plant"
	"plantpulse/internal/prefs"
	"plantpulse/internal/store"
)

// libraryModel lists every plant in the working set, with live search and
// sorting. The query re-runs against the store snapshot on each keystroke.
type libraryModel struct {
	records *store.Records
	prefs   *prefs.Store
	width   int
	height  int

	plants []plant.Plant
	cursor int
	query  store.Query

	search    textinput.Model
	searching bool

	viewingDetail bool
}

func newLibraryModel(r *store.Records, p *prefs.Store) libraryModel {
	ti := textinput.New()
	ti.Placeholder = "name or category"
	ti.CharLimit = 64
	ti.Width = 32

	return libraryModel{
		records: r,
		prefs:   p,
		query:   loadQueryPrefs(p),
		search:  ti,
	}
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l libraryModel) refresh() tea.Cmd {
	q := l.query
	return func() tea.Msg {
		return libraryDataMsg{plants: store.RunQuery(l.records.GetAll(), q)}
	}
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryDataMsg:
		l.plants = msg.plants
		if l.cursor >= len(l.plants) {
			l.cursor = max(0, len(l.plants)-1)
		}
		return l, nil

	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		if l.viewingDetail {
			return l.updateDetail(msg)
		}
		return l.updateList(msg)
	}
	return l, nil
}

func (l libraryModel) updateSearch(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.searching = false
		l.search.Blur()
		l.search.SetValue("")
		l.query.Search = ""
		return l, l.refresh()
	case "enter":
		l.searching = false
		l.search.Blur()
		return l, nil
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	l.query.Search = l.search.Value()
	l.cursor = 0
	return l, tea.Batch(cmd, l.refresh())
}

func (l libraryModel) updateDetail(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		l.viewingDetail = false
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.plants)-1 {
			l.cursor++
		}
	}
	return l, nil
}

func (l libraryModel) updateList(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Search):
		l.searching = true
		return l, l.search.Focus()
	case key.Matches(msg, keys.Sort):
		l.query.Sort = (l.query.Sort + 1) % 3
		l.prefs.Set(prefs.KeySortKey, sortKeyToPref(l.query.Sort))
		return l, l.refresh()
	case key.Matches(msg, keys.Order):
		l.query.Desc = !l.query.Desc
		l.prefs.Set(prefs.KeySortDesc, fmt.Sprintf("%t", l.query.Desc))
		return l, l.refresh()
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < len(l.plants)-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(l.plants) > 0 {
			l.viewingDetail = true
		}
	}
	return l, nil
}

func (l libraryModel) view() string {
	if l.viewingDetail && l.cursor < len(l.plants) {
		return l.renderDetail()
	}
	return l.renderList()
}

func (l libraryModel) renderList() string {
	w := l.width - 4
	now := time.Now()

	order := "↑"
	if l.query.Desc {
		order = "↓"
	}
	title := titleStyle.Render("Plant Library")
	sortLabel := mutedStyle.Render(fmt.Sprintf("sort: %s %s", l.query.Sort, order))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", sortLabel)

	var rows []string
	rows = append(rows, header)

	if l.searching || l.search.Value() != "" {
		rows = append(rows, l.search.View())
	}
	rows = append(rows, "")

	if len(l.plants) == 0 {
		if l.search.Value() != "" {
			rows = append(rows, mutedStyle.Render("No plants match the search."))
		} else {
			rows = append(rows, mutedStyle.Render("No plants yet. Press r to fetch from the server."))
		}
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	colHeader := mutedStyle.Render(fmt.Sprintf("  %-24s %-14s %-10s %-14s %s",
		"Name", "Category", "Care", "Next Watering", "Owner"))
	rows = append(rows, colHeader)

	for i, p := range l.plants {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-24s %-14s %-10s ",
			cursor, truncate(p.Name, 24), truncate(p.Category, 14), p.CareLevel))
		row += scheduleBadge(p.NextWatering, now)
		row += mutedStyle.Render("  " + p.OwnerName)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  /: search  s: sort  o: order  enter: details  r: refresh"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l libraryModel) renderDetail() string {
	w := l.width - 4
	p := l.plants[l.cursor]
	now := time.Now()

	title := titleStyle.Render(p.Name)
	if p.Category != "" {
		title += subtitleStyle.Render("  " + p.Category)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", labelStyle("Care level"), p.CareLevel))
	rows = append(rows, fmt.Sprintf("  %s %s", labelStyle("Sunlight"), orDash(p.Sunlight)))
	rows = append(rows, fmt.Sprintf("  %s %s", labelStyle("Health"), orDash(p.HealthStatus)))
	rows = append(rows, fmt.Sprintf("  %s every %d days", labelStyle("Watering"), p.WateringFrequencyDays))
	rows = append(rows, fmt.Sprintf("  %s %s", labelStyle("Last watered"), formatDate(p.LastWatered)))
	rows = append(rows, fmt.Sprintf("  %s %s  %s", labelStyle("Next watering"), formatDate(p.NextWatering), scheduleBadge(p.NextWatering, now)))
	rows = append(rows, fmt.Sprintf("  %s %s", labelStyle("Owner"), orDash(p.OwnerName)))

	if p.Description != "" {
		rows = append(rows, "")
		rows = append(rows, "  "+normalItemStyle.Render(p.Description))
	}
	if p.CareTips != "" {
		rows = append(rows, "")
		rows = append(rows, "  "+accentStyle.Render("Tip: ")+p.CareTips)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func labelStyle(s string) string {
	return mutedStyle.Render(fmt.Sprintf("%-14s", s))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
