package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/auth"
	"plantpulse/internal/plant"
	"plantpulse/internal/prefs"
	"plantpulse/internal/store"
)

// dashboardModel summarizes the working set: collection counts, the plants
// due soonest, and a bar chart of waterings coming due over the next days.
type dashboardModel struct {
	records *store.Records
	prefs   *prefs.Store
	session *auth.Session
	width   int
	height  int

	plants    []plant.Plant
	owner     string
	chartDays int

	chart barchart.Model
}

func newDashboardModel(r *store.Records, p *prefs.Store, s *auth.Session) dashboardModel {
	return dashboardModel{
		records:   r,
		prefs:     p,
		session:   s,
		chartDays: 7,
		chart:     barchart.New(60, 12),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		days, err := strconv.Atoi(d.prefs.GetDefault(prefs.KeyChartDays, "7"))
		if err != nil || days < 1 {
			days = 7
		}
		return dashboardDataMsg{
			plants:    d.records.GetAll(),
			owner:     d.session.Principal().Email,
			chartDays: days,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.plants = msg.plants
		d.owner = msg.owner
		d.chartDays = msg.chartDays
		d.buildChart()
		return d, nil

	case tickMsg:
		return d, d.loadData()
	}
	return d, nil
}

// buildChart draws one bar per upcoming day, counting the waterings due
// that day. Anything already overdue lands on the first bar.
func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if d.height > 30 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var bars []barchart.BarData
	for i := 0; i < d.chartDays; i++ {
		day := today.AddDate(0, 0, i)
		label := day.Format("Mon 02")
		if i == 0 {
			label = "Today"
		}

		count := 0
		for _, p := range d.plants {
			if p.NextWatering == nil {
				continue
			}
			due := *p.NextWatering
			dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
			if dueDay.Equal(day) || (i == 0 && dueDay.Before(today)) {
				count++
			}
		}

		style := lipgloss.NewStyle().Foreground(colorSuccess)
		if i == 0 && count > 0 {
			style = lipgloss.NewStyle().Foreground(colorWarning)
		}
		values := []barchart.BarValue{{Name: label, Value: float64(count), Style: style}}
		if count == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	countsPanel := d.renderCountsPanel(contentWidth)
	chartPanel := d.renderChartPanel(contentWidth)
	duePanel := d.renderDuePanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, countsPanel, chartPanel, duePanel)
}

func (d dashboardModel) renderCountsPanel(w int) string {
	now := time.Now()

	total := len(d.plants)
	mine := 0
	if d.owner != "" {
		for _, p := range d.plants {
			if p.OwnerEmail == d.owner {
				mine++
			}
		}
	}
	pending := store.CountPending(d.plants, now)

	title := titleStyle.Render("Collection")

	totalCol := fmt.Sprintf("%s %s", highlightStyle.Render(strconv.Itoa(total)), mutedStyle.Render("plants"))
	mineCol := fmt.Sprintf("%s %s", highlightStyle.Render(strconv.Itoa(mine)), mutedStyle.Render("mine"))
	pendingCol := fmt.Sprintf("%s %s", warningStyle.Render(strconv.Itoa(pending)), mutedStyle.Render("need water"))
	if pending == 0 {
		pendingCol = fmt.Sprintf("%s %s", successStyle.Render("0"), mutedStyle.Render("need water"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom, totalCol, "    ", mineCol, "    ", pendingCol)
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", row)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Waterings Due")
	window := mutedStyle.Render(fmt.Sprintf("next %d days", d.chartDays))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", window)

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", d.chart.View())
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderDuePanel(w int) string {
	now := time.Now()
	title := titleStyle.Render("Due Soonest")

	due := store.RunQuery(d.plants, store.Query{Sort: store.SortByNextWatering})
	if len(due) > 5 {
		due = due[:5]
	}

	if len(due) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing scheduled"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, p := range due {
		if p.NextWatering == nil {
			continue
		}
		row := fmt.Sprintf("  %-24s %-12s ", truncate(p.Name, 24), formatDate(p.NextWatering))
		row += scheduleBadge(p.NextWatering, now)
		rows = append(rows, row)
	}
	if len(rows) == 1 {
		rows = append(rows, mutedStyle.Render("Nothing scheduled"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
