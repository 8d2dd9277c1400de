package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"plantpulse/internal/care"
)

type careSection int

const (
	careFAQ careSection = iota
	careProblems
	careSeasonal
)

var careSectionNames = []string{"FAQ", "Problems", "Seasonal"}

// careModel browses the built-in care reference. It is entirely static.
type careModel struct {
	width  int
	height int

	section careSection
	cursor  int
}

func newCareModel() careModel {
	return careModel{}
}

func (c *careModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c careModel) sectionLen() int {
	switch c.section {
	case careProblems:
		return len(care.Problems)
	case careSeasonal:
		return len(care.Seasonal)
	}
	return len(care.FAQs)
}

func (c careModel) update(msg tea.Msg) (careModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if c.section > 0 {
				c.section--
				c.cursor = 0
			}
		case key.Matches(msg, keys.Right):
			if c.section < careSeasonal {
				c.section++
				c.cursor = 0
			}
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < c.sectionLen()-1 {
				c.cursor++
			}
		}
	}
	return c, nil
}

func (c careModel) view() string {
	w := c.width - 4

	var tabs []string
	for i, name := range careSectionNames {
		if careSection(i) == c.section {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	sectionTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Care Guide"), "  ", sectionTabs)

	var body string
	switch c.section {
	case careProblems:
		body = c.renderProblems()
	case careSeasonal:
		body = c.renderSeasonal()
	default:
		body = c.renderFAQ()
	}

	nav := mutedStyle.Render("  ←/→: section  ↑/↓: browse")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (c careModel) renderFAQ() string {
	var rows []string
	for i, f := range care.FAQs {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.Question))
	}

	f := care.FAQs[c.cursor]
	rows = append(rows, "")
	rows = append(rows, "  "+normalItemStyle.Render(f.Answer))
	if f.Tip != "" {
		rows = append(rows, "")
		rows = append(rows, "  "+accentStyle.Render("Tip: ")+f.Tip)
	}
	return strings.Join(rows, "\n")
}

func (c careModel) renderProblems() string {
	var rows []string
	for i, p := range care.Problems {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+p.Symptom))
	}

	p := care.Problems[c.cursor]
	rows = append(rows, "")
	rows = append(rows, "  "+mutedStyle.Render("Likely causes:"))
	for _, cause := range p.Causes {
		rows = append(rows, "    • "+cause)
	}
	rows = append(rows, "")
	rows = append(rows, "  "+successStyle.Render("Fix: ")+p.Solution)
	return strings.Join(rows, "\n")
}

func (c careModel) renderSeasonal() string {
	var rows []string
	for i, s := range care.Seasonal {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, s.Season)))
	}

	s := care.Seasonal[c.cursor]
	rows = append(rows, "")
	for _, tip := range s.Tips {
		rows = append(rows, "    • "+tip)
	}
	return strings.Join(rows, "\n")
}
