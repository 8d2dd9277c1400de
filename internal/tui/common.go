package tui

import (
	"time"

	"plantpulse/internal/plant"
	"plantpulse/internal/prefs"
	"plantpulse/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLibrary viewState = iota
	viewMyPlants
	viewDashboard
	viewCareGuide
	viewSettings
)

var viewNames = []string{"Library", "My Plants", "Dashboard", "Care Guide", "Settings"}

// --- Messages ---

// refreshedMsg reports the outcome of a remote list fetch.
type refreshedMsg struct {
	err error
}

// mutationDoneMsg reports the outcome of a create/update/delete/water.
type mutationDoneMsg struct {
	action string // "added", "updated", "deleted", "watered"
	name   string
	err    error
}

type libraryDataMsg struct {
	plants []plant.Plant
}

type myPlantsDataMsg struct {
	plants []plant.Plant
}

type dashboardDataMsg struct {
	plants    []plant.Plant
	owner     string
	chartDays int
}

type settingsDataMsg struct {
	values map[string]string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type tickMsg time.Time

// --- Helpers ---

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}

// scheduleBadge renders the derived watering state of a plant, colored by
// urgency.
func scheduleBadge(next *time.Time, now time.Time) string {
	s := plant.ComputeSchedule(next, now)
	switch s.State {
	case plant.ScheduleOverdue:
		return errorStyle.Render(s.String())
	case plant.ScheduleDueToday:
		return warningStyle.Render(s.String())
	case plant.ScheduleUpcoming:
		return successStyle.Render(s.String())
	}
	return mutedStyle.Render(s.String())
}

func truncate(s string, n int) string {
	if n <= 1 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// Sort preferences are persisted as stable tokens, not display names.

func sortKeyToPref(k store.SortKey) string {
	switch k {
	case store.SortByCareLevel:
		return "care_level"
	case store.SortByNextWatering:
		return "next_watering"
	}
	return "name"
}

func sortKeyFromPref(v string) store.SortKey {
	switch v {
	case "care_level":
		return store.SortByCareLevel
	case "next_watering":
		return store.SortByNextWatering
	}
	return store.SortByName
}

func loadQueryPrefs(p *prefs.Store) store.Query {
	return store.Query{
		Sort: sortKeyFromPref(p.GetDefault(prefs.KeySortKey, "name")),
		Desc: p.GetDefault(prefs.KeySortDesc, "false") == "true",
	}
}
