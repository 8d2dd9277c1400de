package plant

import (
	"fmt"
	"time"
)

// ScheduleState is the derived watering urgency of a plant. It is computed
// from NextWatering and the current date, never stored.
type ScheduleState int

const (
	ScheduleUnknown ScheduleState = iota
	ScheduleOverdue
	ScheduleDueToday
	ScheduleUpcoming
)

// Schedule is a derived schedule: the state plus, for Upcoming, the whole
// number of calendar days until the watering is due.
type Schedule struct {
	State         ScheduleState
	DaysRemaining int
}

func (s Schedule) String() string {
	switch s.State {
	case ScheduleOverdue:
		return "overdue"
	case ScheduleDueToday:
		return "due today"
	case ScheduleUpcoming:
		if s.DaysRemaining == 1 {
			return "in 1 day"
		}
		return fmt.Sprintf("in %d days", s.DaysRemaining)
	}
	return "no schedule"
}

// ComputeSchedule derives the watering urgency of a plant whose next
// watering is next, as of now. Comparison happens at calendar-day
// granularity: both instants are truncated to their own calendar day first,
// so a watering due "today at 08:00" is still DueToday at 23:00 and an
// hour-of-day difference across a timezone boundary cannot flip the state.
func ComputeSchedule(next *time.Time, now time.Time) Schedule {
	if next == nil {
		return Schedule{State: ScheduleUnknown}
	}
	due := startOfDay(*next)
	today := startOfDay(now)

	switch {
	case due.Before(today):
		return Schedule{State: ScheduleOverdue}
	case due.Equal(today):
		return Schedule{State: ScheduleDueToday}
	}
	days := int(due.Sub(today).Hours() / 24)
	return Schedule{State: ScheduleUpcoming, DaysRemaining: days}
}

// Pending reports whether a plant needs watering now: its next watering is
// today or earlier.
func Pending(next *time.Time, now time.Time) bool {
	s := ComputeSchedule(next, now)
	return s.State == ScheduleOverdue || s.State == ScheduleDueToday
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
