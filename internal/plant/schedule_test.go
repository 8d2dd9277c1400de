package plant

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeScheduleStates(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		next *time.Time
		want ScheduleState
		days int
	}{
		{"nil date", nil, ScheduleUnknown, 0},
		{"yesterday", datePtr(2026, 3, 14), ScheduleOverdue, 0},
		{"last month", datePtr(2026, 2, 1), ScheduleOverdue, 0},
		{"today", datePtr(2026, 3, 15), ScheduleDueToday, 0},
		{"tomorrow", datePtr(2026, 3, 16), ScheduleUpcoming, 1},
		{"next week", datePtr(2026, 3, 22), ScheduleUpcoming, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSchedule(tt.next, now)
			if got.State != tt.want {
				t.Fatalf("state = %d, want %d", got.State, tt.want)
			}
			if got.DaysRemaining != tt.days {
				t.Fatalf("days = %d, want %d", got.DaysRemaining, tt.days)
			}
		})
	}
}

func TestComputeScheduleDayGranularity(t *testing.T) {
	// Due at 08:00 today, checked at 23:00: still due today, not overdue.
	due := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)

	got := ComputeSchedule(&due, now)
	if got.State != ScheduleDueToday {
		t.Fatalf("state = %d, want DueToday", got.State)
	}

	// Due late tomorrow, checked early today: one full day remaining.
	due = time.Date(2026, 3, 16, 23, 59, 0, 0, time.UTC)
	now = time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)
	got = ComputeSchedule(&due, now)
	if got.State != ScheduleUpcoming || got.DaysRemaining != 1 {
		t.Fatalf("got %+v, want Upcoming in 1 day", got)
	}
}

func TestScheduleString(t *testing.T) {
	tests := []struct {
		s    Schedule
		want string
	}{
		{Schedule{State: ScheduleUnknown}, "no schedule"},
		{Schedule{State: ScheduleOverdue}, "overdue"},
		{Schedule{State: ScheduleDueToday}, "due today"},
		{Schedule{State: ScheduleUpcoming, DaysRemaining: 1}, "in 1 day"},
		{Schedule{State: ScheduleUpcoming, DaysRemaining: 3}, "in 3 days"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPending(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if Pending(nil, now) {
		t.Fatal("nil date should not be pending")
	}
	if !Pending(datePtr(2026, 3, 14), now) {
		t.Fatal("overdue should be pending")
	}
	if !Pending(datePtr(2026, 3, 15), now) {
		t.Fatal("due today should be pending")
	}
	if Pending(datePtr(2026, 3, 16), now) {
		t.Fatal("upcoming should not be pending")
	}
}

func TestCareLevelRank(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{CareLevelEasy, 1},
		{CareLevelModerate, 2},
		{CareLevelDifficult, 3},
		{"", 4},
		{"Expert", 4},
		{"easy", 4}, // ranks are case sensitive
	}
	for _, tt := range tests {
		if got := CareLevelRank(tt.level); got != tt.want {
			t.Errorf("CareLevelRank(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestPatchApply(t *testing.T) {
	last := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	orig := Plant{
		ID:                    "p1",
		Name:                  "Fern",
		Category:              "Indoor",
		CareLevel:             CareLevelEasy,
		WateringFrequencyDays: 7,
		LastWatered:           &last,
		OwnerEmail:            "ana@example.com",
	}

	name := "Boston Fern"
	freq := 5
	next := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	patch := Patch{
		Name:                  &name,
		WateringFrequencyDays: &freq,
		NextWatering:          &next,
	}

	got := patch.Apply(orig)

	if got.Name != "Boston Fern" {
		t.Fatalf("Name = %q", got.Name)
	}
	if got.WateringFrequencyDays != 5 {
		t.Fatalf("WateringFrequencyDays = %d", got.WateringFrequencyDays)
	}
	if got.NextWatering == nil || !got.NextWatering.Equal(next) {
		t.Fatalf("NextWatering = %v", got.NextWatering)
	}

	// Untouched fields carry over.
	if got.Category != "Indoor" || got.CareLevel != CareLevelEasy {
		t.Fatal("unpatched fields should carry over")
	}
	if got.LastWatered == nil || !got.LastWatered.Equal(last) {
		t.Fatal("unpatched date should carry over")
	}
	if got.ID != "p1" || got.OwnerEmail != "ana@example.com" {
		t.Fatal("identity fields should carry over")
	}

	// The input is untouched.
	if orig.Name != "Fern" {
		t.Fatal("Apply must not modify its input")
	}
}

func TestPatchApplyCopiesDates(t *testing.T) {
	next := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	patch := Patch{NextWatering: &next}

	got := patch.Apply(Plant{ID: "p1"})
	if got.NextWatering == &next {
		t.Fatal("Apply should copy the date, not alias the patch pointer")
	}
}

func TestPatchApplyEmpty(t *testing.T) {
	orig := Plant{ID: "p1", Name: "Fern", WateringFrequencyDays: 7}
	got := Patch{}.Apply(orig)
	if got != orig {
		t.Fatalf("empty patch changed the record: %+v", got)
	}
}
