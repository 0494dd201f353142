package model

import (
	"testing"
	"time"
)

func TestDaysUntilDueComparesCalendarDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due earlier today", time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC), 0},
		{"due later today", time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), 0},
		{"due tomorrow morning", time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC), 1},
		{"due in a week", time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC), 7},
		{"overdue yesterday", time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC), -1},
		{"overdue by ten days", time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC), -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := ActiveTask{NextDueDate: tt.due}
			if got := task.DaysUntilDue(now); got != tt.want {
				t.Errorf("DaysUntilDue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	dueToday := ActiveTask{NextDueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	if dueToday.IsOverdue(now) {
		t.Error("task due today should not be overdue")
	}

	dueYesterday := ActiveTask{NextDueDate: time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)}
	if !dueYesterday.IsOverdue(now) {
		t.Error("task due yesterday should be overdue")
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due today", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), true},
		{"due in 7 days", time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC), true},
		{"due in 8 days", time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC), false},
		{"overdue", time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := ActiveTask{NextDueDate: tt.due}
			if got := task.IsDueSoon(now); got != tt.want {
				t.Errorf("IsDueSoon = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskKey(t *testing.T) {
	if got := TaskKey("Dishwasher", "dishwasher_clean_filter"); got != "Dishwasher|dishwasher_clean_filter" {
		t.Errorf("TaskKey = %q", got)
	}

	task := ActiveTask{ItemName: "Shower", TemplateID: "shower_clean_drains"}
	if got := task.Key(); got != "Shower|shower_clean_drains" {
		t.Errorf("Key = %q", got)
	}
}

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in   string
		want ItemType
	}{
		{"dishwasher", ItemTypeDishwasher},
		{" Shower ", ItemTypeShower},
		{"WASHING_MACHINE", ItemTypeWashingMachine},
		{"garage_door", ItemTypeUnknown},
		{"", ItemTypeUnknown},
	}

	for _, tt := range tests {
		if got := ParseItemType(tt.in); got != tt.want {
			t.Errorf("ParseItemType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLeadDays(t *testing.T) {
	var pref NotificationPreference
	if got := pref.LeadDays(); got != DefaultReminderDays {
		t.Errorf("LeadDays with nil = %d, want %d", got, DefaultReminderDays)
	}

	three := 3
	pref.ReminderDaysBeforeDue = &three
	if got := pref.LeadDays(); got != 3 {
		t.Errorf("LeadDays = %d, want 3", got)
	}

	zero := 0
	pref.ReminderDaysBeforeDue = &zero
	if got := pref.LeadDays(); got != 0 {
		t.Errorf("LeadDays with explicit zero = %d, want 0", got)
	}
}
