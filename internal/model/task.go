package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskTemplate is an immutable catalog entry describing a recurring
// maintenance action. Templates are defined at startup and never persisted
// per-house; active tasks copy IntervalDays at creation time.
type TaskTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IntervalDays int    `json:"interval_days"`
}

// ActiveTask is a materialized, per-house instance of a task template. At
// most one row exists per (house, item name, template) triple.
type ActiveTask struct {
	ID              uuid.UUID  `json:"id"`
	HouseID         int64      `json:"house_id"`
	ItemName        string     `json:"item_name"`
	TemplateID      string     `json:"template_id"`
	ItemType        ItemType   `json:"item_type"`
	RoomType        RoomType   `json:"room_type"`
	IntervalDays    int        `json:"interval_days"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
	NextDueDate     time.Time  `json:"next_due_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TaskKey builds the natural key identifying an active task within a house.
func TaskKey(itemName, templateID string) string {
	return itemName + "|" + templateID
}

// Key returns the task's natural key within its house.
func (t ActiveTask) Key() string {
	return TaskKey(t.ItemName, t.TemplateID)
}

// DaysUntilDue compares calendar dates, not timestamps: a task due at any
// time today reports 0 regardless of time-of-day. Negative means overdue.
func (t ActiveTask) DaysUntilDue(now time.Time) int {
	due := startOfDay(t.NextDueDate.UTC())
	today := startOfDay(now.UTC())
	return int(due.Sub(today).Hours() / 24)
}

// IsOverdue reports whether the task's due date has passed.
func (t ActiveTask) IsOverdue(now time.Time) bool {
	return t.DaysUntilDue(now) < 0
}

// IsDueSoon reports whether the task is due within the next 7 days.
func (t ActiveTask) IsDueSoon(now time.Time) bool {
	d := t.DaysUntilDue(now)
	return d >= 0 && d <= 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
