// Package maintenance holds the scheduling domain logic: the due-date
// recurrence math and the synchronizer that materializes catalog templates
// into per-house active tasks.
package maintenance

import (
	"time"

	"github.com/dukerupert/hearth/internal/model"
)

// Complete returns a copy of task marked completed at completedAt, with the
// next due date advanced by the task's own interval. This is the only way
// next_due_date changes after creation; there is no skip or snooze.
func Complete(task model.ActiveTask, completedAt time.Time) model.ActiveTask {
	completedAt = completedAt.UTC()
	task.LastCompletedAt = &completedAt
	task.NextDueDate = NextDue(completedAt, task.IntervalDays)
	return task
}

// NextDue computes the due date following a completion: exactly intervalDays
// days after completedAt.
func NextDue(completedAt time.Time, intervalDays int) time.Time {
	return completedAt.UTC().Add(time.Duration(intervalDays) * 24 * time.Hour)
}
