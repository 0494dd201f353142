package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/hearth/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, house_id, item_name, template_id, item_type, room_type, interval_days, last_completed_at, next_due_date, created_at, updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.ActiveTask, error) {
	var t model.ActiveTask
	var id string
	var itemType, roomType string
	var lastCompleted sql.NullTime

	err := scanner.Scan(
		&id, &t.HouseID, &t.ItemName, &t.TemplateID, &itemType, &roomType,
		&t.IntervalDays, &lastCompleted, &t.NextDueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse task id %q: %w", id, err)
	}
	t.ItemType = model.ParseItemType(itemType)
	t.RoomType = model.ParseRoomType(roomType)
	if lastCompleted.Valid {
		completedAt := lastCompleted.Time
		t.LastCompletedAt = &completedAt
	}
	return &t, nil
}

// InsertBatch inserts all given tasks in a single transaction. Either every
// task is created or none are.
func (s *TaskStore) InsertBatch(tasks []model.ActiveTask) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tasks {
		var lastCompleted sql.NullTime
		if t.LastCompletedAt != nil {
			lastCompleted = sql.NullTime{Time: t.LastCompletedAt.UTC(), Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO active_tasks (id, house_id, item_name, template_id, item_type, room_type, interval_days, last_completed_at, next_due_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID.String(), t.HouseID, t.ItemName, t.TemplateID, string(t.ItemType), string(t.RoomType),
			t.IntervalDays, lastCompleted, t.NextDueDate.UTC(),
		); err != nil {
			return fmt.Errorf("insert task %q: %w", t.Key(), err)
		}
	}
	return tx.Commit()
}

func (s *TaskStore) GetByID(id uuid.UUID) (*model.ActiveTask, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM active_tasks WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) ListByHouse(houseID int64) ([]model.ActiveTask, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM active_tasks WHERE house_id = ? ORDER BY next_due_date ASC`,
		houseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks by house: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (s *TaskStore) ListByRoomType(houseID int64, roomType model.RoomType) ([]model.ActiveTask, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM active_tasks WHERE house_id = ? AND room_type = ? ORDER BY next_due_date ASC`,
		houseID, string(roomType),
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks by room type: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// ListOverdue returns tasks whose due date falls on a calendar day before
// today.
func (s *TaskStore) ListOverdue(houseID int64, now time.Time) ([]model.ActiveTask, error) {
	startOfToday := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM active_tasks WHERE house_id = ? AND next_due_date < ? ORDER BY next_due_date ASC`,
		houseID, startOfToday,
	)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// NextDue returns the soonest-due task for a house, or nil if the house has
// no tasks.
func (s *TaskStore) NextDue(houseID int64) (*model.ActiveTask, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM active_tasks WHERE house_id = ? ORDER BY next_due_date ASC LIMIT 1`,
		houseID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next due task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) CountByHouse(houseID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM active_tasks WHERE house_id = ?`, houseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

// ExistingKeys returns the natural keys of all tasks for a house in a single
// query, so the synchronizer can skip duplicates without per-key round-trips.
func (s *TaskStore) ExistingKeys(houseID int64) (map[string]bool, error) {
	rows, err := s.db.Query(
		`SELECT item_name, template_id FROM active_tasks WHERE house_id = ?`,
		houseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list task keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var itemName, templateID string
		if err := rows.Scan(&itemName, &templateID); err != nil {
			return nil, fmt.Errorf("scan task key: %w", err)
		}
		keys[model.TaskKey(itemName, templateID)] = true
	}
	return keys, rows.Err()
}

// ListDueBetween returns tasks for the given houses whose due date lies in
// [from, to], both bounds inclusive. Tasks already past due are excluded.
func (s *TaskStore) ListDueBetween(houseIDs []int64, from, to time.Time) ([]model.ActiveTask, error) {
	if len(houseIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(houseIDs)), ",")
	args := make([]any, 0, len(houseIDs)+2)
	for _, id := range houseIDs {
		args = append(args, id)
	}
	args = append(args, from.UTC(), to.UTC())

	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM active_tasks
		 WHERE house_id IN (`+placeholders+`) AND next_due_date >= ? AND next_due_date <= ?
		 ORDER BY next_due_date ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks due between: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// Complete records a completion: last_completed_at and next_due_date are
// updated together in one statement so the pair is never half-applied.
func (s *TaskStore) Complete(id uuid.UUID, completedAt, nextDue time.Time) (*model.ActiveTask, error) {
	result, err := s.db.Exec(
		`UPDATE active_tasks SET last_completed_at = ?, next_due_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		completedAt.UTC(), nextDue.UTC(), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}

func collectTasks(rows *sql.Rows) ([]model.ActiveTask, error) {
	var tasks []model.ActiveTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
