package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/hearth/internal/database"
	"github.com/dukerupert/hearth/internal/model"
)

func setupTaskTestDB(t *testing.T) (*TaskStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("INSERT INTO users (email) VALUES ('owner@example.com')"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	result, err := db.Exec("INSERT INTO houses (owner_id, name) VALUES (1, 'Test House')")
	if err != nil {
		t.Fatalf("create house: %v", err)
	}
	houseID, _ := result.LastInsertId()

	return NewTaskStore(db), houseID
}

func testTask(houseID int64, itemName, templateID string, due time.Time) model.ActiveTask {
	return model.ActiveTask{
		ID:           uuid.New(),
		HouseID:      houseID,
		ItemName:     itemName,
		TemplateID:   templateID,
		ItemType:     model.ItemTypeDishwasher,
		RoomType:     model.RoomTypeKitchen,
		IntervalDays: 14,
		NextDueDate:  due,
	}
}

func TestInsertBatchAndGet(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task := testTask(houseID, "Dishwasher", "dishwasher_clean_filter", due)
	if err := ts.InsertBatch([]model.ActiveTask{task}); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	got, err := ts.GetByID(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("task not found")
	}
	if got.ItemName != "Dishwasher" || got.TemplateID != "dishwasher_clean_filter" {
		t.Errorf("got %q/%q", got.ItemName, got.TemplateID)
	}
	if !got.NextDueDate.Equal(due) {
		t.Errorf("due = %v, want %v", got.NextDueDate, due)
	}
	if got.LastCompletedAt != nil {
		t.Errorf("new task has completion %v", got.LastCompletedAt)
	}
}

func TestInsertBatchRejectsDuplicateNaturalKey(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	due := time.Now().UTC()
	first := testTask(houseID, "Dishwasher", "dishwasher_clean_filter", due)
	if err := ts.InsertBatch([]model.ActiveTask{first}); err != nil {
		t.Fatalf("insert first: %v", err)
	}

	// Same (house, item, template) with a fresh ID must be rejected, and the
	// whole batch with it.
	dup := testTask(houseID, "Dishwasher", "dishwasher_clean_filter", due)
	other := testTask(houseID, "Dishwasher", "dishwasher_clean_door_and_seals", due)
	if err := ts.InsertBatch([]model.ActiveTask{other, dup}); err == nil {
		t.Fatal("expected unique constraint error")
	}

	count, err := ts.CountByHouse(houseID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d after failed batch, want 1", count)
	}
}

func TestExistingKeys(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	due := time.Now().UTC()
	if err := ts.InsertBatch([]model.ActiveTask{
		testTask(houseID, "Dishwasher", "dishwasher_clean_filter", due),
		testTask(houseID, "Shower", "shower_clean_drains", due),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	keys, err := ts.ExistingKeys(houseID)
	if err != nil {
		t.Fatalf("existing keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(keys))
	}
	if !keys[model.TaskKey("Dishwasher", "dishwasher_clean_filter")] {
		t.Error("missing dishwasher key")
	}
	if !keys[model.TaskKey("Shower", "shower_clean_drains")] {
		t.Error("missing shower key")
	}
}

func TestListDueBetweenInclusiveBounds(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	if err := ts.InsertBatch([]model.ActiveTask{
		testTask(houseID, "A", "t1", from),
		testTask(houseID, "B", "t2", to),
		testTask(houseID, "C", "t3", from.Add(-time.Second)),
		testTask(houseID, "D", "t4", to.Add(time.Second)),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := ts.ListDueBetween([]int64{houseID}, from, to)
	if err != nil {
		t.Fatalf("list due between: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("tasks = %d, want 2", len(got))
	}
	if got[0].ItemName != "A" || got[1].ItemName != "B" {
		t.Errorf("got %q, %q; want A, B in due order", got[0].ItemName, got[1].ItemName)
	}
}

func TestListDueBetweenEmptyHouseList(t *testing.T) {
	ts, _ := setupTaskTestDB(t)

	got, err := ts.ListDueBetween(nil, time.Now(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("list due between: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty house list, got %d tasks", len(got))
	}
}

func TestCompleteUpdatesBothFields(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	task := testTask(houseID, "Dishwasher", "dishwasher_clean_filter", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	if err := ts.InsertBatch([]model.ActiveTask{task}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	completedAt := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	nextDue := completedAt.Add(14 * 24 * time.Hour)

	got, err := ts.Complete(task.ID, completedAt, nextDue)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got == nil {
		t.Fatal("completed task not returned")
	}
	if got.LastCompletedAt == nil || !got.LastCompletedAt.Equal(completedAt) {
		t.Errorf("last completed = %v, want %v", got.LastCompletedAt, completedAt)
	}
	if !got.NextDueDate.Equal(nextDue) {
		t.Errorf("next due = %v, want %v", got.NextDueDate, nextDue)
	}
}

func TestCompleteUnknownTaskReturnsNil(t *testing.T) {
	ts, _ := setupTaskTestDB(t)

	got, err := ts.Complete(uuid.New(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown task, got %+v", got)
	}
}

func TestListOverdueUsesCalendarDay(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := ts.InsertBatch([]model.ActiveTask{
		testTask(houseID, "A", "t1", time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)),
		testTask(houseID, "B", "t2", time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := ts.ListOverdue(houseID, now)
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	// Due earlier today is not overdue; due yesterday is.
	if len(got) != 1 || got[0].ItemName != "A" {
		t.Errorf("overdue = %+v, want only A", got)
	}
}

func TestNextDueEmptyHouse(t *testing.T) {
	ts, houseID := setupTaskTestDB(t)

	got, err := ts.NextDue(houseID)
	if err != nil {
		t.Fatalf("next due: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
