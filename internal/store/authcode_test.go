package store

import (
	"testing"
	"time"

	"github.com/dukerupert/hearth/internal/database"
)

func setupAuthCodeTestDB(t *testing.T) *AuthCodeStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAuthCodeStore(db)
}

func TestGetActiveByEmailReturnsLatestUnused(t *testing.T) {
	acs := setupAuthCodeTestDB(t)

	now := time.Now().UTC()
	first, err := acs.Create("user@example.com", "hash-1", now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := acs.GetActiveByEmail("user@example.com", now)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active == nil || active.ID != first.ID {
		t.Fatalf("active = %+v, want id %d", active, first.ID)
	}

	if err := acs.MarkUsed(first.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	active, err = acs.GetActiveByEmail("user@example.com", now)
	if err != nil {
		t.Fatalf("get active after use: %v", err)
	}
	if active != nil {
		t.Errorf("used code returned: %+v", active)
	}
}

func TestExpiredCodeNotActive(t *testing.T) {
	acs := setupAuthCodeTestDB(t)

	now := time.Now().UTC()
	if _, err := acs.Create("user@example.com", "hash", now.Add(-time.Minute)); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := acs.GetActiveByEmail("user@example.com", now)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active != nil {
		t.Errorf("expired code returned: %+v", active)
	}
}

func TestIncrementAttempts(t *testing.T) {
	acs := setupAuthCodeTestDB(t)

	now := time.Now().UTC()
	code, err := acs.Create("user@example.com", "hash", now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := acs.IncrementAttempts(code.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	active, err := acs.GetActiveByEmail("user@example.com", now)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", active.Attempts)
	}
}
