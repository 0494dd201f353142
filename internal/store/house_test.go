package store

import (
	"testing"

	"github.com/dukerupert/hearth/internal/database"
	"github.com/dukerupert/hearth/internal/model"
)

func setupHouseTestDB(t *testing.T) (*HouseStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("INSERT INTO users (email) VALUES ('owner@example.com')"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewHouseStore(db), 1
}

func TestHouseCreateAndGet(t *testing.T) {
	hs, ownerID := setupHouseTestDB(t)

	house, err := hs.Create(ownerID, "Summer Cabin")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if house.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if house.Name != "Summer Cabin" {
		t.Errorf("name = %q", house.Name)
	}
	if house.OwnerID != ownerID {
		t.Errorf("owner = %d, want %d", house.OwnerID, ownerID)
	}

	got, err := hs.GetByID(house.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != house.ID {
		t.Errorf("got %+v", got)
	}
}

func TestGetHouseNotFound(t *testing.T) {
	hs, _ := setupHouseTestDB(t)

	got, err := hs.GetByID(42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestListIDsByOwner(t *testing.T) {
	hs, ownerID := setupHouseTestDB(t)

	h1, _ := hs.Create(ownerID, "First")
	h2, _ := hs.Create(ownerID, "Second")

	ids, err := hs.ListIDsByOwner(ownerID)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %d, want 2", len(ids))
	}
	found := map[int64]bool{ids[0]: true, ids[1]: true}
	if !found[h1.ID] || !found[h2.ID] {
		t.Errorf("ids = %v, want %d and %d", ids, h1.ID, h2.ID)
	}
}

func TestConfigurationEmptyByDefault(t *testing.T) {
	hs, ownerID := setupHouseTestDB(t)
	house, _ := hs.Create(ownerID, "Test")

	config, err := hs.GetConfiguration(house.ID)
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	if len(config.ItemTypes) != 0 {
		t.Errorf("new house has %d item types", len(config.ItemTypes))
	}
}

func TestSaveConfigurationAddsAndRemoves(t *testing.T) {
	hs, ownerID := setupHouseTestDB(t)
	house, _ := hs.Create(ownerID, "Test")

	if err := hs.SaveConfiguration(house.ID, []model.ItemType{
		model.ItemTypeDishwasher, model.ItemTypeShower,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	config, _ := hs.GetConfiguration(house.ID)
	if len(config.ItemTypes) != 2 {
		t.Fatalf("item types = %d, want 2", len(config.ItemTypes))
	}

	// Replace shower with smoke detector.
	if err := hs.SaveConfiguration(house.ID, []model.ItemType{
		model.ItemTypeDishwasher, model.ItemTypeSmokeDetector,
	}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	config, _ = hs.GetConfiguration(house.ID)
	got := map[model.ItemType]bool{}
	for _, it := range config.ItemTypes {
		got[it] = true
	}
	if !got[model.ItemTypeDishwasher] || !got[model.ItemTypeSmokeDetector] || got[model.ItemTypeShower] {
		t.Errorf("item types = %v", config.ItemTypes)
	}
}

func TestSaveConfigurationIsIdempotent(t *testing.T) {
	hs, ownerID := setupHouseTestDB(t)
	house, _ := hs.Create(ownerID, "Test")

	selected := []model.ItemType{model.ItemTypeVentilation}
	if err := hs.SaveConfiguration(house.ID, selected); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := hs.SaveConfiguration(house.ID, selected); err != nil {
		t.Fatalf("resave: %v", err)
	}

	config, _ := hs.GetConfiguration(house.ID)
	if len(config.ItemTypes) != 1 {
		t.Errorf("item types = %d, want 1", len(config.ItemTypes))
	}
}
