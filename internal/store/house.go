package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hearth/internal/model"
)

type HouseStore struct {
	db *sql.DB
}

func NewHouseStore(db *sql.DB) *HouseStore {
	return &HouseStore{db: db}
}

func scanHouse(scanner interface{ Scan(...any) error }) (*model.House, error) {
	var h model.House
	err := scanner.Scan(&h.ID, &h.OwnerID, &h.Name, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const houseCols = `id, owner_id, name, created_at, updated_at`

func (s *HouseStore) Create(ownerID int64, name string) (*model.House, error) {
	result, err := s.db.Exec(`INSERT INTO houses (owner_id, name) VALUES (?, ?)`, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("insert house: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *HouseStore) GetByID(id int64) (*model.House, error) {
	row := s.db.QueryRow(`SELECT `+houseCols+` FROM houses WHERE id = ?`, id)
	h, err := scanHouse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get house: %w", err)
	}
	return h, nil
}

func (s *HouseStore) ListByOwner(ownerID int64) ([]model.House, error) {
	rows, err := s.db.Query(
		`SELECT `+houseCols+` FROM houses WHERE owner_id = ? ORDER BY created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list houses by owner: %w", err)
	}
	defer rows.Close()

	var houses []model.House
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		houses = append(houses, *h)
	}
	return houses, rows.Err()
}

// ListIDsByOwner returns the IDs of all houses owned by a user.
func (s *HouseStore) ListIDsByOwner(ownerID int64) ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM houses WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list house ids by owner: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan house id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *HouseStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM houses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete house: %w", err)
	}
	return nil
}

// GetConfiguration returns the item types a house has selected. A house with
// no selections yields an empty configuration, not an error.
func (s *HouseStore) GetConfiguration(houseID int64) (*model.HouseConfiguration, error) {
	rows, err := s.db.Query(
		`SELECT item_type FROM house_item_types WHERE house_id = ? ORDER BY item_type ASC`,
		houseID,
	)
	if err != nil {
		return nil, fmt.Errorf("get house configuration: %w", err)
	}
	defer rows.Close()

	config := &model.HouseConfiguration{HouseID: houseID}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		config.ItemTypes = append(config.ItemTypes, model.ParseItemType(raw))
	}
	return config, rows.Err()
}

// SaveConfiguration reconciles a house's selected item types against the
// desired set in one transaction: missing types are added, deselected types
// are removed. Active tasks for removed types are kept so completion history
// survives a temporary deselection.
func (s *HouseStore) SaveConfiguration(houseID int64, desired []model.ItemType) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT item_type FROM house_item_types WHERE house_id = ?`, houseID)
	if err != nil {
		return fmt.Errorf("list existing item types: %w", err)
	}
	existing := make(map[model.ItemType]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return fmt.Errorf("scan item type: %w", err)
		}
		existing[model.ParseItemType(raw)] = true
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("close rows: %w", err)
	}

	want := make(map[model.ItemType]bool, len(desired))
	for _, t := range desired {
		want[t] = true
	}

	for t := range existing {
		if !want[t] {
			if _, err := tx.Exec(
				`DELETE FROM house_item_types WHERE house_id = ? AND item_type = ?`,
				houseID, string(t),
			); err != nil {
				return fmt.Errorf("remove item type %q: %w", t, err)
			}
		}
	}

	for t := range want {
		if !existing[t] {
			if _, err := tx.Exec(
				`INSERT INTO house_item_types (house_id, item_type) VALUES (?, ?)`,
				houseID, string(t),
			); err != nil {
				return fmt.Errorf("add item type %q: %w", t, err)
			}
		}
	}

	return tx.Commit()
}
