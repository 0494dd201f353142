package model

import "time"

// House is the ownership scope for all maintenance tracking. A house belongs
// to exactly one user; deleting a house cascades to its configuration and
// active tasks.
type House struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HouseConfiguration is the set of item types a house has opted into.
// Membership is unique and case-insensitive.
type HouseConfiguration struct {
	HouseID   int64      `json:"house_id"`
	ItemTypes []ItemType `json:"item_types"`
}
