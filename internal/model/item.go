package model

import "strings"

// ItemType classifies a physical house component. The set is closed: adding a
// type means adding the constant here and its catalog entries.
type ItemType string

const (
	ItemTypeVentilation    ItemType = "ventilation"
	ItemTypeShower         ItemType = "shower"
	ItemTypeWashingMachine ItemType = "washing_machine"
	ItemTypeDishwasher     ItemType = "dishwasher"
	ItemTypeBathroomSink   ItemType = "bathroom_sink"
	ItemTypeBathtubDrain   ItemType = "bathtub_drain"
	ItemTypeInteriorDoor   ItemType = "interior_door"
	ItemTypeSmokeDetector  ItemType = "smoke_detector"

	// ItemTypeUnknown is the fallback for legacy or unrecognized stored
	// values. The catalog still yields generic tasks for it.
	ItemTypeUnknown ItemType = "unknown"
)

// ItemTypes lists all known item types in display order.
func ItemTypes() []ItemType {
	return []ItemType{
		ItemTypeVentilation,
		ItemTypeShower,
		ItemTypeWashingMachine,
		ItemTypeDishwasher,
		ItemTypeBathroomSink,
		ItemTypeBathtubDrain,
		ItemTypeInteriorDoor,
		ItemTypeSmokeDetector,
	}
}

// ParseItemType normalizes a stored or user-supplied string to an ItemType.
// Unrecognized values map to ItemTypeUnknown rather than erroring, so legacy
// rows with free-text types still load.
func ParseItemType(s string) ItemType {
	normalized := ItemType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ItemTypes() {
		if t == normalized {
			return t
		}
	}
	return ItemTypeUnknown
}

// RoomType is the general kind of room an item lives in.
type RoomType string

const (
	RoomTypeBathroom RoomType = "bathroom"
	RoomTypeKitchen  RoomType = "kitchen"
	RoomTypeBedroom  RoomType = "bedroom"
	RoomTypeHall     RoomType = "hall"
	RoomTypeOther    RoomType = "other"
)

// ParseRoomType normalizes a stored string to a RoomType, falling back to
// RoomTypeOther.
func ParseRoomType(s string) RoomType {
	switch RoomType(strings.ToLower(strings.TrimSpace(s))) {
	case RoomTypeBathroom:
		return RoomTypeBathroom
	case RoomTypeKitchen:
		return RoomTypeKitchen
	case RoomTypeBedroom:
		return RoomTypeBedroom
	case RoomTypeHall:
		return RoomTypeHall
	default:
		return RoomTypeOther
	}
}

// HouseItem is a static definition combining an item type with its room and
// catalog templates. Instances are defined by the catalog, not persisted.
type HouseItem struct {
	Name      string         `json:"name"`
	ItemType  ItemType       `json:"item_type"`
	RoomType  RoomType       `json:"room_type"`
	Templates []TaskTemplate `json:"templates"`
}
