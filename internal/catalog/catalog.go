// Package catalog holds the static registry mapping item types to their
// recurring maintenance task templates. The registry is immutable and loaded
// once at startup; per-house state lives in active tasks, never here.
package catalog

import "github.com/dukerupert/hearth/internal/model"

var templatesByType = map[model.ItemType][]model.TaskTemplate{
	model.ItemTypeVentilation: {
		{ID: "ventilation_change_air_filter", Name: "Change Air Filter", Description: "Replace the air filter to maintain air quality and system efficiency.", IntervalDays: 180},
		{ID: "ventilation_professional_inspection", Name: "Professional Inspection", Description: "Schedule a professional ventilation system inspection.", IntervalDays: 365},
		{ID: "ventilation_clean_vents_and_ducts", Name: "Clean Vents and Ducts", Description: "Clean air vents and inspect ductwork for debris or blockages.", IntervalDays: 180},
	},
	model.ItemTypeShower: {
		{ID: "shower_check_for_leaks", Name: "Check for Leaks", Description: "Inspect pipes, faucets, and connections for signs of leaks or water damage.", IntervalDays: 90},
		{ID: "shower_clean_drains", Name: "Clean Drains", Description: "Clean and flush the drain to prevent clogs and buildup.", IntervalDays: 180},
		{ID: "shower_test_water_pressure", Name: "Test Water Pressure", Description: "Check water pressure and adjust if necessary to prevent pipe damage.", IntervalDays: 365},
	},
	model.ItemTypeWashingMachine: {
		{ID: "washing_machine_rinse_drum", Name: "Rinse Drum", Description: "Run an empty hot cycle to rinse the drum.", IntervalDays: 30},
		{ID: "washing_machine_rinse_soap_compartment", Name: "Rinse Soap Compartment", Description: "Remove and rinse the detergent compartment.", IntervalDays: 30},
		{ID: "washing_machine_rinse_drain_filter", Name: "Rinse Drain Filter", Description: "Remove and rinse the drain filter at the bottom of the machine.", IntervalDays: 90},
		{ID: "washing_machine_rinse_drain_outlet", Name: "Rinse Drain Outlet", Description: "Flush the drain outlet hose and check for residue.", IntervalDays: 180},
	},
	model.ItemTypeDishwasher: {
		{ID: "dishwasher_clean_filter", Name: "Clean Filter", Description: "Remove and rinse the dishwasher filter under running water.", IntervalDays: 14},
		{ID: "dishwasher_clean_door_and_seals", Name: "Clean Door and Seals", Description: "Wipe down the door edges and rubber seals to prevent mold.", IntervalDays: 30},
	},
	model.ItemTypeBathroomSink: {
		{ID: "bathroom_sink_clean_drain", Name: "Clean Drain", Description: "Clear hair and buildup from the sink drain and trap.", IntervalDays: 90},
	},
	model.ItemTypeBathtubDrain: {
		{ID: "bathtub_drain_clean_drain", Name: "Clean Drain", Description: "Clear hair and buildup from the bathtub drain.", IntervalDays: 90},
	},
	model.ItemTypeInteriorDoor: {
		{ID: "interior_door_lubricate_hinges", Name: "Lubricate Hinges", Description: "Apply lubricant to door hinges to prevent squeaking.", IntervalDays: 180},
		{ID: "interior_door_check_weatherstripping", Name: "Check Weatherstripping", Description: "Inspect and replace weatherstripping to maintain energy efficiency.", IntervalDays: 365},
		{ID: "interior_door_tighten_hardware", Name: "Tighten Hardware", Description: "Check and tighten handles, locks, and hinges.", IntervalDays: 180},
	},
	model.ItemTypeSmokeDetector: {
		{ID: "smoke_detector_test_alarm", Name: "Test Alarm", Description: "Press the test button to confirm the alarm is functioning.", IntervalDays: 30},
		{ID: "smoke_detector_replace_batteries", Name: "Replace Batteries", Description: "Replace the batteries in the detector.", IntervalDays: 365},
		{ID: "smoke_detector_clean_sensor", Name: "Clean Sensor", Description: "Gently vacuum or wipe the sensor for accurate detection.", IntervalDays: 180},
	},
}

// genericTemplates is the fallback for item types with no explicit registry
// entry, so a configured item never yields zero tasks.
var genericTemplates = []model.TaskTemplate{
	{ID: "generic_regular_inspection", Name: "Regular Inspection", Description: "Inspect the item for wear, damage, or needed maintenance.", IntervalDays: 180},
	{ID: "generic_clean_and_maintain", Name: "Clean and Maintain", Description: "Clean the item and perform routine upkeep.", IntervalDays: 365},
}

// TemplatesFor returns the maintenance task templates for an item type. It is
// total: unknown types get the generic fallback list, never an empty slice.
// Callers must not mutate the returned slice.
func TemplatesFor(itemType model.ItemType) []model.TaskTemplate {
	if templates, ok := templatesByType[itemType]; ok {
		return templates
	}
	return genericTemplates
}

// TemplateName resolves a template ID to its display name, falling back to
// the ID itself for templates no longer in the registry.
func TemplateName(itemType model.ItemType, templateID string) string {
	for _, tmpl := range TemplatesFor(itemType) {
		if tmpl.ID == templateID {
			return tmpl.Name
		}
	}
	for _, tmpl := range genericTemplates {
		if tmpl.ID == templateID {
			return tmpl.Name
		}
	}
	return templateID
}

// Items returns the static house-item definitions, one per known item type,
// each carrying its room placement and catalog templates. The synchronizer
// resolves a house's selected item types against this list.
func Items() []model.HouseItem {
	return []model.HouseItem{
		{Name: "Ventilation System", ItemType: model.ItemTypeVentilation, RoomType: model.RoomTypeOther, Templates: TemplatesFor(model.ItemTypeVentilation)},
		{Name: "Shower", ItemType: model.ItemTypeShower, RoomType: model.RoomTypeBathroom, Templates: TemplatesFor(model.ItemTypeShower)},
		{Name: "Washing Machine", ItemType: model.ItemTypeWashingMachine, RoomType: model.RoomTypeBathroom, Templates: TemplatesFor(model.ItemTypeWashingMachine)},
		{Name: "Dishwasher", ItemType: model.ItemTypeDishwasher, RoomType: model.RoomTypeKitchen, Templates: TemplatesFor(model.ItemTypeDishwasher)},
		{Name: "Bathroom Sink", ItemType: model.ItemTypeBathroomSink, RoomType: model.RoomTypeBathroom, Templates: TemplatesFor(model.ItemTypeBathroomSink)},
		{Name: "Bathtub Drain", ItemType: model.ItemTypeBathtubDrain, RoomType: model.RoomTypeBathroom, Templates: TemplatesFor(model.ItemTypeBathtubDrain)},
		{Name: "Interior Doors", ItemType: model.ItemTypeInteriorDoor, RoomType: model.RoomTypeHall, Templates: TemplatesFor(model.ItemTypeInteriorDoor)},
		{Name: "Smoke Detector", ItemType: model.ItemTypeSmokeDetector, RoomType: model.RoomTypeHall, Templates: TemplatesFor(model.ItemTypeSmokeDetector)},
	}
}

// ItemsForTypes filters the static items down to the given selected types.
func ItemsForTypes(selected []model.ItemType) []model.HouseItem {
	want := make(map[model.ItemType]bool, len(selected))
	for _, t := range selected {
		want[t] = true
	}

	var items []model.HouseItem
	for _, item := range Items() {
		if want[item.ItemType] {
			items = append(items, item)
		}
	}
	return items
}
