package catalog

import (
	"testing"

	"github.com/dukerupert/hearth/internal/model"
)

func TestTemplatesForKnownType(t *testing.T) {
	templates := TemplatesFor(model.ItemTypeDishwasher)
	if len(templates) != 2 {
		t.Fatalf("dishwasher templates = %d, want 2", len(templates))
	}
	if templates[0].ID != "dishwasher_clean_filter" {
		t.Errorf("first template = %q", templates[0].ID)
	}
	if templates[0].IntervalDays != 14 {
		t.Errorf("clean filter interval = %d, want 14", templates[0].IntervalDays)
	}
}

func TestTemplatesForUnknownTypeFallsBack(t *testing.T) {
	templates := TemplatesFor(model.ItemTypeUnknown)
	if len(templates) == 0 {
		t.Fatal("unknown type should yield generic templates, got none")
	}
	for _, tmpl := range templates {
		if tmpl.IntervalDays <= 0 {
			t.Errorf("template %q has non-positive interval %d", tmpl.ID, tmpl.IntervalDays)
		}
	}
}

func TestEveryKnownTypeHasTemplates(t *testing.T) {
	for _, it := range model.ItemTypes() {
		templates := TemplatesFor(it)
		if len(templates) == 0 {
			t.Errorf("item type %q has no templates", it)
		}
		seen := make(map[string]bool)
		for _, tmpl := range templates {
			if tmpl.IntervalDays <= 0 {
				t.Errorf("template %q interval = %d", tmpl.ID, tmpl.IntervalDays)
			}
			if seen[tmpl.ID] {
				t.Errorf("duplicate template id %q for %q", tmpl.ID, it)
			}
			seen[tmpl.ID] = true
		}
	}
}

func TestItemsCoverAllKnownTypes(t *testing.T) {
	items := Items()
	byType := make(map[model.ItemType]bool)
	for _, item := range items {
		byType[item.ItemType] = true
	}
	for _, it := range model.ItemTypes() {
		if !byType[it] {
			t.Errorf("no item definition for type %q", it)
		}
	}
}

func TestItemsForTypesFilters(t *testing.T) {
	items := ItemsForTypes([]model.ItemType{model.ItemTypeDishwasher, model.ItemTypeShower})
	if len(items) != 2 {
		t.Fatalf("filtered items = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.ItemType != model.ItemTypeDishwasher && item.ItemType != model.ItemTypeShower {
			t.Errorf("unexpected item type %q", item.ItemType)
		}
	}

	if got := ItemsForTypes(nil); len(got) != 0 {
		t.Errorf("empty selection should yield no items, got %d", len(got))
	}
}

func TestTemplateName(t *testing.T) {
	if got := TemplateName(model.ItemTypeDishwasher, "dishwasher_clean_filter"); got != "Clean Filter" {
		t.Errorf("TemplateName = %q, want %q", got, "Clean Filter")
	}
	if got := TemplateName(model.ItemTypeDishwasher, "no_such_template"); got != "no_such_template" {
		t.Errorf("unknown template should fall back to id, got %q", got)
	}
}
