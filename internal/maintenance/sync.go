package maintenance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/hearth/internal/catalog"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

// Synchronizer reconciles a house's configuration against its active tasks:
// it creates instances for newly selected item types and never deletes or
// duplicates existing ones.
type Synchronizer struct {
	houses *store.HouseStore
	tasks  *store.TaskStore
	logger *slog.Logger
}

func NewSynchronizer(houses *store.HouseStore, tasks *store.TaskStore, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{houses: houses, tasks: tasks, logger: logger}
}

// Sync materializes missing active tasks for a house. Existing tasks keep
// their completion state; tasks for deselected item types are left in place.
// All insertions commit in one transaction, so a failure creates nothing.
// Returns the number of tasks created. Calling Sync again with no
// configuration change creates zero rows.
func (s *Synchronizer) Sync(houseID int64, now time.Time) (int, error) {
	config, err := s.houses.GetConfiguration(houseID)
	if err != nil {
		return 0, fmt.Errorf("load configuration: %w", err)
	}
	if len(config.ItemTypes) == 0 {
		return 0, nil
	}

	existing, err := s.tasks.ExistingKeys(houseID)
	if err != nil {
		return 0, fmt.Errorf("load existing task keys: %w", err)
	}

	now = now.UTC()
	var missing []model.ActiveTask
	for _, item := range catalog.ItemsForTypes(config.ItemTypes) {
		for _, tmpl := range item.Templates {
			if existing[model.TaskKey(item.Name, tmpl.ID)] {
				continue
			}
			missing = append(missing, model.ActiveTask{
				ID:           uuid.New(),
				HouseID:      houseID,
				ItemName:     item.Name,
				TemplateID:   tmpl.ID,
				ItemType:     item.ItemType,
				RoomType:     item.RoomType,
				IntervalDays: tmpl.IntervalDays,
				NextDueDate:  NextDue(now, tmpl.IntervalDays),
			})
		}
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.tasks.InsertBatch(missing); err != nil {
		return 0, fmt.Errorf("insert tasks: %w", err)
	}

	s.logger.Info("synchronized house tasks", "house_id", houseID, "created", len(missing))
	return len(missing), nil
}
