package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/catalog"
	"github.com/dukerupert/hearth/internal/maintenance"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type TaskHandler struct {
	tasks  *store.TaskStore
	houses *store.HouseStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, hs *store.HouseStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, houses: hs, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.BroadcastToUser(userID, msg)
	}
}

// taskResponse decorates a task with derived due-state fields and the
// catalog display name.
type taskResponse struct {
	model.ActiveTask
	TaskName     string `json:"task_name"`
	DaysUntilDue int    `json:"days_until_due"`
	IsOverdue    bool   `json:"is_overdue"`
	IsDueSoon    bool   `json:"is_due_soon"`
}

func newTaskResponse(t model.ActiveTask, now time.Time) taskResponse {
	return taskResponse{
		ActiveTask:   t,
		TaskName:     catalog.TemplateName(t.ItemType, t.TemplateID),
		DaysUntilDue: t.DaysUntilDue(now),
		IsOverdue:    t.IsOverdue(now),
		IsDueSoon:    t.IsDueSoon(now),
	}
}

func newTaskResponses(tasks []model.ActiveTask, now time.Time) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t, now))
	}
	return out
}

// ownedHouseID verifies the house in the path belongs to the caller. Returns
// 0 after writing the error response when it does not.
func (h *TaskHandler) ownedHouseID(w http.ResponseWriter, r *http.Request) int64 {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0
	}

	house, err := h.houses.GetByID(id)
	if err != nil {
		h.logger.Error("get house", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get house")
		return 0
	}
	if house == nil || house.OwnerID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "house not found")
		return 0
	}
	return house.ID
}

// List returns a house's tasks ordered by due date. An optional room query
// parameter filters by room type.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	houseID := h.ownedHouseID(w, r)
	if houseID == 0 {
		return
	}

	var tasks []model.ActiveTask
	var err error
	if room := r.URL.Query().Get("room"); room != "" {
		tasks, err = h.tasks.ListByRoomType(houseID, model.ParseRoomType(room))
	} else {
		tasks, err = h.tasks.ListByHouse(houseID)
	}
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, newTaskResponses(tasks, time.Now()))
}

func (h *TaskHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	houseID := h.ownedHouseID(w, r)
	if houseID == 0 {
		return
	}

	tasks, err := h.tasks.ListOverdue(houseID, time.Now())
	if err != nil {
		h.logger.Error("list overdue tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list overdue tasks")
		return
	}

	writeJSON(w, http.StatusOK, newTaskResponses(tasks, time.Now()))
}

// NextDue returns the soonest-due task for a house, or null if the house has
// no tasks.
func (h *TaskHandler) NextDue(w http.ResponseWriter, r *http.Request) {
	houseID := h.ownedHouseID(w, r)
	if houseID == 0 {
		return
	}

	task, err := h.tasks.NextDue(houseID)
	if err != nil {
		h.logger.Error("next due task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get next task")
		return
	}
	if task == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, newTaskResponse(*task, time.Now()))
}

type completeRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
}

// Complete marks a task done and rolls its due date forward by the task's
// interval. An optional completed_at backdates the completion.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.tasks.GetByID(id)
	if err != nil {
		h.logger.Error("get task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	house, err := h.houses.GetByID(task.HouseID)
	if err != nil {
		h.logger.Error("get house", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get house")
		return
	}
	if house == nil || house.OwnerID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	var req completeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	completedAt := time.Now().UTC()
	if req.CompletedAt != nil {
		completedAt = req.CompletedAt.UTC()
	}

	updated := maintenance.Complete(*task, completedAt)
	saved, err := h.tasks.Complete(updated.ID, *updated.LastCompletedAt, updated.NextDueDate)
	if err != nil {
		h.logger.Error("complete task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete task")
		return
	}
	if saved == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	h.broadcast(house.OwnerID, websocket.NewMessage("task", "completed", saved.ID.String(), nil))

	writeJSON(w, http.StatusOK, newTaskResponse(*saved, time.Now()))
}
