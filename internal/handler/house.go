package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/maintenance"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
	"github.com/dukerupert/hearth/internal/websocket"
)

type HouseHandler struct {
	houses *store.HouseStore
	sync   *maintenance.Synchronizer
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewHouseHandler(hs *store.HouseStore, sync *maintenance.Synchronizer, hub *websocket.Hub, logger *slog.Logger) *HouseHandler {
	return &HouseHandler{houses: hs, sync: sync, hub: hub, logger: logger}
}

func (h *HouseHandler) broadcast(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.BroadcastToUser(userID, msg)
	}
}

// ownedHouse loads the house and verifies the caller owns it. Writes the
// error response and returns nil when the caller should not proceed.
func (h *HouseHandler) ownedHouse(w http.ResponseWriter, r *http.Request) *model.House {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}

	house, err := h.houses.GetByID(id)
	if err != nil {
		h.logger.Error("get house", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get house")
		return nil
	}
	if house == nil || house.OwnerID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "house not found")
		return nil
	}
	return house
}

type houseRequest struct {
	Name string `json:"name"`
}

func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req houseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	house, err := h.houses.Create(auth.UserID(r.Context()), req.Name)
	if err != nil {
		h.logger.Error("create house", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create house")
		return
	}

	writeJSON(w, http.StatusCreated, house)
}

func (h *HouseHandler) List(w http.ResponseWriter, r *http.Request) {
	houses, err := h.houses.ListByOwner(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list houses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list houses")
		return
	}
	if houses == nil {
		houses = []model.House{}
	}
	writeJSON(w, http.StatusOK, houses)
}

func (h *HouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	house := h.ownedHouse(w, r)
	if house == nil {
		return
	}
	writeJSON(w, http.StatusOK, house)
}

func (h *HouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	house := h.ownedHouse(w, r)
	if house == nil {
		return
	}

	if err := h.houses.Delete(house.ID); err != nil {
		h.logger.Error("delete house", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete house")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *HouseHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	house := h.ownedHouse(w, r)
	if house == nil {
		return
	}

	config, err := h.houses.GetConfiguration(house.ID)
	if err != nil {
		h.logger.Error("get configuration", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get configuration")
		return
	}
	writeJSON(w, http.StatusOK, config)
}

type configurationRequest struct {
	ItemTypes []string `json:"item_types"`
}

// SaveConfiguration replaces the house's selected item types and immediately
// synchronizes active tasks, so new selections show up with due dates in the
// same request.
func (h *HouseHandler) SaveConfiguration(w http.ResponseWriter, r *http.Request) {
	house := h.ownedHouse(w, r)
	if house == nil {
		return
	}

	var req configurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	itemTypes := make([]model.ItemType, 0, len(req.ItemTypes))
	seen := make(map[model.ItemType]bool)
	for _, raw := range req.ItemTypes {
		it := model.ParseItemType(raw)
		if seen[it] {
			continue
		}
		seen[it] = true
		itemTypes = append(itemTypes, it)
	}

	if err := h.houses.SaveConfiguration(house.ID, itemTypes); err != nil {
		h.logger.Error("save configuration", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save configuration")
		return
	}

	created, err := h.sync.Sync(house.ID, time.Now())
	if err != nil {
		h.logger.Error("sync tasks", "house_id", house.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to synchronize tasks")
		return
	}

	h.broadcast(house.OwnerID, websocket.NewMessage("configuration", "synced", "", map[string]any{
		"house_id":      house.ID,
		"tasks_created": created,
	}))

	config, err := h.houses.GetConfiguration(house.ID)
	if err != nil {
		h.logger.Error("reload configuration", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reload configuration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configuration": config,
		"tasks_created": created,
	})
}
