package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

type PreferenceHandler struct {
	prefs  *store.PreferenceStore
	logger *slog.Logger
}

func NewPreferenceHandler(ps *store.PreferenceStore, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefs: ps, logger: logger}
}

// List returns one preference per delivery method. Methods the user never
// configured come back disabled with default lead time, so the client always
// sees the full set.
func (h *PreferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	stored, err := h.prefs.ListForUser(userID)
	if err != nil {
		h.logger.Error("list preferences", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list preferences")
		return
	}

	byMethod := make(map[model.NotificationMethod]model.NotificationPreference, len(stored))
	for _, p := range stored {
		byMethod[p.Method] = p
	}

	out := make([]model.NotificationPreference, 0, len(model.NotificationMethods()))
	for _, method := range model.NotificationMethods() {
		if p, ok := byMethod[method]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, model.NotificationPreference{
			UserID:  userID,
			Method:  method,
			Enabled: false,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

type preferenceRequest struct {
	Method                string  `json:"method"`
	Enabled               bool    `json:"enabled"`
	PreferredTime         *string `json:"preferred_time"`
	ReminderDaysBeforeDue *int    `json:"reminder_days_before_due"`
}

// Update creates or replaces the preference for one delivery method.
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	method := model.NotificationMethod(req.Method)
	valid := false
	for _, m := range model.NotificationMethods() {
		if m == method {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "unknown notification method")
		return
	}

	if req.PreferredTime != nil && !timeOfDayPattern.MatchString(*req.PreferredTime) {
		writeError(w, http.StatusBadRequest, "preferred_time must be HH:MM")
		return
	}
	if req.ReminderDaysBeforeDue != nil && (*req.ReminderDaysBeforeDue < 0 || *req.ReminderDaysBeforeDue > 30) {
		writeError(w, http.StatusBadRequest, "reminder_days_before_due must be between 0 and 30")
		return
	}

	pref, err := h.prefs.Upsert(auth.UserID(r.Context()), method, req.Enabled, req.PreferredTime, req.ReminderDaysBeforeDue)
	if err != nil {
		h.logger.Error("upsert preference", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save preference")
		return
	}

	writeJSON(w, http.StatusOK, pref)
}
