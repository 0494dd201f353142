package handler

import (
	"net/http"

	"github.com/dukerupert/hearth/internal/catalog"
	"github.com/dukerupert/hearth/internal/model"
)

// CatalogHandler exposes the static maintenance registry so clients can
// render the configuration picker.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListItemTypes returns the selectable item types.
func (h *CatalogHandler) ListItemTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ItemTypes())
}

// ListItems returns the full item definitions with their task templates.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Items())
}
