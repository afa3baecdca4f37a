package rates

import (
	"net/http"

	"github.com/noah-isme/backend-butik/internal/common"
)

// Handler exposes the active zone table to the storefront.
type Handler struct {
	Store *Store
}

// Zones returns the currently effective zone table, defaults included, in
// the stored row shape (null max_km marks the catch-all).
func (h *Handler) Zones(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "rates store not configured", nil)
		return
	}
	snap := h.Store.Snapshot(r.Context())
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"zones":  snap.Zones.Rows(),
			"source": snap.ZoneSource,
		},
	})
}
