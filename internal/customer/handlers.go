package customer

import (
	"net/http"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes the derived customer listing.
type Handler struct {
	Service *Service
}

// List handles GET /api/v1/customers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.List(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": customers})
}
