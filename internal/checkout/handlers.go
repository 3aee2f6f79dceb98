package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-kasir/internal/cart"
	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

// Checkout handles POST /api/v1/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
			return
		}
	}
	out, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.countOutcome("error", in.IsDebt)
		h.writeError(w, err)
		return
	}
	h.countOutcome("ok", out.Order.IsDebt)
	common.JSON(w, http.StatusCreated, map[string]any{"data": out})
}

func (h *Handler) countOutcome(result string, isDebt bool) {
	if obs.CheckoutTotal == nil {
		return
	}
	kind := "cash"
	if isDebt {
		kind = "credit"
	}
	obs.CheckoutTotal.WithLabelValues(result, kind).Inc()
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrUnknownProduct):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, cart.ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
