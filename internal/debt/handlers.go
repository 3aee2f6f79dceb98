package debt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// Handler exposes the debt ledger endpoints.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

type paymentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type debtView struct {
	Debt
	Outstanding int64   `json:"outstanding"`
	Progress    float64 `json:"progress"`
}

// List handles GET /api/v1/debts with an optional ?q= customer filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	total, err := h.Service.TotalOutstanding(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	views := make([]debtView, 0, len(debts))
	for _, d := range debts {
		views = append(views, toView(d))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views, "totalOutstanding": total})
}

// Get handles GET /api/v1/debts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(d)})
}

// Pay handles POST /api/v1/debts/{id}/payments.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.countPayment("invalid")
		common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a positive number", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			h.countPayment("invalid")
			common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a positive number", nil)
			return
		}
	}
	d, err := h.Service.ApplyPayment(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.countPayment("error")
		h.writeError(w, err)
		return
	}
	h.countPayment("ok")
	h.refreshOutstandingGauge(r)
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(d)})
}

func (h *Handler) countPayment(result string) {
	if obs.DebtPaymentTotal != nil {
		obs.DebtPaymentTotal.WithLabelValues(result).Inc()
	}
}

func (h *Handler) refreshOutstandingGauge(r *http.Request) {
	if obs.OutstandingDebt == nil {
		return
	}
	if total, err := h.Service.TotalOutstanding(r.Context()); err == nil {
		obs.OutstandingDebt.Set(float64(total))
	}
}

func toView(d Debt) debtView {
	return debtView{Debt: d, Outstanding: d.Outstanding(), Progress: d.Progress()}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "debt not found", nil)
	case errors.Is(err, ErrInvalidAmount):
		common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
