package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

// Handler exposes reporting and disbursement endpoints.
type Handler struct {
	Service  *Service
	Validate *validator.Validate
}

type disbursementRequest struct {
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Comment string `json:"comment"`
}

// Get handles GET /api/v1/reports. Query parameters select the window:
// mode=today|day|month|year plus date=2006-01-02, month=2006-01, or year=2006.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	win, err := h.parseWindow(r)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	rep, err := h.Service.Build(r.Context(), win)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rep})
}

// ListDisbursements handles GET /api/v1/disbursements.
func (h *Handler) ListDisbursements(w http.ResponseWriter, r *http.Request) {
	disbursements, err := h.Service.ListDisbursements(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": disbursements})
}

// CreateDisbursement handles POST /api/v1/disbursements.
func (h *Handler) CreateDisbursement(w http.ResponseWriter, r *http.Request) {
	var req disbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a positive number", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a positive number", nil)
			return
		}
	}
	d, err := h.Service.RecordDisbursement(r.Context(), req.Amount, req.Comment)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	if obs.DisbursementTotal != nil {
		obs.DisbursementTotal.Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": d})
}

func (h *Handler) parseWindow(r *http.Request) (Window, error) {
	q := r.URL.Query()
	mode := Mode(q.Get("mode"))
	if mode == "" {
		mode = ModeToday
	}
	win := Window{Mode: mode}
	switch mode {
	case ModeToday:
		// nothing else to parse
	case ModeDay:
		day, err := time.Parse("2006-01-02", q.Get("date"))
		if err != nil {
			return Window{}, common.NewAppError("VALIDATION", "date must be formatted 2006-01-02", http.StatusBadRequest, err)
		}
		win.Date = day
	case ModeMonth:
		month, err := time.Parse("2006-01", q.Get("month"))
		if err != nil {
			return Window{}, common.NewAppError("VALIDATION", "month must be formatted 2006-01", http.StatusBadRequest, err)
		}
		win.Date = month
	case ModeYear:
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			return Window{}, common.NewAppError("VALIDATION", "year must be a number", http.StatusBadRequest, err)
		}
		win.Date = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return Window{}, common.NewAppError("VALIDATION", "mode must be today, day, month, or year", http.StatusBadRequest, nil)
	}
	return win, nil
}
