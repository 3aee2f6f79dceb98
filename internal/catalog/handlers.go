package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Handler exposes catalog management endpoints.
type Handler struct {
	Service           *Service
	LowStockThreshold int
	Validate          *validator.Validate
}

type productRequest struct {
	Name          string             `json:"name" validate:"required"`
	Price         int64              `json:"price" validate:"gte=0"`
	CostPrice     int64              `json:"costPrice" validate:"gte=0"`
	PriceTiers    []tierRequest      `json:"priceTiers" validate:"dive"`
	CostTiers     []tierRequest      `json:"costTiers" validate:"dive"`
	Stock         int                `json:"stock"`
	HasVariations bool               `json:"hasVariations"`
	Variations    []variationRequest `json:"variations" validate:"dive"`
	Barcode       string             `json:"barcode"`
}

type tierRequest struct {
	Quantity   int   `json:"quantity" validate:"gte=1"`
	TotalPrice int64 `json:"totalPrice" validate:"gte=0"`
}

type variationRequest struct {
	ID    string `json:"id"`
	Label string `json:"label" validate:"required"`
	Stock int    `json:"stock"`
}

// List handles GET /api/v1/products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products})
}

// Get handles GET /api/v1/products/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

// ByBarcode handles GET /api/v1/products/barcode/{code}.
func (h *Handler) ByBarcode(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.FindByBarcode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

// LowStock handles GET /api/v1/products/low-stock.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := h.LowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			threshold = parsed
		}
	}
	products, err := h.Service.LowStock(r.Context(), threshold)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products, "threshold": threshold})
}

// Create handles POST /api/v1/products.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	product, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": product})
}

// Update handles PUT /api/v1/products/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	product, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid json body", nil)
		return Input{}, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
			return Input{}, false
		}
	}
	return req.toInput(), true
}

func (r productRequest) toInput() Input {
	in := Input{
		Name:          r.Name,
		Price:         r.Price,
		CostPrice:     r.CostPrice,
		Stock:         r.Stock,
		HasVariations: r.HasVariations,
		Barcode:       r.Barcode,
	}
	for _, t := range r.PriceTiers {
		in.PriceTiers = append(in.PriceTiers, tierFromRequest(t))
	}
	for _, t := range r.CostTiers {
		in.CostTiers = append(in.CostTiers, tierFromRequest(t))
	}
	for _, v := range r.Variations {
		in.Variations = append(in.Variations, Variation{ID: v.ID, Label: v.Label, Stock: v.Stock})
	}
	return in
}

func tierFromRequest(t tierRequest) pricing.Tier {
	return pricing.Tier{Quantity: t.Quantity, TotalPrice: t.TotalPrice}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
