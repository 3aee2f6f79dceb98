package debt_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/store"
)

type debtListResponse struct {
	Data []struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		Outstanding int64   `json:"outstanding"`
		Progress    float64 `json:"progress"`
	} `json:"data"`
	TotalOutstanding int64 `json:"totalOutstanding"`
}

type errorResponse struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newRouter(svc *debt.Service) http.Handler {
	h := &debt.Handler{Service: svc, Validate: validator.New()}
	r := chi.NewRouter()
	r.Get("/api/v1/debts", h.List)
	r.Get("/api/v1/debts/{id}", h.Get)
	r.Post("/api/v1/debts/{id}/payments", h.Pay)
	return r
}

func TestDebtHandlers(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := &debt.Service{DB: store.NewMemory(), Now: func() time.Time { return now }}
	router := newRouter(svc)

	seeded, err := svc.CreateFromUnderpayment(context.Background(), order.Order{
		ID:            "ord-1",
		CustomerName:  "Awa",
		CustomerPhone: "22501020304",
		Total:         1000,
	}, 250)
	require.NoError(t, err)

	t.Run("list with outstanding total", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/debts", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp debtListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		require.Equal(t, seeded.ID, resp.Data[0].ID)
		require.Equal(t, int64(750), resp.Data[0].Outstanding)
		require.InDelta(t, 0.25, resp.Data[0].Progress, 1e-9)
		require.Equal(t, int64(750), resp.TotalOutstanding)
	})

	t.Run("list filters by customer", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/debts?q=awa", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp debtListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/debts?q=inconnu", nil))
		var empty debtListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
		require.Empty(t, empty.Data)
	})

	t.Run("get unknown debt", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/debts/missing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("payment settles the debt", func(t *testing.T) {
		body := strings.NewReader(`{"amount": 900}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/debts/"+seeded.ID+"/payments", body))
		require.Equal(t, http.StatusOK, rec.Code)

		updated, err := svc.Get(context.Background(), seeded.ID)
		require.NoError(t, err)
		require.Equal(t, debt.StatusPaid, updated.Status)
		require.Equal(t, int64(1000), updated.TotalPaid)
	})

	t.Run("payment rejects non-positive amount", func(t *testing.T) {
		body := strings.NewReader(`{"amount": -5}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/debts/"+seeded.ID+"/payments", body))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "INVALID_AMOUNT", resp.Error.Code)
	})
}
