package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/report"
	"github.com/noah-isme/backend-kasir/internal/store"
)

type reportResponse struct {
	Data report.Report `json:"data"`
}

type reportErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestReportHandlerGet(t *testing.T) {
	db := store.NewMemory()
	sale := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), db, store.KeyOrders, []order.Order{
		{ID: "o1", Total: 1000, Timestamp: sale.UnixMilli()},
	}))
	h := &report.Handler{
		Service:  &report.Service{DB: db, Loc: time.UTC},
		Validate: validator.New(),
	}

	t.Run("day window", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?mode=day&date=2024-03-10", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp reportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, int64(1000), int64(resp.Data.GrossRevenue))
	})

	t.Run("month window misses", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?mode=month&month=2024-04", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp reportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, report.Report{}, resp.Data)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?mode=day&date=10-03-2024", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp reportErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "VALIDATION", resp.Error.Code)
	})

	t.Run("bad mode", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?mode=week", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
