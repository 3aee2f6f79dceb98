package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/report"
	"github.com/noah-isme/backend-kasir/internal/store"
)

func TestRecordDisbursement(t *testing.T) {
	now := time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)
	svc := &report.Service{DB: store.NewMemory(), Now: func() time.Time { return now }}

	first, err := svc.RecordDisbursement(context.Background(), 2500, "  loyer mars  ")
	require.NoError(t, err)
	require.Equal(t, "loyer mars", first.Comment)
	require.Equal(t, now.UnixMilli(), first.Timestamp)

	second, err := svc.RecordDisbursement(context.Background(), 500, "transport")
	require.NoError(t, err)

	list, err := svc.ListDisbursements(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)
}

func TestRecordDisbursementRejectsNonPositive(t *testing.T) {
	svc := &report.Service{DB: store.NewMemory()}

	_, err := svc.RecordDisbursement(context.Background(), 0, "rien")
	require.True(t, errors.Is(err, report.ErrInvalidAmount))
	_, err = svc.RecordDisbursement(context.Background(), -100, "rien")
	require.True(t, errors.Is(err, report.ErrInvalidAmount))

	list, err := svc.ListDisbursements(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestBuildAppliesServiceLocationAndClock(t *testing.T) {
	db := store.NewMemory()
	plusTwo := time.FixedZone("UTC+2", 2*3600)
	// 23:30 UTC on March 10 is March 11 in UTC+2.
	sale := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), db, store.KeyOrders, []order.Order{
		{ID: "o1", Total: 1000, Timestamp: sale.UnixMilli()},
	}))

	svc := &report.Service{
		DB:  db,
		Loc: plusTwo,
		Now: func() time.Time { return time.Date(2024, 3, 11, 8, 0, 0, 0, plusTwo) },
	}

	r, err := svc.Build(context.Background(), report.Window{Mode: report.ModeToday})
	require.NoError(t, err)
	require.Equal(t, int64(1000), int64(r.GrossRevenue))
}
