package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/customer"
	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/store"
)

func TestUniqueDedupesByPhone(t *testing.T) {
	orders := []order.Order{
		{CustomerName: "Awa", CustomerPhone: "22501020304"},
		{CustomerName: "Awa K.", CustomerPhone: "22501020304"},
		{CustomerName: "Moussa", CustomerPhone: "22507080910"},
	}

	got := customer.Unique(orders, nil)
	require.Len(t, got, 2)
	require.Equal(t, "22501020304", got[0].Phone)
	require.Equal(t, "22507080910", got[1].Phone)
}

func TestUniqueOrderNameWinsOverDebtName(t *testing.T) {
	debts := []debt.Debt{{CustomerName: "A. Kone", CustomerPhone: "22501020304"}}
	orders := []order.Order{{CustomerName: "Awa Kone", CustomerPhone: "22501020304"}}

	got := customer.Unique(orders, debts)
	require.Len(t, got, 1)
	require.Equal(t, "Awa Kone", got[0].Name)
}

func TestUniqueSkipsEmptyPhones(t *testing.T) {
	orders := []order.Order{{CustomerName: "Anonyme", CustomerPhone: ""}}
	require.Empty(t, customer.Unique(orders, nil))
}

func TestListReadsBothCollections(t *testing.T) {
	db := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, db, store.KeyOrders, []order.Order{
		{CustomerName: "Awa", CustomerPhone: "22501020304"},
	}))
	require.NoError(t, store.Save(ctx, db, store.KeyDebts, []debt.Debt{
		{CustomerName: "Moussa", CustomerPhone: "22507080910"},
	}))

	svc := &customer.Service{DB: db}
	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// debts are applied first, then orders
	require.Equal(t, "Moussa", got[0].Name)
	require.Equal(t, "Awa", got[1].Name)
}
