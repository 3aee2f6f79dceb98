package cart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/cart"
	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

func TestAddIncrementsExistingEntry(t *testing.T) {
	entries := cart.Add(nil, "p1", "")
	entries = cart.Add(entries, "p1", "")
	entries = cart.Add(entries, "p1", "XL")

	require.Len(t, entries, 2)
	require.Equal(t, 2, entries[0].Quantity)
	require.Equal(t, "XL", entries[1].VariationLabel)
	require.Equal(t, 1, entries[1].Quantity)
}

func TestRemoveIsInverseOfAdd(t *testing.T) {
	base := []cart.Entry{{ProductID: "p1", Quantity: 2}}

	added := cart.Add(base, "p1", "")
	require.Equal(t, 3, added[0].Quantity)
	require.Equal(t, base, cart.Remove(added, "p1", ""))

	added = cart.Add(base, "p2", "S")
	require.Equal(t, base, cart.Remove(added, "p2", "S"))
}

func TestRemoveDropsEntryAtZero(t *testing.T) {
	entries := []cart.Entry{{ProductID: "p1", Quantity: 1}}
	require.Empty(t, cart.Remove(entries, "p1", ""))
}

func TestPriceComputesTieredLineTotals(t *testing.T) {
	products := []catalog.Product{
		{
			ID:         "p1",
			Name:       "Rice 1kg",
			Price:      100,
			CostPrice:  70,
			PriceTiers: []pricing.Tier{{Quantity: 1, TotalPrice: 100}, {Quantity: 5, TotalPrice: 400}},
			CostTiers:  []pricing.Tier{{Quantity: 1, TotalPrice: 70}},
		},
		{ID: "p2", Name: "Oil 1L", Price: 900, CostPrice: 750},
	}
	entries := []cart.Entry{
		{ProductID: "p1", Quantity: 7},
		{ProductID: "p2", Quantity: 2},
	}

	lines, total, err := cart.Price(entries, products)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Equal(t, int64(600), lines[0].TotalPrice) // 5-lot + 2 units
	require.Equal(t, int64(490), lines[0].TotalCost)
	require.True(t, lines[0].TierApplied)
	require.Equal(t, "Rice 1kg", lines[0].Name)

	require.Equal(t, int64(1800), lines[1].TotalPrice)
	require.False(t, lines[1].TierApplied)

	require.Equal(t, int64(2400), total)
}

func TestPriceRejectsUnknownProduct(t *testing.T) {
	entries := []cart.Entry{{ProductID: "ghost", Quantity: 1}}
	_, _, err := cart.Price(entries, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, cart.ErrUnknownProduct))
}

func TestPriceRejectsNonPositiveQuantity(t *testing.T) {
	products := []catalog.Product{{ID: "p1", Name: "x", Price: 10}}
	_, _, err := cart.Price([]cart.Entry{{ProductID: "p1", Quantity: 0}}, products)
	require.True(t, errors.Is(err, cart.ErrInvalidInput))
}
