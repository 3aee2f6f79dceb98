package pricing

import "testing"

func TestComputeTieredTotalGreedy(t *testing.T) {
	tiers := []Tier{{Quantity: 1, TotalPrice: 100}, {Quantity: 3, TotalPrice: 270}, {Quantity: 10, TotalPrice: 800}}
	// 13 = 1 lot of 10 (800) + 1 lot of 3 (270)
	if got := ComputeTieredTotal(13, 100, tiers); got != 1070 {
		t.Fatalf("expected 1070, got %d", got)
	}
}

func TestComputeTieredTotalFallbackUnit(t *testing.T) {
	if got := ComputeTieredTotal(4, 150, nil); got != 600 {
		t.Fatalf("expected 600, got %d", got)
	}
}

func TestComputeTieredTotalLeftoverUsesUnitTier(t *testing.T) {
	tiers := []Tier{{Quantity: 1, TotalPrice: 100}, {Quantity: 5, TotalPrice: 400}}
	// 7 = 1 lot of 5 (400) + 2 units at the quantity-1 tier (200)
	if got := ComputeTieredTotal(7, 999, tiers); got != 600 {
		t.Fatalf("expected 600, got %d", got)
	}
}

func TestComputeTieredTotalLeftoverWithoutUnitTier(t *testing.T) {
	tiers := []Tier{{Quantity: 5, TotalPrice: 400}}
	// 7 = 1 lot of 5 (400) + 2 units at the fallback (300)
	if got := ComputeTieredTotal(7, 150, tiers); got != 700 {
		t.Fatalf("expected 700, got %d", got)
	}
}

func TestComputeTieredTotalZeroQuantity(t *testing.T) {
	if got := ComputeTieredTotal(0, 100, []Tier{{Quantity: 1, TotalPrice: 100}}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := ComputeTieredTotal(-3, 100, nil); got != 0 {
		t.Fatalf("expected 0 for negative quantity, got %d", got)
	}
}

func TestComputeTieredTotalSkipsMalformedTiers(t *testing.T) {
	tiers := []Tier{{Quantity: 0, TotalPrice: 1}, {Quantity: -2, TotalPrice: 1}, {Quantity: 1, TotalPrice: 100}}
	if got := ComputeTieredTotal(3, 999, tiers); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
}

func TestComputeTieredTotalDuplicateQuantityFirstWins(t *testing.T) {
	// Equal quantities are not expected to coexist; the stable sort keeps the
	// first one ahead.
	tiers := []Tier{{Quantity: 3, TotalPrice: 250}, {Quantity: 3, TotalPrice: 999}}
	if got := ComputeTieredTotal(3, 100, tiers); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
}

func TestHasLotDiscount(t *testing.T) {
	tiers := []Tier{{Quantity: 1, TotalPrice: 100}, {Quantity: 5, TotalPrice: 400}}
	if HasLotDiscount(4, tiers) {
		t.Fatal("no lot should apply below the tier quantity")
	}
	if !HasLotDiscount(5, tiers) {
		t.Fatal("lot should apply at the tier quantity")
	}
	if HasLotDiscount(10, []Tier{{Quantity: 1, TotalPrice: 100}}) {
		t.Fatal("a unit tier alone is not a lot discount")
	}
}
