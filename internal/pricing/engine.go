package pricing

import "sort"

// Money represents a monetary value stored in minor units.
type Money = int64

// Tier maps a lot size to the total price charged for one whole lot.
type Tier struct {
	Quantity   int   `json:"quantity"`
	TotalPrice Money `json:"totalPrice"`
}

// ComputeTieredTotal prices qty units by greedily consuming the largest lot
// sizes first, then charges any leftover units at the quantity-1 tier when one
// exists, falling back to fallbackUnit otherwise. Tiers with a non-positive
// quantity are skipped. The decomposition is deterministic, not globally
// optimal: no search is made for a cheaper combination of non-nested lots.
func ComputeTieredTotal(qty int, fallbackUnit Money, tiers []Tier) Money {
	if qty <= 0 {
		return 0
	}
	if len(tiers) == 0 {
		return Money(qty) * fallbackUnit
	}
	sorted := append([]Tier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})
	remaining := qty
	var total Money
	for _, tier := range sorted {
		if tier.Quantity <= 0 {
			continue
		}
		lots := remaining / tier.Quantity
		if lots > 0 {
			total += Money(lots) * tier.TotalPrice
			remaining = remaining % tier.Quantity
		}
	}
	if remaining > 0 {
		unit := fallbackUnit
		if base, ok := UnitTier(tiers); ok {
			unit = base.TotalPrice
		}
		total += Money(remaining) * unit
	}
	return total
}

// UnitTier returns the first tier with quantity 1, when present.
func UnitTier(tiers []Tier) (Tier, bool) {
	for _, tier := range tiers {
		if tier.Quantity == 1 {
			return tier, true
		}
	}
	return Tier{}, false
}

// HasLotDiscount reports whether some multi-unit tier applies at qty, i.e. a
// lot price was (or could be) used for at least one whole lot.
func HasLotDiscount(qty int, tiers []Tier) bool {
	for _, tier := range tiers {
		if tier.Quantity > 1 && qty >= tier.Quantity {
			return true
		}
	}
	return false
}
