// Package cart implements the in-memory cart and its pricing into frozen
// order lines. All functions are pure: persistence and stock effects belong
// to checkout.
package cart

import (
	"errors"
	"fmt"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// ErrUnknownProduct is returned when an entry references a product id absent
// from the catalog. Pricing never silently produces an undefined amount.
var ErrUnknownProduct = errors.New("unknown product")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Entry is one cart position, keyed by (ProductID, VariationLabel).
type Entry struct {
	ProductID      string `json:"productId" validate:"required"`
	VariationLabel string `json:"variationLabel,omitempty"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
}

// Line is a priced entry frozen at checkout. TotalPrice and TotalCost are
// whole-line totals, not unit prices; the order record preserves this shape.
type Line struct {
	Entry
	Name        string        `json:"name"`
	TotalPrice  pricing.Money `json:"totalPrice"`
	TotalCost   pricing.Money `json:"totalCost"`
	TierApplied bool          `json:"tierApplied"`
}

// Add increments the matching entry's quantity by one, appending a new entry
// with quantity 1 when no match exists.
func Add(entries []Entry, productID, variationLabel string) []Entry {
	for i, e := range entries {
		if e.ProductID == productID && e.VariationLabel == variationLabel {
			out := append([]Entry(nil), entries...)
			out[i].Quantity++
			return out
		}
	}
	out := append([]Entry(nil), entries...)
	return append(out, Entry{ProductID: productID, VariationLabel: variationLabel, Quantity: 1})
}

// Remove decrements the matching entry's quantity by one, dropping the entry
// entirely when it reaches zero. Unmatched removals are a no-op.
func Remove(entries []Entry, productID, variationLabel string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID == productID && e.VariationLabel == variationLabel {
			if e.Quantity > 1 {
				e.Quantity--
				out = append(out, e)
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// Price resolves every entry against the catalog and computes tiered line
// totals. The second return value is the cart total (sum of line prices).
func Price(entries []Entry, products []catalog.Product) ([]Line, pricing.Money, error) {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	lines := make([]Line, 0, len(entries))
	var total pricing.Money
	for _, e := range entries {
		if e.Quantity < 1 {
			return nil, 0, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
		}
		product, ok := byID[e.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product %s: %w", e.ProductID, ErrUnknownProduct)
		}
		line := Line{
			Entry:       e,
			Name:        product.Name,
			TotalPrice:  pricing.ComputeTieredTotal(e.Quantity, product.BasePrice(), product.PriceTiers),
			TotalCost:   pricing.ComputeTieredTotal(e.Quantity, product.BaseCost(), product.CostTiers),
			TierApplied: pricing.HasLotDiscount(e.Quantity, product.PriceTiers),
		}
		lines = append(lines, line)
		total += line.TotalPrice
	}
	return lines, total, nil
}
