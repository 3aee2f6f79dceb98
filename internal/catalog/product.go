package catalog

import (
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Variation is a sellable variant of a product (size, colour) with its own stock.
type Variation struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Stock int    `json:"stock"`
}

// Product is a catalog entry. Price and CostPrice are flat unit fallbacks used
// when no quantity-1 tier exists. Stock is authoritative unless variations are
// enabled, in which case it always equals the sum of variation stocks.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         pricing.Money  `json:"price"`
	CostPrice     pricing.Money  `json:"costPrice"`
	PriceTiers    []pricing.Tier `json:"priceTiers"`
	CostTiers     []pricing.Tier `json:"costTiers"`
	Stock         int            `json:"stock"`
	HasVariations bool           `json:"hasVariations"`
	Variations    []Variation    `json:"variations,omitempty"`
	Barcode       string         `json:"barcode,omitempty"`
}

// BasePrice is the displayed unit price: the quantity-1 tier when present,
// else the flat price.
func (p Product) BasePrice() pricing.Money {
	if tier, ok := pricing.UnitTier(p.PriceTiers); ok {
		return tier.TotalPrice
	}
	return p.Price
}

// BaseCost mirrors BasePrice for the cost side.
func (p Product) BaseCost() pricing.Money {
	if tier, ok := pricing.UnitTier(p.CostTiers); ok {
		return tier.TotalPrice
	}
	return p.CostPrice
}

// syncStock re-derives the aggregate stock from variations when enabled.
func (p *Product) syncStock() {
	if !p.HasVariations {
		return
	}
	total := 0
	for _, v := range p.Variations {
		total += v.Stock
	}
	p.Stock = total
}
