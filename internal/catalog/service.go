package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/store"
)

// ErrNotFound indicates the requested product could not be located.
var ErrNotFound = errors.New("product not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Service encapsulates catalog management over the KV store.
type Service struct {
	DB store.KV
}

// Input carries the editable fields of a product.
type Input struct {
	Name          string         `json:"name"`
	Price         pricing.Money  `json:"price"`
	CostPrice     pricing.Money  `json:"costPrice"`
	PriceTiers    []pricing.Tier `json:"priceTiers"`
	CostTiers     []pricing.Tier `json:"costTiers"`
	Stock         int            `json:"stock"`
	HasVariations bool           `json:"hasVariations"`
	Variations    []Variation    `json:"variations"`
	Barcode       string         `json:"barcode"`
}

// List returns every product in catalog order.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := store.Load(ctx, s.DB, store.KeyProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// FindByBarcode resolves a scanned barcode to a product.
func (s *Service) FindByBarcode(ctx context.Context, code string) (Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Product{}, fmt.Errorf("barcode required: %w", ErrInvalidInput)
	}
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.Barcode == code {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Create appends a new product to the catalog.
func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Product{}, fmt.Errorf("name required: %w", ErrInvalidInput)
	}
	product := Product{ID: uuid.NewString()}
	applyInput(&product, in)

	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	products = append(products, product)
	if err := store.Save(ctx, s.DB, store.KeyProducts, products); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Update replaces the editable fields of an existing product.
func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Product{}, fmt.Errorf("name required: %w", ErrInvalidInput)
	}
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		applyInput(&products[i], in)
		if err := store.Save(ctx, s.DB, store.KeyProducts, products); err != nil {
			return Product{}, err
		}
		return products[i], nil
	}
	return Product{}, ErrNotFound
}

// AdjustStock changes stock by delta for a product or one of its variations.
// Stock is allowed to go negative: a sale is never blocked on stock, oversold
// quantities surface through the low-stock listing instead.
func (s *Service) AdjustStock(ctx context.Context, id, variationLabel string, delta int) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		adjustProductStock(&products[i], variationLabel, delta)
		if err := store.Save(ctx, s.DB, store.KeyProducts, products); err != nil {
			return Product{}, err
		}
		return products[i], nil
	}
	return Product{}, ErrNotFound
}

// LowStock lists products whose aggregate stock is at or below threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]Product, 0)
	for _, p := range products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func applyInput(p *Product, in Input) {
	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price
	p.CostPrice = in.CostPrice
	p.PriceTiers = in.PriceTiers
	p.CostTiers = in.CostTiers
	p.Stock = in.Stock
	p.HasVariations = in.HasVariations
	p.Barcode = strings.TrimSpace(in.Barcode)
	if in.HasVariations {
		variations := make([]Variation, 0, len(in.Variations))
		for _, v := range in.Variations {
			if v.ID == "" {
				v.ID = uuid.NewString()
			}
			variations = append(variations, v)
		}
		p.Variations = variations
	} else {
		p.Variations = nil
	}
	p.syncStock()
}

func adjustProductStock(p *Product, variationLabel string, delta int) {
	if p.HasVariations && variationLabel != "" {
		for j := range p.Variations {
			if p.Variations[j].Label == variationLabel {
				p.Variations[j].Stock += delta
				break
			}
		}
		p.syncStock()
		return
	}
	p.Stock += delta
}
