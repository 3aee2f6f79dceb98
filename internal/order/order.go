package order

import (
	"context"
	"errors"
	"time"

	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/store"
)

// ErrNotFound indicates the requested order could not be located.
var ErrNotFound = errors.New("order not found")

// Item is an immutable historical line snapshot. Name is denormalized at
// order time; Price and CostPrice hold the computed tiered total for the
// whole line, not unit prices.
type Item struct {
	ProductID      string        `json:"productId"`
	Name           string        `json:"name"`
	Price          pricing.Money `json:"price"`
	CostPrice      pricing.Money `json:"costPrice"`
	Quantity       int           `json:"quantity"`
	VariationLabel string        `json:"variationLabel,omitempty"`
}

// Order is created exactly once at checkout and never mutated thereafter.
// Timestamp is epoch milliseconds.
type Order struct {
	ID            string        `json:"id"`
	ShopName      string        `json:"shopName"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Items         []Item        `json:"items"`
	Total         pricing.Money `json:"total"`
	Timestamp     int64         `json:"timestamp"`
	IsDebt        bool          `json:"isDebt"`
}

// Time returns the creation instant.
func (o Order) Time() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// Service exposes the persisted order history.
type Service struct {
	DB store.KV
}

// List returns all orders, newest first as persisted.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := store.Load(ctx, s.DB, store.KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns the order with the given id.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// Append prepends the order so the collection stays newest first.
func (s *Service) Append(ctx context.Context, o Order) error {
	orders, err := s.List(ctx)
	if err != nil {
		return err
	}
	orders = append([]Order{o}, orders...)
	return store.Save(ctx, s.DB, store.KeyOrders, orders)
}
