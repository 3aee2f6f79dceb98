// Package customer derives the unique-customer view used for checkout
// autocomplete. Customers are not a stored entity: identity is keyed by
// phone number across persisted orders and debts.
package customer

import (
	"context"

	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/store"
)

// Customer is one derived identity.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Unique projects the distinct customers seen in debts and orders, keyed by
// phone. Debts are applied first, then orders, so the name attached to the
// most recent order wins over an older debt record for the same phone.
func Unique(orders []order.Order, debts []debt.Debt) []Customer {
	index := make(map[string]int)
	out := make([]Customer, 0)
	upsert := func(name, phone string) {
		if phone == "" {
			return
		}
		if i, ok := index[phone]; ok {
			out[i].Name = name
			return
		}
		index[phone] = len(out)
		out = append(out, Customer{Name: name, Phone: phone})
	}
	for _, d := range debts {
		upsert(d.CustomerName, d.CustomerPhone)
	}
	for _, o := range orders {
		upsert(o.CustomerName, o.CustomerPhone)
	}
	return out
}

// Service loads the history and applies the projection.
type Service struct {
	DB store.KV
}

// List returns the derived customers.
func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var (
		orders []order.Order
		debts  []debt.Debt
	)
	if err := store.Load(ctx, s.DB, store.KeyOrders, &orders); err != nil {
		return nil, err
	}
	if err := store.Load(ctx, s.DB, store.KeyDebts, &debts); err != nil {
		return nil, err
	}
	return Unique(orders, debts), nil
}
