package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/cart"
	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Input is one checkout request: the cart entries to freeze plus the
// customer identity and the payment collected up front. When IsDebt is
// false the full total is considered collected.
type Input struct {
	Items         []cart.Entry `json:"items" validate:"required,min=1,dive"`
	CustomerName  string       `json:"customerName" validate:"required"`
	CustomerPhone string       `json:"customerPhone" validate:"required"`
	IsDebt        bool         `json:"isDebt"`
	AmountPaid    pricing.Money `json:"amountPaid" validate:"gte=0"`
}

// Output carries the frozen order and, when payment fell short, the opened debt.
type Output struct {
	Order order.Order `json:"order"`
	Debt  *debt.Debt  `json:"debt,omitempty"`
}

// Service orchestrates a checkout: price the cart, persist the order, open a
// debt on underpayment, and decrement stock. Stock is never a gate; an
// oversold product simply goes negative.
type Service struct {
	Catalog  *catalog.Service
	Orders   *order.Service
	Debts    *debt.Service
	ShopName string
	Now      func() time.Time
	Events   *events.Bus
	Logger   zerolog.Logger
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create performs the checkout.
func (s *Service) Create(ctx context.Context, in Input) (Output, error) {
	if s == nil || s.Catalog == nil || s.Orders == nil || s.Debts == nil {
		return Output{}, errors.New("checkout service not configured")
	}
	if len(in.Items) == 0 {
		return Output{}, fmt.Errorf("cart is empty: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerPhone) == "" {
		return Output{}, fmt.Errorf("customer name and phone are required: %w", ErrInvalidInput)
	}
	if in.AmountPaid < 0 {
		return Output{}, fmt.Errorf("amount paid negative: %w", ErrInvalidInput)
	}

	products, err := s.Catalog.List(ctx)
	if err != nil {
		return Output{}, err
	}
	lines, total, err := cart.Price(in.Items, products)
	if err != nil {
		return Output{}, err
	}

	paid := total
	if in.IsDebt {
		paid = in.AmountPaid
	}
	underpaid := paid < total

	now := s.now()
	ord := order.Order{
		ID:            uuid.NewString(),
		ShopName:      s.ShopName,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Items:         toOrderItems(lines),
		Total:         total,
		Timestamp:     now.UnixMilli(),
		IsDebt:        underpaid,
	}
	if err := s.Orders.Append(ctx, ord); err != nil {
		return Output{}, err
	}

	out := Output{Order: ord}
	if underpaid {
		d, err := s.Debts.CreateFromUnderpayment(ctx, ord, paid)
		if err != nil {
			return Output{}, err
		}
		out.Debt = &d
	}

	for _, e := range in.Items {
		if _, err := s.Catalog.AdjustStock(ctx, e.ProductID, e.VariationLabel, -e.Quantity); err != nil {
			// The order is already persisted; log and keep going so a stock
			// bookkeeping failure never voids a completed sale.
			s.Logger.Error().Err(err).Str("product_id", e.ProductID).Msg("adjust stock after checkout")
		}
	}

	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicOrderCreated, ord.ID, map[string]any{
			"orderId": ord.ID,
			"total":   ord.Total,
			"isDebt":  ord.IsDebt,
		})
	}
	return out, nil
}

func toOrderItems(lines []cart.Line) []order.Item {
	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Price:          l.TotalPrice,
			CostPrice:      l.TotalCost,
			Quantity:       l.Quantity,
			VariationLabel: l.VariationLabel,
		})
	}
	return items
}
