package debt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/store"
)

// ErrNotFound indicates the requested debt could not be located.
var ErrNotFound = errors.New("debt not found")

// ErrInvalidAmount is returned when a payment amount is not strictly positive.
var ErrInvalidAmount = errors.New("invalid amount")

// Status is the debt lifecycle state. The only transition is pending to paid.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Debt tracks a credit sale until fully paid. TotalAmount is fixed at
// creation; TotalPaid is monotonically non-decreasing and never exceeds it.
type Debt struct {
	ID              string        `json:"id"`
	OrderID         string        `json:"orderId,omitempty"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	TotalAmount     pricing.Money `json:"totalAmount"`
	TotalPaid       pricing.Money `json:"totalPaid"`
	Status          Status        `json:"status"`
	Timestamp       int64         `json:"timestamp"`
	LastPaymentDate int64         `json:"lastPaymentDate,omitempty"`
}

// Outstanding is the amount still owed.
func (d Debt) Outstanding() pricing.Money {
	return d.TotalAmount - d.TotalPaid
}

// Progress is the paid ratio in [0, 1]. A zero-amount debt counts as settled.
func (d Debt) Progress() float64 {
	if d.TotalAmount == 0 {
		return 1
	}
	return float64(d.TotalPaid) / float64(d.TotalAmount)
}

// Service owns the debt ledger. It is the only mutator of persisted debts.
type Service struct {
	DB     store.KV
	Now    func() time.Time
	Events *events.Bus
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns all debts, newest first as persisted.
func (s *Service) List(ctx context.Context) ([]Debt, error) {
	var debts []Debt
	if err := store.Load(ctx, s.DB, store.KeyDebts, &debts); err != nil {
		return nil, err
	}
	return debts, nil
}

// Get returns the debt with the given id.
func (s *Service) Get(ctx context.Context, id string) (Debt, error) {
	debts, err := s.List(ctx)
	if err != nil {
		return Debt{}, err
	}
	for _, d := range debts {
		if d.ID == id {
			return d, nil
		}
	}
	return Debt{}, ErrNotFound
}

// Search filters debts by customer name (case-insensitive substring) or a
// phone fragment.
func (s *Service) Search(ctx context.Context, query string) ([]Debt, error) {
	debts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return debts, nil
	}
	lowered := strings.ToLower(query)
	matched := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if strings.Contains(strings.ToLower(d.CustomerName), lowered) || strings.Contains(d.CustomerPhone, query) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// TotalOutstanding sums the outstanding balance of all pending debts.
func (s *Service) TotalOutstanding(ctx context.Context) (pricing.Money, error) {
	debts, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	var total pricing.Money
	for _, d := range debts {
		if d.Status == StatusPending {
			total += d.Outstanding()
		}
	}
	return total, nil
}

// CreateFromUnderpayment opens a debt for an order whose collected payment
// fell short of the total. Callers invoke this only when paid < ord.Total.
// LastPaymentDate is set only when something was actually collected.
func (s *Service) CreateFromUnderpayment(ctx context.Context, ord order.Order, paid pricing.Money) (Debt, error) {
	if paid < 0 {
		return Debt{}, fmt.Errorf("paid amount negative: %w", ErrInvalidAmount)
	}
	now := s.now()
	d := Debt{
		ID:            uuid.NewString(),
		OrderID:       ord.ID,
		CustomerName:  ord.CustomerName,
		CustomerPhone: ord.CustomerPhone,
		TotalAmount:   ord.Total,
		TotalPaid:     paid,
		Status:        StatusPending,
		Timestamp:     now.UnixMilli(),
	}
	if paid > 0 {
		d.LastPaymentDate = now.UnixMilli()
	}
	debts, err := s.List(ctx)
	if err != nil {
		return Debt{}, err
	}
	debts = append([]Debt{d}, debts...)
	if err := store.Save(ctx, s.DB, store.KeyDebts, debts); err != nil {
		return Debt{}, err
	}
	s.emit(ctx, events.TopicDebtCreated, d)
	return d, nil
}

// ApplyPayment adds amount to the debt's paid total. Overpayment is silently
// capped at TotalAmount, never producing a credit. The status flips to paid
// exactly when the capped total reaches TotalAmount, and LastPaymentDate is
// refreshed on every successful application.
func (s *Service) ApplyPayment(ctx context.Context, id string, amount pricing.Money) (Debt, error) {
	if amount <= 0 {
		return Debt{}, fmt.Errorf("payment must be positive: %w", ErrInvalidAmount)
	}
	debts, err := s.List(ctx)
	if err != nil {
		return Debt{}, err
	}
	for i := range debts {
		if debts[i].ID != id {
			continue
		}
		newPaid := debts[i].TotalPaid + amount
		if newPaid > debts[i].TotalAmount {
			newPaid = debts[i].TotalAmount
		}
		debts[i].TotalPaid = newPaid
		if newPaid >= debts[i].TotalAmount {
			debts[i].Status = StatusPaid
		} else {
			debts[i].Status = StatusPending
		}
		debts[i].LastPaymentDate = s.now().UnixMilli()
		if err := store.Save(ctx, s.DB, store.KeyDebts, debts); err != nil {
			return Debt{}, err
		}
		s.emit(ctx, events.TopicDebtPaymentApplied, debts[i])
		if debts[i].Status == StatusPaid {
			s.emit(ctx, events.TopicDebtSettled, debts[i])
		}
		return debts[i], nil
	}
	return Debt{}, ErrNotFound
}

func (s *Service) emit(ctx context.Context, topic string, d Debt) {
	if s.Events == nil {
		return
	}
	_, _ = s.Events.Emit(ctx, topic, d.ID, map[string]any{
		"debtId":      d.ID,
		"orderId":     d.OrderID,
		"totalAmount": d.TotalAmount,
		"totalPaid":   d.TotalPaid,
		"status":      d.Status,
	})
}
