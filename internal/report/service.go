package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/store"
)

// ErrInvalidAmount is returned when a disbursement amount is not strictly positive.
var ErrInvalidAmount = errors.New("invalid amount")

// Disbursement is one recorded cash outflow. Append-only, never mutated.
type Disbursement struct {
	ID        string        `json:"id"`
	Amount    pricing.Money `json:"amount"`
	Comment   string        `json:"comment"`
	Timestamp int64         `json:"timestamp"`
}

// Service builds reports over the persisted history and records disbursements.
type Service struct {
	DB     store.KV
	Loc    *time.Location
	Now    func() time.Time
	Events *events.Bus
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Build loads the full history and aggregates it over the window. The
// service's location and clock are applied to the window so every report
// uses the shop's calendar.
func (s *Service) Build(ctx context.Context, w Window) (Report, error) {
	var (
		orders        []order.Order
		debts         []debt.Debt
		disbursements []Disbursement
	)
	if err := store.Load(ctx, s.DB, store.KeyOrders, &orders); err != nil {
		return Report{}, err
	}
	if err := store.Load(ctx, s.DB, store.KeyDebts, &debts); err != nil {
		return Report{}, err
	}
	if err := store.Load(ctx, s.DB, store.KeyDisbursements, &disbursements); err != nil {
		return Report{}, err
	}
	if w.Loc == nil {
		w.Loc = s.Loc
	}
	if w.Now == nil {
		w.Now = s.Now
	}
	return Aggregate(orders, debts, disbursements, w), nil
}

// ListDisbursements returns all disbursements, newest first as persisted.
func (s *Service) ListDisbursements(ctx context.Context) ([]Disbursement, error) {
	var disbursements []Disbursement
	if err := store.Load(ctx, s.DB, store.KeyDisbursements, &disbursements); err != nil {
		return nil, err
	}
	return disbursements, nil
}

// RecordDisbursement appends a cash outflow. The amount must be strictly
// positive; nothing is written otherwise.
func (s *Service) RecordDisbursement(ctx context.Context, amount pricing.Money, comment string) (Disbursement, error) {
	if amount <= 0 {
		return Disbursement{}, fmt.Errorf("disbursement must be positive: %w", ErrInvalidAmount)
	}
	d := Disbursement{
		ID:        uuid.NewString(),
		Amount:    amount,
		Comment:   strings.TrimSpace(comment),
		Timestamp: s.now().UnixMilli(),
	}
	disbursements, err := s.ListDisbursements(ctx)
	if err != nil {
		return Disbursement{}, err
	}
	disbursements = append([]Disbursement{d}, disbursements...)
	if err := store.Save(ctx, s.DB, store.KeyDisbursements, disbursements); err != nil {
		return Disbursement{}, err
	}
	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicDisbursementRecorded, d.ID, map[string]any{
			"disbursementId": d.ID,
			"amount":         d.Amount,
		})
	}
	return d, nil
}
