// Package report computes the time-windowed financial summary: revenue,
// cost, margin, outstanding debt, expenses, net profit, and cash on hand.
package report

import (
	"time"

	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// Mode selects how a window matches record timestamps.
type Mode string

const (
	ModeToday Mode = "today"
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Window selects records by calendar date, month, or year in a location,
// never by elapsed time. Date carries the selector: its day for ModeDay, its
// month for ModeMonth, its year for ModeYear; ModeToday uses Now instead.
type Window struct {
	Mode Mode
	Date time.Time
	Loc  *time.Location
	Now  func() time.Time
}

func (w Window) loc() *time.Location {
	if w.Loc != nil {
		return w.Loc
	}
	return time.Local
}

func (w Window) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// Contains reports whether the epoch-millisecond timestamp falls in the
// window. Record timestamps are read in the window's location; the Date
// selector is taken at face value (its calendar fields, not an instant).
func (w Window) Contains(tsMillis int64) bool {
	t := time.UnixMilli(tsMillis).In(w.loc())
	ref := w.Date
	switch w.Mode {
	case ModeToday:
		ref = w.now().In(w.loc())
		fallthrough
	case ModeDay:
		ty, tm, td := t.Date()
		ry, rm, rd := ref.Date()
		return ty == ry && tm == rm && td == rd
	case ModeMonth:
		return t.Year() == ref.Year() && t.Month() == ref.Month()
	case ModeYear:
		return t.Year() == ref.Year()
	default:
		return true
	}
}

// Report is the aggregated summary for one window.
type Report struct {
	GrossRevenue  pricing.Money `json:"grossRevenue"`
	TotalCost     pricing.Money `json:"totalCost"`
	GrossMargin   pricing.Money `json:"grossMargin"`
	PendingDebt   pricing.Money `json:"pendingDebt"`
	TotalExpenses pricing.Money `json:"totalExpenses"`
	NetProfit     pricing.Money `json:"netProfit"`
	CashOnHand    pricing.Money `json:"cashOnHand"`
}

// Aggregate computes the report over the full history. Read-only and
// idempotent; empty windows yield an all-zero report.
//
// Debts are selected into the window by creation timestamp, but their
// outstanding balance reflects their current status: a debt created in the
// window and paid off afterwards contributes nothing. This mirrors how the
// till actually reconciles (money later collected is no longer missing).
func Aggregate(orders []order.Order, debts []debt.Debt, disbursements []Disbursement, w Window) Report {
	var r Report
	for _, o := range orders {
		if !w.Contains(o.Timestamp) {
			continue
		}
		r.GrossRevenue += o.Total
		for _, item := range o.Items {
			r.TotalCost += item.CostPrice
		}
	}
	for _, d := range debts {
		if !w.Contains(d.Timestamp) {
			continue
		}
		if d.Status == debt.StatusPending {
			r.PendingDebt += d.Outstanding()
		}
	}
	for _, d := range disbursements {
		if !w.Contains(d.Timestamp) {
			continue
		}
		r.TotalExpenses += d.Amount
	}
	r.GrossMargin = r.GrossRevenue - r.TotalCost
	r.NetProfit = r.GrossMargin - r.TotalExpenses
	r.CashOnHand = r.GrossRevenue - r.PendingDebt - r.TotalExpenses
	return r
}
