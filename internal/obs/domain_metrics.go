package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout outcomes, split by payment kind.
	CheckoutTotal *prometheus.CounterVec
	// DebtPaymentTotal counts debt payment application outcomes.
	DebtPaymentTotal *prometheus.CounterVec
	// DisbursementTotal counts recorded disbursements.
	DisbursementTotal prometheus.Counter
	// OutstandingDebt tracks the current total pending debt in minor units.
	OutstandingDebt prometheus.Gauge
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout outcomes by result and payment kind.",
		}, []string{"result", "kind"})
		DebtPaymentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debt_payment_total",
			Help:      "Count of debt payment applications by outcome.",
		}, []string{"result"})
		DisbursementTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disbursement_total",
			Help:      "Total number of recorded disbursements.",
		})
		OutstandingDebt = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_debt",
			Help:      "Current total outstanding customer debt in minor units.",
		})

		mustRegisterCollector(reg, CheckoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutTotal = v
			}
		})
		mustRegisterCollector(reg, DebtPaymentTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DebtPaymentTotal = v
			}
		})
		mustRegisterCollector(reg, DisbursementTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				DisbursementTotal = v
			}
		})
		mustRegisterCollector(reg, OutstandingDebt, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				OutstandingDebt = v
			}
		})
	})
}
