package events

// Topics emitted by the domain services.
const (
	TopicOrderCreated         = "order.created"
	TopicDebtCreated          = "debt.created"
	TopicDebtPaymentApplied   = "debt.payment_applied"
	TopicDebtSettled          = "debt.settled"
	TopicDisbursementRecorded = "disbursement.recorded"
)
