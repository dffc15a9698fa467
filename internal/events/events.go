package events

// Receipt event types stored in the outbox for the notify worker.
const (
	EventPaymentReceived = "payment_received"
)
