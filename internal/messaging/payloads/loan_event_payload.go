package payloads

import "time"

// LoanEventPayload carries one loan lifecycle event through RabbitMQ,
// from the HTTP layer to the audit worker.
type LoanEventPayload struct {
	LoanID     int64     `json:"loan_id"`
	UserID     int64     `json:"user_id"`
	BookID     int64     `json:"book_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
