package ports

import (
	"context"

	"github.com/BiblioGo/LibraryApp/internal/messaging/payloads"
)

// LoanEventPublisher publishes loan lifecycle events to the queue.
// Used by the HTTP layer after a successful create or return.
type LoanEventPublisher interface {
	PublishLoanEvent(ctx context.Context, payload payloads.LoanEventPayload) error
}

// LoanEventConsumer consumes loan lifecycle events.
// Used by the worker mode to build the audit trail.
type LoanEventConsumer interface {
	StartConsumingLoanEvents(ctx context.Context, handler func(context.Context, payloads.LoanEventPayload) error) error
}
