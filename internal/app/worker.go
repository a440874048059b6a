package app

import (
	"context"
	"fmt"

	"github.com/BiblioGo/LibraryApp/internal/domain"
	"github.com/BiblioGo/LibraryApp/internal/messaging/payloads"
)

// runWorker consumes loan lifecycle events from the queue and appends
// them to the audit trail. It blocks until the context is canceled.
func (a *App) runWorker(ctx context.Context) error {
	a.logger.Info("audit worker started, waiting for loan events")

	messageHandler := func(ctx context.Context, payload payloads.LoanEventPayload) error {
		event := &domain.LoanEvent{
			LoanID:     payload.LoanID,
			UserID:     payload.UserID,
			BookID:     payload.BookID,
			Action:     payload.Action,
			OccurredAt: payload.OccurredAt,
		}
		if err := a.auditStorage.RecordLoanEvent(ctx, event); err != nil {
			return fmt.Errorf("record loan event: %w", err)
		}
		return nil
	}

	if err := a.loanEventConsumer.StartConsumingLoanEvents(ctx, messageHandler); err != nil {
		return fmt.Errorf("start consuming loan events: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("audit worker stopping")
	return nil
}
