package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// AuditStorage persists the loan lifecycle audit trail written by the
// worker. Raw SQL over sqlx; the table is append-only.
type AuditStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewAuditStorage(db *sqlx.DB, logger *slog.Logger) *AuditStorage {
	return &AuditStorage{db: db, logger: logger}
}

// RecordLoanEvent appends one lifecycle event.
func (s *AuditStorage) RecordLoanEvent(ctx context.Context, event *domain.LoanEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO loan_events (id, loan_id, user_id, book_id, action, occurred_at)
        VALUES (:id, :loan_id, :user_id, :book_id, :action, :occurred_at)
    `, event)
	if err != nil {
		s.logger.Error("failed to insert loan event", "loan_id", event.LoanID, "error", err)
		return fmt.Errorf("insert loan event: %w", err)
	}

	s.logger.Info("loan event recorded",
		"event_id", event.ID,
		"loan_id", event.LoanID,
		"action", event.Action,
	)
	return nil
}

// ListLoanEvents returns the audit trail of one loan, oldest first.
func (s *AuditStorage) ListLoanEvents(ctx context.Context, loanID int64) ([]domain.LoanEvent, error) {
	var events []domain.LoanEvent
	err := s.db.SelectContext(ctx, &events, `
        SELECT id, loan_id, user_id, book_id, action, occurred_at
        FROM loan_events
        WHERE loan_id = $1
        ORDER BY occurred_at, id
    `, loanID)
	if err != nil {
		return nil, fmt.Errorf("select loan events: %w", err)
	}
	return events, nil
}
