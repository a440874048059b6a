package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// ReportStorage serves the loan statistics read model with raw SQL over
// sqlx, bypassing the ORM for the aggregate queries.
type ReportStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewReportStorage(db *sqlx.DB, logger *slog.Logger) *ReportStorage {
	return &ReportStorage{db: db, logger: logger}
}

// LoanStats aggregates loan counters and the most-borrowed books.
func (s *ReportStorage) LoanStats(ctx context.Context) (*domain.LoanStats, error) {
	start := time.Now()

	var stats domain.LoanStats
	err := s.db.GetContext(ctx, &stats, `
        SELECT COUNT(*)                                                    AS total_loans,
               COUNT(*) FILTER (WHERE return_date IS NULL)                 AS active_loans,
               COUNT(*) FILTER (WHERE return_date IS NOT NULL)             AS returned_loans,
               COUNT(DISTINCT user_id) FILTER (WHERE return_date IS NULL)  AS distinct_borrowers
        FROM loans
    `)
	if err != nil {
		s.logger.Error("failed to load loan counters", "error", err)
		return nil, fmt.Errorf("select loan counters: %w", err)
	}

	err = s.db.SelectContext(ctx, &stats.TopBorrowed, `
        SELECT b.id      AS book_id,
               b.title   AS title,
               COUNT(*)  AS active_loans
        FROM loans l
        JOIN books b ON b.id = l.book_id
        WHERE l.return_date IS NULL
        GROUP BY b.id, b.title
        ORDER BY active_loans DESC, b.id
        LIMIT 5
    `)
	if err != nil {
		s.logger.Error("failed to load top borrowed books", "error", err)
		return nil, fmt.Errorf("select top borrowed books: %w", err)
	}

	s.logger.Info("loan stats computed",
		"active_loans", stats.ActiveLoans,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &stats, nil
}
