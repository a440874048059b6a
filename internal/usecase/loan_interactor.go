package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BiblioGo/LibraryApp/internal/core/ports"
	"github.com/BiblioGo/LibraryApp/internal/domain"
)

type loanUseCase struct {
	loanStorage   ports.LoanStorage
	userStorage   ports.UserStorage
	bookStorage   ports.BookStorage
	reportStorage ports.ReportStorage
	auditStorage  ports.AuditStorage
	logger        *slog.Logger
}

func NewLoanUseCase(
	loanStorage ports.LoanStorage,
	userStorage ports.UserStorage,
	bookStorage ports.BookStorage,
	reportStorage ports.ReportStorage,
	auditStorage ports.AuditStorage,
	logger *slog.Logger,
) LoanUseCase {
	return &loanUseCase{
		loanStorage:   loanStorage,
		userStorage:   userStorage,
		bookStorage:   bookStorage,
		reportStorage: reportStorage,
		auditStorage:  auditStorage,
		logger:        logger,
	}
}

func (uc *loanUseCase) CreateLoan(ctx context.Context, userID, bookID int64) (*domain.Loan, error) {
	// Existence checks before state checks: "missing" and "busy" must
	// classify differently at the boundary.
	user, err := uc.userStorage.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	book, err := uc.bookStorage.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !book.Available() {
		return nil, fmt.Errorf("book id %d: %w", bookID, domain.ErrBookOutOfStock)
	}

	// Per (user, book) pair only: the same book may be lent to other
	// users at the same time while stock allows.
	alreadyBorrowed, err := uc.loanStorage.ExistsActive(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("usecase: check active loan: %w", err)
	}
	if alreadyBorrowed {
		return nil, fmt.Errorf("user %d, book %d: %w", userID, bookID, domain.ErrBookAlreadyBorrowed)
	}

	loan := &domain.Loan{
		UserID:   user.ID,
		BookID:   book.ID,
		LoanDate: domain.Today(),
	}

	// The decrement re-checks stock at write time, so a concurrent
	// borrow of the last copy surfaces here as ErrBookOutOfStock
	// instead of driving the count negative.
	if err := uc.loanStorage.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}

	uc.logger.Info("loan created",
		"loan_id", loan.ID,
		"user_id", userID,
		"book_id", bookID,
		"stock_left", loan.Book.Stock,
	)
	return loan, nil
}

func (uc *loanUseCase) ReturnLoan(ctx context.Context, loanID int64) (*domain.Loan, error) {
	loan, err := uc.loanStorage.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Returned() {
		return nil, fmt.Errorf("loan id %d: %w", loanID, domain.ErrLoanAlreadyReturned)
	}

	returned, err := uc.loanStorage.MarkReturned(ctx, loanID, domain.Today())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("loan returned",
		"loan_id", loanID,
		"book_id", returned.BookID,
		"stock_now", returned.Book.Stock,
	)
	return returned, nil
}

func (uc *loanUseCase) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	return uc.loanStorage.GetByID(ctx, id)
}

func (uc *loanUseCase) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return uc.loanStorage.List(ctx)
}

func (uc *loanUseCase) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return uc.loanStorage.ListActive(ctx)
}

func (uc *loanUseCase) DeleteLoan(ctx context.Context, id int64) error {
	return uc.loanStorage.Delete(ctx, id)
}

func (uc *loanUseCase) LoanStats(ctx context.Context) (*domain.LoanStats, error) {
	return uc.reportStorage.LoanStats(ctx)
}

func (uc *loanUseCase) ListLoanEvents(ctx context.Context, loanID int64) ([]domain.LoanEvent, error) {
	exists, err := uc.loanStorage.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return uc.auditStorage.ListLoanEvents(ctx, exists.ID)
}
