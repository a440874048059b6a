package usecase

import (
	"context"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// LoanUseCase is the sole authority over the loan lifecycle. It guarantees
// that after every successful call the stock invariant holds: a book's
// stock decreases by exactly one per loan created and increases by exactly
// one per return, and never drops below zero.
type LoanUseCase interface {
	// CreateLoan lends a book to a user. Preconditions, checked in
	// order so the caller can tell "missing" from "busy":
	//   1. the user exists          -> domain.ErrUserNotFound
	//   2. the book exists          -> domain.ErrBookNotFound
	//   3. stock > 0                -> domain.ErrBookOutOfStock
	//   4. no outstanding loan for  -> domain.ErrBookAlreadyBorrowed
	//      this (user, book) pair
	// On success the stock decrement and the loan insert commit as one
	// transaction; the loan date is today and the return date is null.
	CreateLoan(ctx context.Context, userID, bookID int64) (*domain.Loan, error)

	// ReturnLoan closes a loan. The loan must exist
	// (domain.ErrLoanNotFound) and must not already be returned
	// (domain.ErrLoanAlreadyReturned). On success the stock increment
	// and the return-date write commit as one transaction. A return
	// date, once set, is never cleared or changed again.
	ReturnLoan(ctx context.Context, loanID int64) (*domain.Loan, error)

	GetLoan(ctx context.Context, id int64) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]domain.Loan, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)

	// DeleteLoan is an administrative removal of the record. It has no
	// effect on book stock, even for outstanding loans.
	DeleteLoan(ctx context.Context, id int64) error

	LoanStats(ctx context.Context) (*domain.LoanStats, error)
	ListLoanEvents(ctx context.Context, loanID int64) ([]domain.LoanEvent, error)
}
