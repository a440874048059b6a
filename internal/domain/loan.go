package domain

import (
	"time"

	"github.com/google/uuid"
)

// Loan is the join record between a user and a borrowed book.
// ReturnDate is nil while the loan is outstanding; once set it is never
// cleared again. User and Book references are immutable after creation.
type Loan struct {
	ID         int64 `json:"id" gorm:"primaryKey" db:"id"`
	UserID     int64 `json:"-" gorm:"not null" db:"user_id"`
	BookID     int64 `json:"-" gorm:"not null" db:"book_id"`
	User       User  `json:"user" gorm:"foreignKey:UserID"`
	Book       Book  `json:"book" gorm:"foreignKey:BookID"`
	LoanDate   Date  `json:"loanDate" gorm:"type:date;not null" db:"loan_date"`
	ReturnDate *Date `json:"returnDate" gorm:"type:date" db:"return_date"`
}

func (Loan) TableName() string {
	return "loans"
}

// Returned reports whether the loan has been closed.
func (l *Loan) Returned() bool {
	return l.ReturnDate != nil
}

// Loan lifecycle actions recorded in the audit trail.
const (
	LoanActionCreated  = "created"
	LoanActionReturned = "returned"
)

// LoanEvent is one audit record of the loan lifecycle,
// written by the worker from the message queue.
type LoanEvent struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LoanID     int64     `json:"loanId" db:"loan_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	BookID     int64     `json:"bookId" db:"book_id"`
	Action     string    `json:"action" db:"action"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

// LoanStats is the reporting read model behind GET /loans/stats.
type LoanStats struct {
	TotalLoans        int64 `json:"totalLoans" db:"total_loans"`
	ActiveLoans       int64 `json:"activeLoans" db:"active_loans"`
	ReturnedLoans     int64 `json:"returnedLoans" db:"returned_loans"`
	DistinctBorrowers int64 `json:"distinctBorrowers" db:"distinct_borrowers"`

	TopBorrowed []BookLoanCount `json:"topBorrowed" db:"-"`
}

// BookLoanCount counts outstanding loans per book.
type BookLoanCount struct {
	BookID      int64  `json:"bookId" db:"book_id"`
	Title       string `json:"title" db:"title"`
	ActiveLoans int64  `json:"activeLoans" db:"active_loans"`
}
