package ports

import (
	"context"
	"io"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// UserStorage defines persistence operations for users.
type UserStorage interface {
	Save(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// BookStorage defines persistence operations for the catalog.
type BookStorage interface {
	Save(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Case-insensitive substring searches.
	SearchByTitle(ctx context.Context, title string) ([]domain.Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]domain.Book, error)
}

// LoanStorage defines persistence operations for loans. CreateLoan and
// MarkReturned each run as a single transaction so stock movement and the
// loan write commit or fail together.
type LoanStorage interface {
	// CreateLoan decrements the book's stock with a write-time
	// "stock > 0" guard and inserts the loan. Returns
	// domain.ErrBookOutOfStock when no copy is left at commit time.
	CreateLoan(ctx context.Context, loan *domain.Loan) error

	// MarkReturned sets the return date with a write-time
	// "return_date IS NULL" guard and increments the book's stock.
	// Returns domain.ErrLoanAlreadyReturned when the loan is closed.
	MarkReturned(ctx context.Context, loanID int64, returnDate domain.Date) (*domain.Loan, error)

	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	List(ctx context.Context) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error)
	Delete(ctx context.Context, id int64) error

	// ExistsActive is the duplicate-borrow predicate: an outstanding
	// loan for this exact (user, book) pair.
	ExistsActive(ctx context.Context, userID, bookID int64) (bool, error)
}

// ReportStorage serves the loan statistics read model.
type ReportStorage interface {
	LoanStats(ctx context.Context) (*domain.LoanStats, error)
}

// AuditStorage persists the loan lifecycle audit trail.
type AuditStorage interface {
	RecordLoanEvent(ctx context.Context, event *domain.LoanEvent) error
	ListLoanEvents(ctx context.Context, loanID int64) ([]domain.LoanEvent, error)
}

// FileStorage abstracts the object store holding book cover images
// (AWS S3 / MinIO).
type FileStorage interface {
	// UploadFile stores the object under key and returns its public URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
