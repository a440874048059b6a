package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// LoanStorage implements ports.LoanStorage on top of GORM. The two
// lifecycle writes (CreateLoan, MarkReturned) each run inside a single
// transaction with write-time guards on the contended columns, so two
// concurrent borrows of the last copy cannot both commit.
type LoanStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLoanStorage(db *gorm.DB, logger *slog.Logger) *LoanStorage {
	return &LoanStorage{db: db, logger: logger}
}

// CreateLoan decrements the book's stock and inserts the loan as one unit.
// The decrement carries a "stock > 0" guard evaluated at write time; when
// it matches no rows the book ran out between check and commit and
// domain.ErrBookOutOfStock is returned with nothing persisted.
func (s *LoanStorage) CreateLoan(ctx context.Context, loan *domain.Loan) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Book{}).
			Where("id = ? AND stock > 0", loan.BookID).
			UpdateColumn("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return fmt.Errorf("decrement stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookOutOfStock
		}

		if err := tx.Omit("User", "Book").Create(loan).Error; err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		// Reload with the resolved user and decremented book for the
		// response body.
		if err := tx.Preload("User").Preload("Book").First(loan, loan.ID).Error; err != nil {
			return fmt.Errorf("reload loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("loan created", "loan_id", loan.ID, "user_id", loan.UserID, "book_id", loan.BookID)
	return nil
}

// MarkReturned sets the return date and increments the book's stock as one
// unit. The date write carries a "return_date IS NULL" guard, so a second
// return of the same loan matches no rows and increments nothing.
func (s *LoanStorage) MarkReturned(ctx context.Context, loanID int64, returnDate domain.Date) (*domain.Loan, error) {
	var loan domain.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Loan{}).
			Where("id = ? AND return_date IS NULL", loanID).
			UpdateColumn("return_date", returnDate)
		if res.Error != nil {
			return fmt.Errorf("set return date: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Loan{}).Where("id = ?", loanID).Count(&count).Error; err != nil {
				return fmt.Errorf("check loan exists: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("loan id %d: %w", loanID, domain.ErrLoanNotFound)
			}
			return domain.ErrLoanAlreadyReturned
		}

		if err := tx.First(&loan, loanID).Error; err != nil {
			return fmt.Errorf("load loan: %w", err)
		}

		res = tx.Model(&domain.Book{}).
			Where("id = ?", loan.BookID).
			UpdateColumn("stock", gorm.Expr("stock + 1"))
		if res.Error != nil {
			return fmt.Errorf("increment stock: %w", res.Error)
		}

		if err := tx.Preload("User").Preload("Book").First(&loan, loanID).Error; err != nil {
			return fmt.Errorf("reload loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("loan returned", "loan_id", loan.ID, "book_id", loan.BookID)
	return &loan, nil
}

func (s *LoanStorage) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	var loan domain.Loan
	err := s.db.WithContext(ctx).Preload("User").Preload("Book").First(&loan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loan id %d: %w", id, domain.ErrLoanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get loan by id: %w", err)
	}
	return &loan, nil
}

func (s *LoanStorage) List(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := s.db.WithContext(ctx).Preload("User").Preload("Book").Order("id").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

// ListActive returns loans that have not been returned yet.
func (s *LoanStorage) ListActive(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Book").
		Where("return_date IS NULL").
		Order("id").
		Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}
	return loans, nil
}

func (s *LoanStorage) ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Book").
		Where("user_id = ?", userID).
		Order("id").
		Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("list loans by user: %w", err)
	}
	return loans, nil
}

// Delete is the administrative removal of a loan record. It does not touch
// book stock.
func (s *LoanStorage) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Loan{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete loan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("loan id %d: %w", id, domain.ErrLoanNotFound)
	}
	s.logger.Info("loan deleted", "loan_id", id)
	return nil
}

// ExistsActive reports whether the user already holds an outstanding loan
// for this book.
func (s *LoanStorage) ExistsActive(ctx context.Context, userID, bookID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Loan{}).
		Where("user_id = ? AND book_id = ? AND return_date IS NULL", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check active loan: %w", err)
	}
	return count > 0, nil
}
