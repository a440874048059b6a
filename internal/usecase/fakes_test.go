package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// In-memory fakes of the storage ports. They reproduce the write-time
// guards of the postgres implementations (stock > 0 on borrow,
// return_date IS NULL on return) so the interactor tests exercise the
// same failure paths.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserStorage struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[int64]*domain.User), nextID: 1}
}

func (s *fakeUserStorage) Save(_ context.Context, user *domain.User) error {
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStorage) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user id %d: %w", id, domain.ErrUserNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStorage) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user id %d: %w", id, domain.ErrUserNotFound)
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStorage) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s *fakeUserStorage) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("email %s: %w", email, domain.ErrUserNotFound)
}

func (s *fakeUserStorage) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookStorage struct {
	books  map[int64]*domain.Book
	nextID int64
}

func newFakeBookStorage() *fakeBookStorage {
	return &fakeBookStorage{books: make(map[int64]*domain.Book), nextID: 1}
}

func (s *fakeBookStorage) Save(_ context.Context, book *domain.Book) error {
	if book.ID == 0 {
		book.ID = s.nextID
		s.nextID++
	}
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *fakeBookStorage) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, fmt.Errorf("book id %d: %w", id, domain.ErrBookNotFound)
	}
	copied := *book
	return &copied, nil
}

func (s *fakeBookStorage) List(_ context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBookStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.books[id]; !ok {
		return fmt.Errorf("book id %d: %w", id, domain.ErrBookNotFound)
	}
	delete(s.books, id)
	return nil
}

func (s *fakeBookStorage) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := s.books[id]
	return ok, nil
}

func (s *fakeBookStorage) SearchByTitle(_ context.Context, title string) ([]domain.Book, error) {
	var out []domain.Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(title)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookStorage) SearchByAuthor(_ context.Context, author string) ([]domain.Book, error) {
	var out []domain.Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Author), strings.ToLower(author)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeLoanStorage struct {
	loans  map[int64]*domain.Loan
	nextID int64

	users *fakeUserStorage
	books *fakeBookStorage
}

func newFakeLoanStorage(users *fakeUserStorage, books *fakeBookStorage) *fakeLoanStorage {
	return &fakeLoanStorage{
		loans:  make(map[int64]*domain.Loan),
		nextID: 1,
		users:  users,
		books:  books,
	}
}

func (s *fakeLoanStorage) CreateLoan(_ context.Context, loan *domain.Loan) error {
	book, ok := s.books.books[loan.BookID]
	if !ok {
		return fmt.Errorf("book id %d: %w", loan.BookID, domain.ErrBookNotFound)
	}
	// Write-time stock guard, same as the conditional UPDATE in postgres.
	if book.Stock <= 0 {
		return fmt.Errorf("book id %d: %w", loan.BookID, domain.ErrBookOutOfStock)
	}
	book.Stock--

	loan.ID = s.nextID
	s.nextID++
	copied := *loan
	s.loans[loan.ID] = &copied

	s.preload(loan)
	return nil
}

func (s *fakeLoanStorage) MarkReturned(_ context.Context, loanID int64, returnDate domain.Date) (*domain.Loan, error) {
	loan, ok := s.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("loan id %d: %w", loanID, domain.ErrLoanNotFound)
	}
	if loan.ReturnDate != nil {
		return nil, fmt.Errorf("loan id %d: %w", loanID, domain.ErrLoanAlreadyReturned)
	}
	loan.ReturnDate = &returnDate

	if book, ok := s.books.books[loan.BookID]; ok {
		book.Stock++
	}

	copied := *loan
	s.preload(&copied)
	return &copied, nil
}

func (s *fakeLoanStorage) GetByID(_ context.Context, id int64) (*domain.Loan, error) {
	loan, ok := s.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan id %d: %w", id, domain.ErrLoanNotFound)
	}
	copied := *loan
	s.preload(&copied)
	return &copied, nil
}

func (s *fakeLoanStorage) List(_ context.Context) ([]domain.Loan, error) {
	out := make([]domain.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		copied := *l
		s.preload(&copied)
		out = append(out, copied)
	}
	return out, nil
}

func (s *fakeLoanStorage) ListActive(_ context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range s.loans {
		if l.ReturnDate == nil {
			copied := *l
			s.preload(&copied)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *fakeLoanStorage) ListByUser(_ context.Context, userID int64) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range s.loans {
		if l.UserID == userID {
			copied := *l
			s.preload(&copied)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *fakeLoanStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.loans[id]; !ok {
		return fmt.Errorf("loan id %d: %w", id, domain.ErrLoanNotFound)
	}
	delete(s.loans, id)
	return nil
}

func (s *fakeLoanStorage) ExistsActive(_ context.Context, userID, bookID int64) (bool, error) {
	for _, l := range s.loans {
		if l.UserID == userID && l.BookID == bookID && l.ReturnDate == nil {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeLoanStorage) preload(loan *domain.Loan) {
	if u, ok := s.users.users[loan.UserID]; ok {
		loan.User = *u
	}
	if b, ok := s.books.books[loan.BookID]; ok {
		loan.Book = *b
	}
}

type fakeReportStorage struct {
	stats *domain.LoanStats
	err   error
}

func (s *fakeReportStorage) LoanStats(_ context.Context) (*domain.LoanStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

type fakeAuditStorage struct {
	events []domain.LoanEvent
}

func (s *fakeAuditStorage) RecordLoanEvent(_ context.Context, event *domain.LoanEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeAuditStorage) ListLoanEvents(_ context.Context, loanID int64) ([]domain.LoanEvent, error) {
	var out []domain.LoanEvent
	for _, e := range s.events {
		if e.LoanID == loanID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	uploadedKey  string
	uploadedType string
	uploadedSize int64
	err          error
}

func (s *fakeFileStorage) UploadFile(_ context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	n, _ := io.Copy(io.Discard, reader)
	s.uploadedKey = key
	s.uploadedType = contentType
	s.uploadedSize = n
	return "http://files.test/" + key, nil
}

func (s *fakeFileStorage) DeleteFile(_ context.Context, key string) error {
	return s.err
}
