package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// BookStorage implements ports.BookStorage on top of GORM.
type BookStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBookStorage(db *gorm.DB, logger *slog.Logger) *BookStorage {
	return &BookStorage{db: db, logger: logger}
}

func (s *BookStorage) Save(ctx context.Context, book *domain.Book) error {
	if err := s.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

func (s *BookStorage) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	err := s.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book id %d: %w", id, domain.ErrBookNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book by id: %w", err)
	}
	return &book, nil
}

func (s *BookStorage) List(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := s.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *BookStorage) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.Book{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book id %d: %w", id, domain.ErrBookNotFound)
	}
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

func (s *BookStorage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Book{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return count > 0, nil
}

// SearchByTitle finds books whose title contains the given substring,
// case-insensitively.
func (s *BookStorage) SearchByTitle(ctx context.Context, title string) ([]domain.Book, error) {
	var books []domain.Book
	err := s.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%").
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("search books by title: %w", err)
	}
	return books, nil
}

// SearchByAuthor finds books whose author contains the given substring,
// case-insensitively.
func (s *BookStorage) SearchByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	var books []domain.Book
	err := s.db.WithContext(ctx).
		Where("LOWER(author) LIKE LOWER(?)", "%"+author+"%").
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("search books by author: %w", err)
	}
	return books, nil
}
