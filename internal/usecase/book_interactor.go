package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BiblioGo/LibraryApp/internal/core/ports"
	"github.com/BiblioGo/LibraryApp/internal/domain"
)

type bookUseCase struct {
	bookStorage ports.BookStorage
	fileStorage ports.FileStorage
	logger      *slog.Logger
}

func NewBookUseCase(bookStorage ports.BookStorage, fileStorage ports.FileStorage, logger *slog.Logger) BookUseCase {
	return &bookUseCase{
		bookStorage: bookStorage,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (uc *bookUseCase) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	book.ID = 0
	if err := uc.bookStorage.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("usecase: create book: %w", err)
	}

	uc.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

func (uc *bookUseCase) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return uc.bookStorage.GetByID(ctx, id)
}

func (uc *bookUseCase) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return uc.bookStorage.List(ctx)
}

func (uc *bookUseCase) UpdateBook(ctx context.Context, id int64, updated *domain.Book) (*domain.Book, error) {
	existing, err := uc.bookStorage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Author = updated.Author
	existing.Stock = updated.Stock

	if err := uc.bookStorage.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("usecase: update book: %w", err)
	}

	uc.logger.Info("book updated", "book_id", existing.ID)
	return existing, nil
}

func (uc *bookUseCase) DeleteBook(ctx context.Context, id int64) error {
	return uc.bookStorage.Delete(ctx, id)
}

func (uc *bookUseCase) SearchByTitle(ctx context.Context, title string) ([]domain.Book, error) {
	return uc.bookStorage.SearchByTitle(ctx, title)
}

func (uc *bookUseCase) SearchByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return uc.bookStorage.SearchByAuthor(ctx, author)
}

func (uc *bookUseCase) IsBookAvailable(ctx context.Context, id int64) (bool, error) {
	book, err := uc.bookStorage.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return book.Available(), nil
}

func (uc *bookUseCase) UploadCover(ctx context.Context, id int64, reader io.Reader, contentType string) (*domain.Book, error) {
	book, err := uc.bookStorage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("book-covers/%s", uuid.New())
	url, err := uc.fileStorage.UploadFile(ctx, key, reader, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: upload cover for book %d: %w", id, err)
	}

	book.CoverURL = url
	if err := uc.bookStorage.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("usecase: save cover url: %w", err)
	}

	uc.logger.Info("book cover uploaded", "book_id", book.ID, "url", url)
	return book, nil
}
