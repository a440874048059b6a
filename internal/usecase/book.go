package usecase

import (
	"context"
	"io"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// BookUseCase is the business logic for the catalog.
type BookUseCase interface {
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	UpdateBook(ctx context.Context, id int64, updated *domain.Book) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error

	SearchByTitle(ctx context.Context, title string) ([]domain.Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]domain.Book, error)

	// IsBookAvailable reports whether the book can be borrowed
	// (stock > 0).
	IsBookAvailable(ctx context.Context, id int64) (bool, error)

	// UploadCover stores a cover image in the object store and persists
	// its URL on the book.
	UploadCover(ctx context.Context, id int64, reader io.Reader, contentType string) (*domain.Book, error)
}
