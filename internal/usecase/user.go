package usecase

import (
	"context"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

// UserUseCase is the business logic for library members.
type UserUseCase interface {
	// CreateUser registers a new member. The email must not be taken
	// (domain.ErrEmailTaken otherwise).
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser replaces name and email. Email uniqueness is enforced
	// here too, excluding the user itself.
	UpdateUser(ctx context.Context, id int64, updated *domain.User) (*domain.User, error)

	// DeleteUser removes the member together with all their loans.
	// Book stock is not restored for outstanding loans.
	DeleteUser(ctx context.Context, id int64) error

	ListUserLoans(ctx context.Context, id int64) ([]domain.Loan, error)
}
