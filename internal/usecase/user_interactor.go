package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BiblioGo/LibraryApp/internal/core/ports"
	"github.com/BiblioGo/LibraryApp/internal/domain"
)

type userUseCase struct {
	userStorage ports.UserStorage
	loanStorage ports.LoanStorage
	logger      *slog.Logger
}

func NewUserUseCase(userStorage ports.UserStorage, loanStorage ports.LoanStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		loanStorage: loanStorage,
		logger:      logger,
	}
}

func (uc *userUseCase) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	taken, err := uc.userStorage.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("usecase: check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	user.ID = 0
	if err := uc.userStorage.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("usecase: create user: %w", err)
	}

	uc.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userStorage.GetByID(ctx, id)
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.userStorage.List(ctx)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, id int64, updated *domain.User) (*domain.User, error) {
	existing, err := uc.userStorage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Uniqueness is re-checked on update as well, excluding the user
	// itself. The original only validated at creation time.
	if updated.Email != existing.Email {
		other, err := uc.userStorage.GetByEmail(ctx, updated.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("usecase: check email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrEmailTaken
		}
	}

	existing.Name = updated.Name
	existing.Email = updated.Email

	if err := uc.userStorage.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("usecase: update user: %w", err)
	}

	uc.logger.Info("user updated", "user_id", existing.ID)
	return existing, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id int64) error {
	return uc.userStorage.Delete(ctx, id)
}

func (uc *userUseCase) ListUserLoans(ctx context.Context, id int64) ([]domain.Loan, error) {
	exists, err := uc.userStorage.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user id %d: %w", id, domain.ErrUserNotFound)
	}
	return uc.loanStorage.ListByUser(ctx, id)
}
