package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BiblioGo/LibraryApp/internal/domain"
)

func newUserFixture() (*fakeUserStorage, *fakeLoanStorage, UserUseCase) {
	users := newFakeUserStorage()
	books := newFakeBookStorage()
	loans := newFakeLoanStorage(users, books)
	return users, loans, NewUserUseCase(users, loans, testLogger())
}

func TestCreateUser_Succeeds(t *testing.T) {
	_, _, uc := newUserFixture()

	user, err := uc.CreateUser(context.Background(), &domain.User{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	_, _, uc := newUserFixture()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = uc.CreateUser(ctx, &domain.User{Name: "Other Alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateUser_Succeeds(t *testing.T) {
	_, _, uc := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, &domain.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	updated, err := uc.UpdateUser(ctx, user.ID, &domain.User{
		Name:  "Robert",
		Email: "robert@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "robert@example.com", updated.Email)
}

func TestUpdateUser_KeepOwnEmail(t *testing.T) {
	_, _, uc := newUserFixture()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, &domain.User{Name: "Carol", Email: "carol@example.com"})
	require.NoError(t, err)

	// Re-submitting the same email is not a conflict with yourself.
	_, err = uc.UpdateUser(ctx, user.ID, &domain.User{Name: "Caroline", Email: "carol@example.com"})
	assert.NoError(t, err)
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	_, _, uc := newUserFixture()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, &domain.User{Name: "Dave", Email: "dave@example.com"})
	require.NoError(t, err)

	erin, err := uc.CreateUser(ctx, &domain.User{Name: "Erin", Email: "erin@example.com"})
	require.NoError(t, err)

	_, err = uc.UpdateUser(ctx, erin.ID, &domain.User{Name: "Erin", Email: "dave@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateUser_NotFound(t *testing.T) {
	_, _, uc := newUserFixture()

	_, err := uc.UpdateUser(context.Background(), 404, &domain.User{
		Name:  "Ghost",
		Email: "ghost@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUser_NotFound(t *testing.T) {
	_, _, uc := newUserFixture()

	err := uc.DeleteUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUserLoans_UnknownUser(t *testing.T) {
	_, _, uc := newUserFixture()

	_, err := uc.ListUserLoans(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUserLoans_FiltersByUser(t *testing.T) {
	users, loans, uc := newUserFixture()
	ctx := context.Background()

	alice := &domain.User{Name: "Alice", Email: "alice@example.com"}
	bob := &domain.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, users.Save(ctx, alice))
	require.NoError(t, users.Save(ctx, bob))

	book := &domain.Book{Title: "Shared", Author: "Author", Stock: 5}
	require.NoError(t, loans.books.Save(ctx, book))

	require.NoError(t, loans.CreateLoan(ctx, &domain.Loan{
		UserID: alice.ID, BookID: book.ID, LoanDate: domain.Today(),
	}))
	require.NoError(t, loans.CreateLoan(ctx, &domain.Loan{
		UserID: bob.ID, BookID: book.ID, LoanDate: domain.Today(),
	}))

	got, err := uc.ListUserLoans(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].UserID)
}
