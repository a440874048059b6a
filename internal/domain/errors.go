package domain

import "errors"

// Sentinel errors of the library domain. Storage and usecase layers wrap
// them with context; the HTTP layer classifies with errors.Is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBookNotFound        = errors.New("book not found")
	ErrLoanNotFound        = errors.New("loan not found")
	ErrBookOutOfStock      = errors.New("book out of stock")
	ErrBookAlreadyBorrowed = errors.New("book already borrowed by this user")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
	ErrEmailTaken          = errors.New("a user with this email already exists")
)
