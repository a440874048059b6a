package domain

import (
	"errors"
	"net/mail"
	"strings"
)

// User represents a library member.
// Maps to the 'users' table.
type User struct {
	ID    int64  `json:"id" gorm:"primaryKey" db:"id"`
	Name  string `json:"name" gorm:"size:100;not null" db:"name"`
	Email string `json:"email" gorm:"uniqueIndex;not null" db:"email"`

	// Loans are removed together with the user (ON DELETE CASCADE).
	// Book stock is NOT restored on cascade, matching the documented
	// asymmetry of the loan lifecycle.
	Loans []Loan `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// Validate checks the request payload before it reaches storage.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if len(u.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("email is invalid")
	}
	return nil
}
