package domain

import (
	"errors"
	"strings"
)

// Book represents a title in the catalog.
// Maps to the 'books' table; Stock counts copies currently on the shelf.
type Book struct {
	ID       int64  `json:"id" gorm:"primaryKey" db:"id"`
	Title    string `json:"title" gorm:"not null" db:"title"`
	Author   string `json:"author" gorm:"not null" db:"author"`
	Stock    int    `json:"stock" gorm:"not null;default:0" db:"stock"`
	CoverURL string `json:"coverUrl,omitempty" gorm:"column:cover_url" db:"cover_url"`
}

func (Book) TableName() string {
	return "books"
}

// Available reports whether at least one copy can be borrowed.
func (b *Book) Available() bool {
	return b.Stock > 0
}

func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return errors.New("author is required")
	}
	if b.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}
