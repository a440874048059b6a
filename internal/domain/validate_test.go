package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{Name: "Alice", Email: "alice@example.com"}, false},
		{"empty name", User{Name: "  ", Email: "alice@example.com"}, true},
		{"name too long", User{Name: strings.Repeat("a", 101), Email: "alice@example.com"}, true},
		{"empty email", User{Name: "Alice", Email: ""}, true},
		{"invalid email", User{Name: "Alice", Email: "not-an-email"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookValidate(t *testing.T) {
	tests := []struct {
		name    string
		book    Book
		wantErr bool
	}{
		{"valid", Book{Title: "T", Author: "A", Stock: 0}, false},
		{"empty title", Book{Title: "", Author: "A"}, true},
		{"empty author", Book{Title: "T", Author: " "}, true},
		{"negative stock", Book{Title: "T", Author: "A", Stock: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
