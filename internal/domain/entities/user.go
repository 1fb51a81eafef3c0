package entities

import (
	"errors"
	"time"

	"github.com/rafabene/avantpro-blog/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Email        valueobjects.Email
	Name         string
	PasswordHash string
	GoogleID     *string // preenchido quando a conta foi vinculada ao Google
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft delete
}

// IsDeleted verifica se o usuário foi deletado (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// HasGoogleAccount indica se o usuário já está vinculado a uma identidade Google
func (u *User) HasGoogleAccount() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// LinkGoogle vincula a identidade Google ao usuário
func (u *User) LinkGoogle(googleID string) {
	u.GoogleID = &googleID
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.IsZero() {
		return errors.New("email is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}
