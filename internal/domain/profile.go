// Package domain
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrSubmitInFlight         = errors.New("submit already in flight")
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// ProfileSnapshot is the read-only view of the current user that seeds the
// edit form. Password hashes never leave the storage layer through it.
type ProfileSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
}

// ProfileFormInput holds one edit session's field values. Rule order per
// field is significant: the first failing tag is the one reported.
type ProfileFormInput struct {
	Name        string `json:"name" validate:"min=3"`
	Username    string `json:"username,omitempty" validate:"-"`
	OldPassword string `json:"oldPassword,omitempty" validate:"omitempty"`
	NewPassword string `json:"newPassword,omitempty" validate:"required_with=OldPassword,omitempty,min=6,upperchar,digitchar"`
}

type ProfileUpdateRequest struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OldPassword string    `json:"oldPassword,omitempty"`
	NewPassword string    `json:"newPassword,omitempty"`
}

// ValidationError carries at most one message per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

type ProfileSource interface {
	FetchCurrent(ctx context.Context) (*ProfileSnapshot, error)
}

type ProfileUpdater interface {
	Update(ctx context.Context, req ProfileUpdateRequest) error
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type ProfileService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProfileSnapshot, error)
	Update(ctx context.Context, req ProfileUpdateRequest) error
}
