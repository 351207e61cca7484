package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// UpsertByEmail creates the user if the email is new and returns the
	// stored row either way. Used by OAuth sign-in where no password exists.
	UpsertByEmail(ctx context.Context, user User) (User, error)
}
