package contacts

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("contact not found")
	ErrDuplicate = errors.New("contact with this email or phone already exists")
)

type Repo interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Contact, error)
	GetByID(ctx context.Context, id string) (Contact, error)
	Create(ctx context.Context, contact Contact) error
	Update(ctx context.Context, contact Contact) error
	Delete(ctx context.Context, id string) error
	// BulkTag sets the category on the owner's contacts with the given ids
	// and returns how many rows changed. Foreign ids are ignored.
	BulkTag(ctx context.Context, ownerID string, ids []string, category string) (int64, error)
	// BulkInsert writes all records in one call, silently skipping any that
	// collide with the store's owner-scoped uniqueness constraints, and
	// returns the count actually inserted.
	BulkInsert(ctx context.Context, records []Contact) (int64, error)
}
