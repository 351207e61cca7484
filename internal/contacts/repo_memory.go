package contacts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	contacts map[string]Contact
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{contacts: make(map[string]Contact)}
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contact, 0)
	for _, contact := range r.contacts {
		if contact.OwnerID == ownerID {
			out = append(out, contact)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Contact, error) {
	if err := ctx.Err(); err != nil {
		return Contact{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	contact, ok := r.contacts[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return contact, nil
}

func (r *MemoryRepo) Create(ctx context.Context, contact Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collides(contact) {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.contacts[contact.ID] = contact
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, contact Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.contacts[contact.ID]
	if !ok {
		return ErrNotFound
	}
	if r.collides(contact) {
		return ErrDuplicate
	}
	contact.OwnerID = existing.OwnerID
	contact.CreatedAt = existing.CreatedAt
	contact.UpdatedAt = time.Now().UTC()
	r.contacts[contact.ID] = contact
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *MemoryRepo) BulkTag(ctx context.Context, ownerID string, ids []string, category string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, id := range ids {
		contact, ok := r.contacts[id]
		if !ok || contact.OwnerID != ownerID {
			continue
		}
		tag := category
		contact.Category = &tag
		contact.UpdatedAt = time.Now().UTC()
		r.contacts[id] = contact
		updated++
	}
	return updated, nil
}

func (r *MemoryRepo) BulkInsert(ctx context.Context, records []Contact) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var inserted int64
	now := time.Now().UTC()
	for _, rec := range records {
		if r.collides(rec) {
			continue
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now
		r.contacts[rec.ID] = rec
		inserted++
	}
	return inserted, nil
}

// collides reports whether another of the owner's contacts already claims the
// same non-empty email or phone. Empty values never collide, matching the
// partial unique indexes the Postgres repo relies on.
func (r *MemoryRepo) collides(contact Contact) bool {
	for _, existing := range r.contacts {
		if existing.ID == contact.ID || existing.OwnerID != contact.OwnerID {
			continue
		}
		if contact.Email != "" && strings.EqualFold(existing.Email, contact.Email) {
			return true
		}
		if contact.Phone != "" && existing.Phone == contact.Phone {
			return true
		}
	}
	return false
}
