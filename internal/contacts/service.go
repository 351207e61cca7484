package contacts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/JOULifestyle/Contact-Management-App/internal/normalize"
)

var (
	ErrInvalidPhone    = errors.New("invalid phone number format")
	ErrInvalidBirthday = errors.New("invalid birthday")
	ErrForbidden       = errors.New("not allowed")
)

// Input carries the caller-editable fields of a contact. Create and Update
// take the same shape; both normalize phone and birthday before persisting.
type Input struct {
	Name     string
	Email    string
	Phone    string
	Category *string
	Birthday *string
	Company  *string
	PhotoURL *string
}

type Service struct {
	Repo Repo
	// DefaultRegion resolves national phone numbers without a country code.
	DefaultRegion string
}

func NewService(repo Repo, defaultRegion string) *Service {
	return &Service{Repo: repo, DefaultRegion: defaultRegion}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Contact, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID string, in Input) (Contact, error) {
	contact, err := s.build(in)
	if err != nil {
		return Contact{}, err
	}
	contact.ID = uuid.NewString()
	contact.OwnerID = ownerID
	if err := s.Repo.Create(ctx, contact); err != nil {
		return Contact{}, err
	}
	return s.Repo.GetByID(ctx, contact.ID)
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in Input) (Contact, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Contact{}, err
	}
	if existing.OwnerID != ownerID {
		return Contact{}, ErrForbidden
	}

	contact, err := s.build(in)
	if err != nil {
		return Contact{}, err
	}
	contact.ID = existing.ID
	contact.OwnerID = existing.OwnerID
	if err := s.Repo.Update(ctx, contact); err != nil {
		return Contact{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}

// BulkTag applies one category to many of the owner's contacts and returns
// the number actually updated. Ids belonging to other owners are skipped.
func (s *Service) BulkTag(ctx context.Context, ownerID string, ids []string, category string) (int64, error) {
	return s.Repo.BulkTag(ctx, ownerID, ids, category)
}

// build validates and normalizes caller input into a persistable contact.
// The direct write path is strict: a phone that cannot be parsed rejects the
// request rather than being stored raw.
func (s *Service) build(in Input) (Contact, error) {
	phone, err := normalize.Phone(in.Phone, s.DefaultRegion)
	if err != nil {
		return Contact{}, ErrInvalidPhone
	}

	var birthday *string
	if in.Birthday != nil && strings.TrimSpace(*in.Birthday) != "" {
		day, ok := normalize.Date(*in.Birthday)
		if !ok {
			return Contact{}, ErrInvalidBirthday
		}
		birthday = &day
	}

	return Contact{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    phone,
		Category: trimmedOrNil(in.Category),
		Birthday: birthday,
		Company:  trimmedOrNil(in.Company),
		PhotoURL: trimmedOrNil(in.PhotoURL),
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
