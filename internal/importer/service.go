package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/JOULifestyle/Contact-Management-App/internal/contacts"
	"github.com/JOULifestyle/Contact-Management-App/internal/normalize"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/metrics"
)

// ErrParse marks input that could not be understood as CSV or vCard. Handlers
// map it to a 400; anything else from an import is a persistence failure.
var ErrParse = errors.New("could not parse import file")

// BulkInserter is the persistence collaborator. It must skip records that
// collide with existing contacts and report only rows actually written.
type BulkInserter interface {
	BulkInsert(ctx context.Context, records []contacts.Contact) (int64, error)
}

type Service struct {
	Inserter BulkInserter
	// DefaultRegion resolves national phone numbers without a country code.
	DefaultRegion string
}

func NewService(inserter BulkInserter, defaultRegion string) *Service {
	return &Service{Inserter: inserter, DefaultRegion: defaultRegion}
}

// ImportCSV parses a CSV export and inserts the contacts it describes for the
// given owner, returning how many rows were actually written.
func (s *Service) ImportCSV(ctx context.Context, ownerID string, r io.Reader) (int64, error) {
	return s.run(ctx, ownerID, r, parseCSV)
}

// ImportVCard does the same for vCard exports.
func (s *Service) ImportVCard(ctx context.Context, ownerID string, r io.Reader) (int64, error) {
	return s.run(ctx, ownerID, r, parseVCards)
}

func (s *Service) run(ctx context.Context, ownerID string, r io.Reader, parse func(io.Reader) ([]rawRecord, error)) (int64, error) {
	metrics.IncImportStarted()
	started := metrics.NowMillis()

	records, err := parse(r)
	if err != nil {
		metrics.IncImportFailed()
		return 0, err
	}

	batch := make([]contacts.Contact, 0, len(records))
	for _, rec := range records {
		batch = append(batch, s.toContact(ownerID, rec))
	}

	inserted, err := s.Inserter.BulkInsert(ctx, batch)
	if err != nil {
		metrics.IncImportFailed()
		return 0, err
	}

	metrics.IncImportCompleted(int(inserted))
	metrics.ObserveImportDurationMs(metrics.NowMillis() - started)
	return inserted, nil
}

// toContact normalizes one parsed row. Imports are forgiving on purpose: a
// phone that fails to parse is kept verbatim and a birthday that fails to
// parse becomes null, so a messy export never aborts the whole file.
func (s *Service) toContact(ownerID string, rec rawRecord) contacts.Contact {
	name := rec.name
	if name == "" {
		name = "Unknown"
	}

	phone := rec.phone
	if normalized, err := normalize.Phone(phone, s.DefaultRegion); err == nil {
		phone = normalized
	}

	var birthday *string
	if rec.birthday != "" {
		if day, ok := normalize.Date(rec.birthday); ok {
			birthday = &day
		}
	}

	return contacts.Contact{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Name:     name,
		Email:    strings.ToLower(rec.email),
		Phone:    phone,
		Category: optional(rec.category),
		Birthday: birthday,
		Company:  optional(rec.company),
		PhotoURL: optional(rec.photoURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
