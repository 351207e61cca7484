package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

const contactColumns = `id, owner_id, name, email, phone, category, birthday, company, photo_url, created_at, updated_at`

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Contact, error) {
	query := `
SELECT ` + contactColumns + `
FROM contacts
WHERE owner_id = $1
ORDER BY created_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, contact)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Contact, error) {
	query := `
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1
LIMIT 1`
	contact, err := scanContact(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, ErrNotFound
	}
	return contact, err
}

func (r *PGRepo) Create(ctx context.Context, contact Contact) error {
	const query = `
INSERT INTO contacts (id, owner_id, name, email, phone, category, birthday, company, photo_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone,
		contact.Category, contact.Birthday, contact.Company, contact.PhotoURL)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) Update(ctx context.Context, contact Contact) error {
	const query = `
UPDATE contacts
SET name = $2, email = $3, phone = $4, category = $5, birthday = $6, company = $7, photo_url = $8, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone,
		contact.Category, contact.Birthday, contact.Company, contact.PhotoURL)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) BulkTag(ctx context.Context, ownerID string, ids []string, category string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := []any{category, ownerID}
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	query := `
UPDATE contacts SET category = $1, updated_at = now()
WHERE owner_id = $2 AND id IN (` + strings.Join(placeholders, ", ") + `)`

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BulkInsert writes the whole batch in one statement. ON CONFLICT DO NOTHING
// drops rows that collide with an existing contact or with an earlier row in
// the same batch, so RowsAffected is exactly the number inserted.
func (r *PGRepo) BulkInsert(ctx context.Context, records []Contact) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO contacts (id, owner_id, name, email, phone, category, birthday, company, photo_url, created_at, updated_at) VALUES `)
	args := make([]any, 0, len(records)*9)
	for i, rec := range records {
		if i > 0 {
			query.WriteString(", ")
		}
		base := i * 9
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, now(), now())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		args = append(args,
			rec.ID, rec.OwnerID, rec.Name, rec.Email, rec.Phone,
			rec.Category, rec.Birthday, rec.Company, rec.PhotoURL)
	}
	query.WriteString(` ON CONFLICT DO NOTHING`)

	res, err := r.DB.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanContact(row scannable) (Contact, error) {
	var (
		contact  Contact
		birthday sql.NullTime
	)
	err := row.Scan(&contact.ID, &contact.OwnerID, &contact.Name, &contact.Email, &contact.Phone,
		&contact.Category, &birthday, &contact.Company, &contact.PhotoURL,
		&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return Contact{}, err
	}
	if birthday.Valid {
		day := birthday.Time.Format("2006-01-02")
		contact.Birthday = &day
	}
	return contact, nil
}

// isUniqueViolation matches Postgres unique-constraint errors (SQLSTATE 23505)
// without binding the repo to the driver's error type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
