package contacts

import "time"

// Contact is an owner-scoped address-book entry. Email and phone use the
// empty string for "not provided" so the store's partial uniqueness indexes
// only apply to real values; the remaining optional fields are nullable.
type Contact struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Category  *string   `json:"category"`
	Birthday  *string   `json:"birthday"` // ISO calendar date (YYYY-MM-DD)
	Company   *string   `json:"company"`
	PhotoURL  *string   `json:"photoUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
