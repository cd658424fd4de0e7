package models

// CartEntry represents a selected catalog item awaiting settlement.
// Entries are ephemeral: recording the payment that settles them removes
// them from the store.
type CartEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// Email is the identity of the entry's owner.
	Email string `json:"email"`

	// MenuItemID references the catalog item that was selected.
	MenuItemID string `json:"menuItemId"`

	// CreatedAt is the Unix timestamp when the item was selected.
	CreatedAt int64 `json:"createdAt"`
}
