package models

// Payment represents an immutable settlement record. Creating a payment is
// the trigger that removes the cart entries it references.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// Email is the payer's identity.
	Email string `json:"email"`

	// Amount is the settled amount.
	Amount float64 `json:"amount"`

	// TransactionID is the gateway reference and serves as the
	// idempotency key: inserting the same TransactionID twice is a no-op.
	TransactionID string `json:"transactionId"`

	// CartIDs are the cart entries this payment settles.
	CartIDs []string `json:"cartIds"`

	// MenuItemIDs are the catalog items bought, one per line item.
	MenuItemIDs []string `json:"menuItemIds"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"createdAt"`
}
