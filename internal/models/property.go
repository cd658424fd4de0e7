package models

// Property statuses. A property is bought exactly once; the transition
// never runs backward.
const (
	PropertyAvailable = "available"
	PropertyBought    = "bought"
)

// Property represents a listed property.
type Property struct {
	// ID is the unique identifier for the property (UUID format).
	ID string `json:"id"`

	// Title is the listing headline.
	Title string `json:"title"`

	// Location is a free-form location description.
	Location string `json:"location"`

	// Agent is the listing agent's name.
	Agent string `json:"agent"`

	// Price is the asking price.
	Price float64 `json:"price"`

	// Status is PropertyAvailable or PropertyBought.
	Status string `json:"status"`

	// TransactionID is the payment gateway reference recorded when the
	// property was bought. Empty while available.
	TransactionID string `json:"transactionId,omitempty"`

	// CreatedAt is the Unix timestamp when the property was listed.
	CreatedAt int64 `json:"createdAt"`
}
