package models

// Offer statuses. Pending is the only non-terminal state.
const (
	OfferPending  = "pending"
	OfferBought   = "bought"
	OfferRejected = "rejected"
)

// Offer represents a purchase offer on a property.
// Offers are always created pending; the transition to bought happens only
// alongside a successful payment and carries the transaction reference.
type Offer struct {
	// ID is the unique identifier for the offer (UUID format).
	ID string `json:"id"`

	// PropertyID references the property the offer is for.
	PropertyID string `json:"propertyId"`

	// BuyerEmail is the identity of the buyer who submitted the offer.
	BuyerEmail string `json:"buyerEmail"`

	// BuyerName is the buyer's display name.
	BuyerName string `json:"buyerName"`

	// OfferedAmount is the amount the buyer offered.
	OfferedAmount float64 `json:"offeredAmount"`

	// Status is OfferPending, OfferBought or OfferRejected.
	Status string `json:"status"`

	// TransactionID is set when the offer transitions to bought.
	TransactionID string `json:"transactionId,omitempty"`

	// BuyingDate is the buyer's requested purchase date (free-form).
	BuyingDate string `json:"buyingDate,omitempty"`

	// CreatedAt is the Unix timestamp when the offer was submitted.
	CreatedAt int64 `json:"createdAt"`
}

// Terminal reports whether the offer can no longer transition.
func (o *Offer) Terminal() bool {
	return o.Status != OfferPending
}
