package models

// Review is buyer feedback on a property.
type Review struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId"`
	BuyerEmail string `json:"buyerEmail"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
	CreatedAt  int64  `json:"createdAt"`
}
