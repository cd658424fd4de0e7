package models

// MenuItem is a catalog item. Category and price drive the per-category
// revenue breakdown.
type MenuItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the item's display name.
	Name string `json:"name"`

	// Category groups items for revenue reporting.
	Category string `json:"category"`

	// Price is the item's list price.
	Price float64 `json:"price"`

	// Recipe is a free-form description.
	Recipe string `json:"recipe,omitempty"`

	// Image is the item's image URL.
	Image string `json:"image,omitempty"`
}
