package domain

// ProductCard is the compact product shape used by recently viewed lists.
type ProductCard struct {
	Title             string `json:"title"`
	Price             string `json:"price"`
	Href              string `json:"href"`
	ImageURL          string `json:"imageUrl,omitempty"`
	ImageAlt          string `json:"imageAlt,omitempty"`
	SecondaryImageURL string `json:"secondaryImageUrl,omitempty"`
	VariantID         string `json:"variantId,omitempty"`
	Available         bool   `json:"available"`
}

// ProductSummary is the raw product data a card is built from.
type ProductSummary struct {
	Handle           string
	Title            string
	FeaturedImage    *Image
	SecondaryImage   *Image
	MinPrice         Money
	VariantID        string
	VariantAvailable *bool
}
