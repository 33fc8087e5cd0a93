package domain

// Money is a decimal amount as the commerce platform reports it.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
}

// BuyerIdentity carries the country that drives the cart's pricing context.
type BuyerIdentity struct {
	Email       string `json:"email,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Cart is the remote cart with its lines flattened in platform order.
type Cart struct {
	ID            string        `json:"id"`
	CheckoutURL   string        `json:"checkoutUrl"`
	TotalQuantity int           `json:"totalQuantity"`
	Cost          CartCost      `json:"cost"`
	BuyerIdentity BuyerIdentity `json:"buyerIdentity"`
	Attributes    []Attribute   `json:"attributes"`
	Lines         []CartLine    `json:"lines"`
}

type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        CartCost    `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
	Attributes  []Attribute `json:"attributes"`
}

// Merchandise is the purchasable variant behind a cart line.
type Merchandise struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            Money            `json:"price"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Product          ProductRef       `json:"product"`
	Image            *Image           `json:"image,omitempty"`
}

type ProductRef struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *Image `json:"featuredImage,omitempty"`
}

// LineIDs returns the ids of all lines in order.
func (c *Cart) LineIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ID)
	}
	return ids
}
