package cart

import (
	"storefront/internal/country"
	"storefront/internal/domain"
)

// Summary is the browser-facing view of a cart.
type Summary struct {
	TotalQuantity int           `json:"totalQuantity"`
	Subtotal      string        `json:"subtotal,omitempty"`
	CheckoutURL   string        `json:"checkoutUrl,omitempty"`
	Items         []SummaryItem `json:"items"`
}

type SummaryItem struct {
	LineID       string `json:"lineId"`
	Title        string `json:"title"`
	VariantTitle string `json:"variantTitle,omitempty"`
	Handle       string `json:"handle,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ImageAlt     string `json:"imageAlt,omitempty"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

// Summarize projects a cart for display, formatting prices with locale. A nil
// cart yields an empty summary.
func Summarize(cart *domain.Cart, locale string) Summary {
	if cart == nil {
		return Summary{Items: []SummaryItem{}}
	}
	s := Summary{
		TotalQuantity: cart.TotalQuantity,
		CheckoutURL:   cart.CheckoutURL,
		Items:         make([]SummaryItem, 0, len(cart.Lines)),
	}
	if sub := cart.Cost.SubtotalAmount; sub.Amount != "" {
		s.Subtotal = country.FormatPrice(sub.Amount, sub.CurrencyCode, locale)
	}
	for _, line := range cart.Lines {
		m := line.Merchandise
		item := SummaryItem{
			LineID:   line.ID,
			Title:    m.Product.Title,
			Handle:   m.Product.Handle,
			Quantity: line.Quantity,
		}
		if item.Title == "" {
			item.Title = m.Title
		} else if m.Title != "" && m.Title != "Default Title" {
			item.VariantTitle = m.Title
		}
		img := m.Image
		if img == nil {
			img = m.Product.FeaturedImage
		}
		if img != nil {
			item.ImageURL = img.URL
			item.ImageAlt = img.AltText
		}
		price := line.Cost.TotalAmount
		if price.Amount == "" {
			price = m.Price
		}
		item.Price = country.FormatPrice(price.Amount, price.CurrencyCode, locale)
		s.Items = append(s.Items, item)
	}
	return s
}
