package shopify

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

type productNode struct {
	Handle        string                   `json:"handle"`
	Title         string                   `json:"title"`
	FeaturedImage *domain.Image            `json:"featuredImage"`
	Images        connection[domain.Image] `json:"images"`
	Variants      connection[variantNode]  `json:"variants"`
	PriceRange    struct {
		MinVariantPrice domain.Money `json:"minVariantPrice"`
	} `json:"priceRange"`
}

type variantNode struct {
	ID               string       `json:"id"`
	AvailableForSale bool         `json:"availableForSale"`
	Price            domain.Money `json:"price"`
}

func (n productNode) toSummary() domain.ProductSummary {
	s := domain.ProductSummary{
		Handle:        n.Handle,
		Title:         n.Title,
		FeaturedImage: n.FeaturedImage,
		MinPrice:      n.PriceRange.MinVariantPrice,
	}
	if len(n.Images) > 1 {
		img := n.Images[1]
		s.SecondaryImage = &img
	}
	if len(n.Variants) > 0 {
		v := n.Variants[0]
		s.VariantID = v.ID
		s.VariantAvailable = &v.AvailableForSale
	}
	return s
}

// HandleQuery builds the product search expression matching any of handles.
func HandleQuery(handles []string) string {
	parts := make([]string, 0, len(handles))
	for _, h := range handles {
		parts = append(parts, "handle:"+h)
	}
	return strings.Join(parts, " OR ")
}

// ProductsByHandles looks up at most ten products by handle, priced for the
// given country.
func (c *Client) ProductsByHandles(ctx context.Context, handles []string, countryCode string) ([]domain.ProductSummary, error) {
	if len(handles) == 0 {
		return []domain.ProductSummary{}, nil
	}
	var data struct {
		Products connection[productNode] `json:"products"`
	}
	err := c.do(ctx, "productsByHandles", productsByHandlesQuery, map[string]any{
		"query":   HandleQuery(handles),
		"country": toCountry(countryCode),
	}, &data)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductSummary, 0, len(data.Products))
	for _, p := range data.Products {
		out = append(out, p.toSummary())
	}
	return out, nil
}
