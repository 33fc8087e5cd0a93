package cart

import (
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestSummarize_NilCart(t *testing.T) {
	s := Summarize(nil, "en-US")
	if s.TotalQuantity != 0 || s.Items == nil || len(s.Items) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestSummarize_Lines(t *testing.T) {
	cart := &domain.Cart{
		ID:            "c1",
		TotalQuantity: 3,
		Cost:          domain.CartCost{SubtotalAmount: domain.Money{Amount: "1500", CurrencyCode: "JPY"}},
		Lines: []domain.CartLine{
			{
				ID:       "l1",
				Quantity: 1,
				Merchandise: domain.Merchandise{
					Title:   "Default Title",
					Price:   domain.Money{Amount: "500", CurrencyCode: "JPY"},
					Product: domain.ProductRef{Title: "Tea", Handle: "tea", FeaturedImage: &domain.Image{URL: "https://cdn/tea.jpg"}},
				},
			},
			{
				ID:       "l2",
				Quantity: 2,
				Cost:     domain.CartCost{TotalAmount: domain.Money{Amount: "1000", CurrencyCode: "JPY"}},
				Merchandise: domain.Merchandise{
					Title:   "Large",
					Image:   &domain.Image{URL: "https://cdn/cup-l.jpg", AltText: "cup"},
					Product: domain.ProductRef{Title: "Cup"},
				},
			},
		},
	}

	s := Summarize(cart, "en-JP")
	if s.TotalQuantity != 3 || len(s.Items) != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
	first, second := s.Items[0], s.Items[1]
	if first.LineID != "l1" || first.VariantTitle != "" || first.ImageURL != "https://cdn/tea.jpg" {
		t.Fatalf("unexpected first item %+v", first)
	}
	if !strings.Contains(first.Price, "500") {
		t.Fatalf("expected merchandise price fallback, got %q", first.Price)
	}
	if second.VariantTitle != "Large" || second.ImageAlt != "cup" || !strings.Contains(second.Price, "1,000") {
		t.Fatalf("unexpected second item %+v", second)
	}
}
