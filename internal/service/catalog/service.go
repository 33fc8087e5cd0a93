package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/country"
	"storefront/internal/domain"
)

const maxHandles = 10

type productSource interface {
	ProductsByHandles(ctx context.Context, handles []string, countryCode string) ([]domain.ProductSummary, error)
}

type jsonCache interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Service struct {
	products productSource
	cache    jsonCache
	logger   *log.Logger
}

// New builds the catalog service. cache may be nil.
func New(products productSource, store jsonCache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{products: products, cache: store, logger: logger}
}

// ParseHandles splits a comma separated handle list, dropping blanks.
func ParseHandles(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if h := strings.TrimSpace(p); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// RecentProducts returns cards for the given handles in request order, priced
// and formatted for the visitor's country.
func (s *Service) RecentProducts(ctx context.Context, handles []string, countryCode string) ([]domain.ProductCard, error) {
	if len(handles) == 0 {
		return []domain.ProductCard{}, nil
	}
	if len(handles) > maxHandles {
		handles = handles[:maxHandles]
	}

	key := fmt.Sprintf(cache.KeyRecentProducts, strings.ToUpper(countryCode), strings.Join(handles, ","))
	if s.cache != nil {
		var cached []domain.ProductCard
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Printf("catalog service: cache get key=%s: %v", key, err)
		}
	}

	summaries, err := s.products.ProductsByHandles(ctx, handles, countryCode)
	if err != nil {
		return nil, err
	}

	locale := country.DefaultLocale
	if countryCode != "" {
		locale = country.ByCode(countryCode).NumberLocale
	}
	cards := buildCards(summaries, handles, locale)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, cards, cache.TTLRecentProducts); err != nil {
			s.logger.Printf("catalog service: cache set key=%s: %v", key, err)
		}
	}
	return cards, nil
}

func buildCards(summaries []domain.ProductSummary, order []string, locale string) []domain.ProductCard {
	rank := make(map[string]int, len(order))
	for i, h := range order {
		if _, ok := rank[h]; !ok {
			rank[h] = i
		}
	}
	cards := make([]domain.ProductCard, len(order))
	filled := make([]bool, len(order))
	var extra []domain.ProductCard
	for _, p := range summaries {
		card := toCard(p, locale)
		if i, ok := rank[p.Handle]; ok && !filled[i] {
			cards[i] = card
			filled[i] = true
			continue
		}
		extra = append(extra, card)
	}
	out := make([]domain.ProductCard, 0, len(summaries))
	for i, c := range cards {
		if filled[i] {
			out = append(out, c)
		}
	}
	return append(out, extra...)
}

func toCard(p domain.ProductSummary, locale string) domain.ProductCard {
	card := domain.ProductCard{
		Title:     p.Title,
		Href:      "/products/" + p.Handle,
		VariantID: p.VariantID,
		Available: true,
	}
	if p.MinPrice.Amount != "" {
		card.Price = country.FormatPrice(p.MinPrice.Amount, p.MinPrice.CurrencyCode, locale)
	}
	if p.FeaturedImage != nil {
		card.ImageURL = p.FeaturedImage.URL
		card.ImageAlt = p.FeaturedImage.AltText
	}
	if p.SecondaryImage != nil {
		card.SecondaryImageURL = p.SecondaryImage.URL
	}
	if p.VariantAvailable != nil {
		card.Available = *p.VariantAvailable
	}
	return card
}
