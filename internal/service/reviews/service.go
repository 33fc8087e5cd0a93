package reviews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/cache"
	"storefront/internal/domain"
)

const (
	DefaultPerPage = 10
	maxPerPage     = 50
)

type reviewSource interface {
	Reviews(ctx context.Context, perPage, page int) ([]domain.Review, error)
}

type jsonCache interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Service struct {
	source reviewSource
	cache  jsonCache
	logger *log.Logger
}

func New(source reviewSource, store jsonCache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{source: source, cache: store, logger: logger}
}

// List returns curated reviews. Upstream problems degrade to an empty list.
func (s *Service) List(ctx context.Context, perPage, page int) []domain.Review {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if page <= 0 {
		page = 1
	}

	key := fmt.Sprintf(cache.KeyReviews, perPage, page)
	if s.cache != nil {
		var cached []domain.Review
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Printf("reviews service: cache get key=%s: %v", key, err)
		}
	}

	list, err := s.source.Reviews(ctx, perPage, page)
	if err != nil {
		s.logger.Printf("reviews service: fetch per_page=%d page=%d: %v", perPage, page, err)
		return []domain.Review{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, list, cache.TTLReviews); err != nil {
			s.logger.Printf("reviews service: cache set key=%s: %v", key, err)
		}
	}
	return list
}
