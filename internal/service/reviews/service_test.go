package reviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/cache"
	"storefront/internal/domain"
)

type stubSource struct {
	reviews     []domain.Review
	err         error
	calls       int
	lastPerPage int
	lastPage    int
}

func (s *stubSource) Reviews(_ context.Context, perPage, page int) ([]domain.Review, error) {
	s.calls++
	s.lastPerPage = perPage
	s.lastPage = page
	return s.reviews, s.err
}

type memCache struct {
	values map[string][]domain.Review
	ttl    time.Duration
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) error {
	v, ok := m.values[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	*out.(*[]domain.Review) = v
	return nil
}

func (m *memCache) SetJSON(_ context.Context, key string, v any, ttl time.Duration) error {
	m.values[key] = v.([]domain.Review)
	m.ttl = ttl
	return nil
}

func TestList_Defaults(t *testing.T) {
	src := &stubSource{reviews: []domain.Review{{ID: 1}}}
	got := New(src, nil, nil).List(context.Background(), 0, 0)
	if len(got) != 1 || src.lastPerPage != DefaultPerPage || src.lastPage != 1 {
		t.Fatalf("unexpected call per_page=%d page=%d result=%v", src.lastPerPage, src.lastPage, got)
	}
}

func TestList_ErrorDegradesToEmpty(t *testing.T) {
	src := &stubSource{err: errors.New("down")}
	got := New(src, nil, nil).List(context.Background(), 10, 1)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestList_CachesForAnHour(t *testing.T) {
	src := &stubSource{reviews: []domain.Review{{ID: 1}, {ID: 2}}}
	mc := &memCache{values: map[string][]domain.Review{}}
	svc := New(src, mc, nil)

	svc.List(context.Background(), 10, 1)
	got := svc.List(context.Background(), 10, 1)
	if len(got) != 2 || src.calls != 1 {
		t.Fatalf("expected cached second read, calls=%d", src.calls)
	}
	if mc.ttl != time.Hour {
		t.Fatalf("unexpected ttl %s", mc.ttl)
	}
}
