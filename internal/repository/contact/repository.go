package contact

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// Repository persists contact form submissions and their delivery state.
type Repository interface {
	Create(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
}
