package account

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNoSession     = errors.New("customer access token required")
)

type customerAPI interface {
	RecoverCustomer(ctx context.Context, email string) error
	Customer(ctx context.Context, accessToken string) (*domain.Customer, error)
}

type Service struct {
	api customerAPI
}

func New(api customerAPI) *Service {
	return &Service{api: api}
}

// Recover requests a password reset email. The caller should answer the
// same way whether or not the account exists.
func (s *Service) Recover(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	return s.api.RecoverCustomer(ctx, email)
}

// Overview loads the signed-in customer's profile, addresses and orders.
func (s *Service) Overview(ctx context.Context, accessToken string) (*domain.Customer, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrNoSession
	}
	return s.api.Customer(ctx, accessToken)
}
