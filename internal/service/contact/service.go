package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

var (
	ErrMissingFields = errors.New("email and message are required")
	ErrInvalidEmail  = errors.New("email is invalid")
)

type store interface {
	Create(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error)
	MarkFailed(ctx context.Context, id, reason string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type SubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service accepts contact form submissions. Delivery happens out of band in
// the mailer, which consumes the submitted events.
type Service struct {
	store  store
	events eventPublisher
	logger *log.Logger
}

func New(s store, events eventPublisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: s, events: events, logger: logger}
}

// Submit stores the message and announces it for delivery. When the
// announcement fails the stored row is marked failed and the error returned.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.ContactMessage, error) {
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if email == "" || message == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	msg, err := s.store.Create(ctx, domain.ContactMessage{
		Name:    in.Name,
		Email:   email,
		Phone:   in.Phone,
		Message: message,
		Status:  domain.ContactPending,
	})
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	event := domain.ContactSubmitted{
		EventID:    uuid.NewString(),
		MessageID:  msg.ID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, msg.ID, event); err != nil {
		if markErr := s.store.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
			s.logger.Printf("contact service: mark failed message_id=%s: %v", msg.ID, markErr)
		}
		return nil, fmt.Errorf("publish contact message: %w", err)
	}
	s.logger.Printf("contact service: accepted message_id=%s", msg.ID)
	return msg, nil
}
