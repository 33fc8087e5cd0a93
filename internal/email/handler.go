package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/domain"
)

type contactStore interface {
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
}

type sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ContactHandler delivers stored contact messages announced on the bus.
type ContactHandler struct {
	store  contactStore
	sender sender
	from   string
	to     string
	logger *log.Logger
	now    func() time.Time
}

func NewContactHandler(store contactStore, s sender, from, to string, logger *log.Logger) *ContactHandler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ContactHandler{store: store, sender: s, from: from, to: to, logger: logger, now: time.Now}
}

// Handle processes one ContactSubmitted event. Messages already sent are
// skipped so redelivery does not email twice.
func (h *ContactHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.ContactSubmitted
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal contact event: %w", err)
	}

	msg, err := h.store.GetByID(ctx, event.MessageID)
	if errors.Is(err, domain.ErrNotFound) {
		h.logger.Printf("contact mailer: message_id=%s not found, dropping", event.MessageID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load contact message: %w", err)
	}
	if msg.Status == domain.ContactSent {
		h.logger.Printf("contact mailer: message_id=%s already sent", msg.ID)
		return nil
	}

	id, err := h.sender.Send(ctx, ComposeContact(*msg, h.from, h.to))
	if err != nil {
		if markErr := h.store.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
			h.logger.Printf("contact mailer: mark failed message_id=%s: %v", msg.ID, markErr)
		}
		return fmt.Errorf("send contact message %s: %w", msg.ID, err)
	}

	if err := h.store.MarkSent(ctx, msg.ID, h.now()); err != nil {
		return fmt.Errorf("mark contact message sent: %w", err)
	}
	h.logger.Printf("contact mailer: sent message_id=%s provider_id=%s", msg.ID, id)
	return nil
}

// ComposeContact renders the notification email for a contact message.
func ComposeContact(m domain.ContactMessage, from, to string) Message {
	name := strings.TrimSpace(m.Name)
	subject := "Contact form: " + name
	if name == "" {
		subject = "Contact form: (no name)"
		name = "(not provided)"
	}
	phone := strings.TrimSpace(m.Phone)
	if phone == "" {
		phone = "(not provided)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", m.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", phone)
	b.WriteString("Message:\n")
	b.WriteString(m.Message)
	b.WriteString("\n")
	return Message{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Text:    b.String(),
		ReplyTo: m.Email,
	}
}
