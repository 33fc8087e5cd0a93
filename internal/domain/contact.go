package domain

import "time"

const (
	ContactPending = "pending"
	ContactSent    = "sent"
	ContactFailed  = "failed"
)

// ContactMessage is a contact form submission awaiting or after delivery.
type ContactMessage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	LastError string     `json:"lastError,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
}
