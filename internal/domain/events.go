package domain

import "time"

const (
	CartCreated      = "cart.created"
	CartLinesAdded   = "cart.lines_added"
	CartLineUpdated  = "cart.line_updated"
	CartLinesRemoved = "cart.lines_removed"
	CartRecovered    = "cart.recovered"
)

// CartEvent records a successful cart mutation.
type CartEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	CartID        string    `json:"cart_id"`
	Country       string    `json:"country,omitempty"`
	MerchandiseID string    `json:"merchandise_id,omitempty"`
	LineIDs       []string  `json:"line_ids,omitempty"`
	TotalQuantity int       `json:"total_quantity"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ContactSubmitted announces a stored contact message ready for delivery.
type ContactSubmitted struct {
	EventID    string    `json:"event_id"`
	MessageID  string    `json:"message_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
