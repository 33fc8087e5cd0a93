package domain

import "time"

// Review is a product review approved for display.
type Review struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	Reviewer  string    `json:"reviewer"`
	ProductID int64     `json:"productId,omitempty"`
	Handle    string    `json:"productHandle,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}
