package domain

import (
	"time"

	"github.com/google/uuid"
)

// Giveaway is a board post offering furniture or appliances for free.
type Giveaway struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURLs   []string  `json:"image_urls"`
	Prefecture  string    `json:"prefecture"`
	City        string    `json:"city"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	GiveawayStatusOpen   = "open"
	GiveawayStatusClosed = "closed"
)
