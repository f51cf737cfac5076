package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoomRequest is a "want to rent" post by a seeker looking for a room.
type RoomRequest struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Prefecture  string    `json:"prefecture"`
	City        string    `json:"city"`
	BudgetYen   *int      `json:"budget_yen,omitempty"`
	MoveInMonth *string   `json:"move_in_month,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
