package domain

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Price             int       `json:"price"`
	Prefecture        string    `json:"prefecture"`
	City              string    `json:"city"`
	Address           string    `json:"address"`
	StationLine       string    `json:"station_line"`
	StationName       string    `json:"station_name"`
	WalkMinutes       *int      `json:"walk_minutes,omitempty"`
	RoomType          string    `json:"room_type"`
	GenderRestriction string    `json:"gender_restriction"`
	Amenities         []string  `json:"amenities"`
	ImageURLs         []string  `json:"image_urls"`
	IsPublic          bool      `json:"is_public"`
	Slug              string    `json:"slug,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	RoomTypePrivate     = "private"
	RoomTypeSemiPrivate = "semi_private"
	RoomTypeShared      = "shared"
)

const (
	GenderAny    = "any"
	GenderMale   = "male"
	GenderFemale = "female"
)
