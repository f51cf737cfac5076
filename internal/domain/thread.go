package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentRef identifies the piece of content a thread is anchored to,
// either a listing or a room request.
type ContentRef struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

const (
	ContentTypeListing = "listing"
	ContentTypeRequest = "request"
)

// Thread is a two-party conversation between the owner of a piece of
// content (host) and the user who contacted them (seeker). At most one
// thread exists per (content, seeker, host) triple.
type Thread struct {
	ID             uuid.UUID `json:"id"`
	ContentType    string    `json:"content_type"`
	ContentID      uuid.UUID `json:"content_id"`
	HostID         uuid.UUID `json:"host_id"`
	SeekerID       uuid.UUID `json:"seeker_id"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Participant reports whether the given user is one of the thread's two
// participants.
func (t *Thread) Participant(userID uuid.UUID) bool {
	return userID == t.HostID || userID == t.SeekerID
}

// Other returns the participant opposite to the given one.
func (t *Thread) Other(userID uuid.UUID) uuid.UUID {
	if userID == t.HostID {
		return t.SeekerID
	}
	return t.HostID
}

type Message struct {
	ID        uuid.UUID  `json:"id"`
	ThreadID  uuid.UUID  `json:"thread_id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// ThreadView is a thread decorated for list rendering. Unread is derived
// per read, never persisted.
type ThreadView struct {
	Thread      *Thread  `json:"thread"`
	LastMessage *Message `json:"last_message,omitempty"`
	Unread      bool     `json:"unread"`
}
