package invitations

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/refdata"
)

// Status is the lifecycle state of an invitation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

// Direction selects which side of an invitation a listing is for.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Stable error kinds surfaced to callers. The HTTP layer maps these to
// status codes with errors.Is.
var (
	ErrSelfInvitation   = errors.New("cannot invite yourself")
	ErrPastSchedule     = errors.New("scheduled time must be in the future")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrSportNotFound    = errors.New("sport not found")
	ErrDuplicatePending = errors.New("a pending invitation already exists between these players")
	ErrNotFound         = errors.New("invitation not found")
	ErrForbidden        = errors.New("not allowed to act on this invitation")
	ErrNotPending       = errors.New("invitation is no longer pending")
)

// Invitation is a player's intent to compete with another player at a
// venue. Never physically deleted; resolved invitations are retained.
type Invitation struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	ReceiverID  string     `json:"receiver_id"`
	VenueID     string     `json:"venue_id"`
	SportID     string     `json:"sport_id"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Message     string     `json:"message,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// View is an invitation joined with counterpart identity and venue name
// for listing.
type View struct {
	Invitation
	CounterpartID   string `json:"counterpart_id"`
	CounterpartName string `json:"counterpart_name"`
	VenueName       string `json:"venue_name"`
}

// RespondResult reports the outcome of responding to an invitation. MatchID
// is set only when the invitation was accepted.
type RespondResult struct {
	Status  Status `json:"status"`
	MatchID string `json:"match_id,omitempty"`
}

// service owns the invitation lifecycle.
type service struct {
	db      *sql.DB
	mu      sync.RWMutex
	ref     refdata.Lookup
	creator matches.Creator
	now     func() time.Time
}
