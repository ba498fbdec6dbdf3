package matches

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusUploading  Status = "uploading"
	StatusAnalyzing  Status = "analyzing"
	StatusCompleted  Status = "completed"
	StatusDisputed   Status = "disputed"
	StatusCancelled  Status = "cancelled"
)

// Stable error kinds surfaced to callers.
var (
	ErrNotFound     = errors.New("match not found")
	ErrForbidden    = errors.New("not a participant of this match")
	ErrInvalidState = errors.New("operation invalid for current match state")
)

// Match is the record of a scored, disputable competition between two
// players at a venue. Cancelled matches are retained for audit.
type Match struct {
	ID               string     `json:"id"`
	VenueID          string     `json:"venue_id"`
	SportID          string     `json:"sport_id"`
	Player1ID        string     `json:"player1_id"`
	Player2ID        string     `json:"player2_id"`
	Player1Score     *int       `json:"player1_score,omitempty"`
	Player2Score     *int       `json:"player2_score,omitempty"`
	WinnerID         string     `json:"winner_id,omitempty"`
	Status           Status     `json:"status"`
	Player1Agreed    bool       `json:"player1_agreed"`
	Player2Agreed    bool       `json:"player2_agreed"`
	TiePendingReview bool       `json:"tie_pending_review"`
	InvitationID     string     `json:"invitation_id,omitempty"`
	MediaRef         string     `json:"media_ref,omitempty"`
	WinnerXP         *int       `json:"winner_xp,omitempty"`
	WinnerRP         *int       `json:"winner_rp,omitempty"`
	LoserXP          *int       `json:"loser_xp,omitempty"`
	DisputeReason    string     `json:"dispute_reason,omitempty"`
	DisputeDetails   string     `json:"dispute_details,omitempty"`
	DisputedBy       string     `json:"disputed_by,omitempty"`
	DisputedAt       *time.Time `json:"disputed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// IsParticipant reports whether playerID is one of the two match players.
func (m *Match) IsParticipant(playerID string) bool {
	return playerID == m.Player1ID || playerID == m.Player2ID
}

// InvitationRef carries the fields a freshly accepted invitation
// contributes to its match.
type InvitationRef struct {
	InvitationID string
	VenueID      string
	SportID      string
	SenderID     string
	ReceiverID   string
}

// Completion is the result of a successful analysis, applied to the match
// and both player_stats rows in one transaction.
type Completion struct {
	Player1Score int
	Player2Score int
	WinnerID     string // empty on a tie
	WinnerXP     int
	WinnerRP     int
	LoserXP      int
}

// store handles all database operations for matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
