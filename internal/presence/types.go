package presence

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/courtreign/courtreign/internal/refdata"
)

// Geofence thresholds. The auto-check-out radius is deliberately larger
// than the auto-check-in radius, forming a dead-band that stops presence
// from flapping when a player hovers near the boundary.
const (
	AutoCheckInRadiusMeters  = 200.0
	AutoCheckOutRadiusMeters = 300.0
	MaxCheckInDistanceMeters = 500.0
	StaleThreshold           = 2 * time.Hour
	HeartbeatInterval        = 60 * time.Second
)

var (
	ErrVenueNotFound = errors.New("venue not found")
)

// TooFarError reports a manual check-in attempted beyond the maximum
// distance, carrying the computed distance for client display.
type TooFarError struct {
	DistanceMeters float64
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("too far from venue: %.0fm (max %.0fm)", e.DistanceMeters, MaxCheckInDistanceMeters)
}

// Record is one player's live presence at a venue.
type Record struct {
	PlayerID   string    `json:"player_id"`
	VenueID    string    `json:"venue_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Status is the check-in state read for a single (player, venue) pair.
type Status struct {
	CheckedIn  bool       `json:"checked_in"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// HeartbeatResult reports what a heartbeat did.
type HeartbeatResult struct {
	CheckedIn      bool    `json:"checked_in"`
	Transitioned   bool    `json:"transitioned"`
	DistanceMeters float64 `json:"distance_meters"`
}

// tracker owns the presence rows and the geofence rules around them.
type tracker struct {
	db  *sql.DB
	mu  sync.RWMutex
	ref refdata.Lookup
	now func() time.Time
}
