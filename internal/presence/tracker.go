package presence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courtreign/courtreign/internal/refdata"
)

// NewTracker creates a new presence Tracker.
func NewTracker(db *sql.DB, ref refdata.Lookup) Tracker {
	return &tracker{
		db:  db,
		ref: ref,
		now: time.Now,
	}
}

// CheckIn records the player at the venue if they are within the manual
// check-in distance. A player holds presence at one venue at most, so
// rows at other venues are evicted in the same transaction.
func (t *tracker) CheckIn(playerID, venueID string, lat, lng float64) (*Record, error) {
	venue, err := t.ref.GetVenue(venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}

	distance := DistanceMeters(lat, lng, venue.Latitude, venue.Longitude)
	if distance > MaxCheckInDistanceMeters {
		return nil, &TooFarError{DistanceMeters: distance}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.upsertLocked(playerID, venueID, lat, lng)
}

func (t *tracker) upsertLocked(playerID, venueID string, lat, lng float64) (*Record, error) {
	record := &Record{
		PlayerID:   playerID,
		VenueID:    venueID,
		Latitude:   lat,
		Longitude:  lng,
		LastSeenAt: t.now(),
	}

	tx, err := t.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM active_presence WHERE player_id = ? AND venue_id != ?
	`, playerID, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to evict other presence rows: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO active_presence (player_id, venue_id, latitude, longitude, last_seen_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id, venue_id) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			last_seen_at = excluded.last_seen_at;
	`, playerID, venueID, lat, lng, record.LastSeenAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert presence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}
	log.Debug("Player checked in", "playerID", playerID, "venueID", venueID)
	return record, nil
}

// CheckOut removes the presence row. Checking out when absent is not an
// error.
func (t *tracker) CheckOut(playerID, venueID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleteLocked(playerID, venueID)
}

func (t *tracker) deleteLocked(playerID, venueID string) error {
	_, err := t.db.Exec(`
		DELETE FROM active_presence WHERE player_id = ? AND venue_id = ?
	`, playerID, venueID)
	if err != nil {
		return fmt.Errorf("failed to check out: %w", err)
	}
	return nil
}

// Heartbeat applies the geofence hysteresis: beyond the check-out radius
// an existing presence is dropped, within the check-in radius a missing
// presence is created, and the band in between preserves whatever state
// the player is in. A fresh heartbeat also refreshes lastSeenAt.
func (t *tracker) Heartbeat(playerID, venueID string, lat, lng float64) (*HeartbeatResult, error) {
	venue, err := t.ref.GetVenue(venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	distance := DistanceMeters(lat, lng, venue.Latitude, venue.Longitude)

	t.mu.Lock()
	defer t.mu.Unlock()

	checkedIn, _, err := t.statusLocked(playerID, venueID)
	if err != nil {
		return nil, err
	}

	result := &HeartbeatResult{CheckedIn: checkedIn, DistanceMeters: distance}
	switch {
	case checkedIn && distance > AutoCheckOutRadiusMeters:
		if err := t.deleteLocked(playerID, venueID); err != nil {
			return nil, err
		}
		result.CheckedIn = false
		result.Transitioned = true
		log.Debug("Heartbeat auto check-out", "playerID", playerID, "venueID", venueID, "distance", distance)
	case !checkedIn && distance <= AutoCheckInRadiusMeters:
		if _, err := t.upsertLocked(playerID, venueID, lat, lng); err != nil {
			return nil, err
		}
		result.CheckedIn = true
		result.Transitioned = true
		log.Debug("Heartbeat auto check-in", "playerID", playerID, "venueID", venueID, "distance", distance)
	case checkedIn:
		// Still inside the dead-band or closer; keep the row fresh.
		if _, err := t.upsertLocked(playerID, venueID, lat, lng); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetStatus reports whether the player is currently checked in at the
// venue. A stale row reads as absent.
func (t *tracker) GetStatus(playerID, venueID string) (*Status, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	checkedIn, lastSeen, err := t.statusLocked(playerID, venueID)
	if err != nil {
		return nil, err
	}
	status := &Status{CheckedIn: checkedIn}
	if checkedIn {
		status.LastSeenAt = &lastSeen
	}
	return status, nil
}

func (t *tracker) statusLocked(playerID, venueID string) (bool, time.Time, error) {
	var lastSeenUnix int64
	err := t.db.QueryRow(`
		SELECT last_seen_at FROM active_presence WHERE player_id = ? AND venue_id = ?
	`, playerID, venueID).Scan(&lastSeenUnix)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, fmt.Errorf("failed to read presence: %w", err)
	}
	lastSeen := time.Unix(lastSeenUnix, 0)
	if t.now().Sub(lastSeen) > StaleThreshold {
		return false, time.Time{}, nil
	}
	return true, lastSeen, nil
}

// ListActiveAtVenue returns the non-stale presence rows at a venue,
// longest-present first.
func (t *tracker) ListActiveAtVenue(venueID string) ([]Record, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := t.now().Add(-StaleThreshold).Unix()
	rows, err := t.db.Query(`
		SELECT player_id, venue_id, latitude, longitude, last_seen_at
		FROM active_presence
		WHERE venue_id = ? AND last_seen_at > ?
		ORDER BY last_seen_at ASC
	`, venueID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var record Record
		var lastSeenUnix int64
		if err := rows.Scan(&record.PlayerID, &record.VenueID, &record.Latitude, &record.Longitude, &lastSeenUnix); err != nil {
			log.Error("Failed to scan presence row", "error", err)
			continue
		}
		record.LastSeenAt = time.Unix(lastSeenUnix, 0)
		result = append(result, record)
	}
	return result, rows.Err()
}

// DeleteStale physically removes rows older than the stale threshold and
// returns how many were dropped. Read paths already ignore them, so the
// sweep's timing is not load-bearing.
func (t *tracker) DeleteStale() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-StaleThreshold).Unix()
	res, err := t.db.Exec(`DELETE FROM active_presence WHERE last_seen_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale presence: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		log.Info("Swept stale presence rows", "count", affected)
	}
	return int(affected), nil
}
