package invitations

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/refdata"
)

// NewService creates a new invitation Service.
func NewService(db *sql.DB, ref refdata.Lookup, creator matches.Creator) Service {
	return &service{
		db:      db,
		ref:     ref,
		creator: creator,
		now:     time.Now,
	}
}

// Send creates a pending invitation after validating both parties, the
// venue, the sport and the schedule. At most one pending invitation may
// exist between a pair of players, regardless of direction.
func (s *service) Send(senderID, receiverID, venueID, sportID string, scheduledAt time.Time, message string) (*Invitation, error) {
	if senderID == receiverID {
		return nil, ErrSelfInvitation
	}
	if !scheduledAt.After(s.now()) {
		return nil, ErrPastSchedule
	}
	venue, err := s.ref.GetVenue(venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue: %w", err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	sport, err := s.ref.GetSport(sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sport: %w", err)
	}
	if sport == nil {
		return nil, ErrSportNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The duplicate check covers both directions of the pair.
	var duplicate bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE status = ?
			  AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))
		)
	`, string(StatusPending), senderID, receiverID, receiverID, senderID).Scan(&duplicate)
	if err != nil {
		return nil, fmt.Errorf("failed to check for pending invitation: %w", err)
	}
	if duplicate {
		return nil, ErrDuplicatePending
	}

	inv := &Invitation{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		VenueID:     venueID,
		SportID:     sportID,
		ScheduledAt: scheduledAt,
		Message:     message,
		Status:      StatusPending,
		CreatedAt:   s.now(),
	}
	_, err = tx.Exec(`
		INSERT INTO invitations (id, sender_id, receiver_id, venue_id, sport_id, scheduled_at, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.SenderID, inv.ReceiverID, inv.VenueID, inv.SportID, inv.ScheduledAt.Unix(), inv.Message, string(inv.Status), inv.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// Sending counts toward the sender's invite tally across all sports,
	// so the credit lands on the invitation's sport row.
	_, err = tx.Exec(`
		INSERT INTO player_stats (player_id, sport_id, users_invited)
		VALUES (?, ?, 1)
		ON CONFLICT(player_id, sport_id) DO UPDATE SET
			users_invited = users_invited + 1;
	`, senderID, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit invite tally: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit invitation: %w", err)
	}
	log.Info("Invitation sent", "invitationID", inv.ID, "sender", senderID, "receiver", receiverID)
	return inv, nil
}

// Respond resolves a pending invitation as the receiver. Accepting spawns
// the match in the same transaction that flips the invitation, so an
// accepted invitation without a match can never be observed.
func (s *service) Respond(invitationID, responderID string, accept bool) (*RespondResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.getLocked(invitationID)
	if err != nil {
		return nil, err
	}
	if inv.ReceiverID != responderID {
		return nil, ErrForbidden
	}

	newStatus := StatusDeclined
	if accept {
		newStatus = StatusAccepted
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE invitations SET status = ?, responded_at = ?
		WHERE id = ? AND status = ?
	`, string(newStatus), s.now().Unix(), invitationID, string(StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to respond to invitation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotPending
	}

	result := &RespondResult{Status: newStatus}
	if accept {
		match, err := s.creator.CreateFromInvitationTx(tx, matches.InvitationRef{
			InvitationID: inv.ID,
			VenueID:      inv.VenueID,
			SportID:      inv.SportID,
			SenderID:     inv.SenderID,
			ReceiverID:   inv.ReceiverID,
		})
		if err != nil {
			return nil, err
		}
		result.MatchID = match.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit response: %w", err)
	}
	log.Info("Invitation resolved", "invitationID", invitationID, "status", newStatus, "matchID", result.MatchID)
	return result, nil
}

// Cancel withdraws a pending invitation as its sender.
func (s *service) Cancel(invitationID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.getLocked(invitationID)
	if err != nil {
		return err
	}
	if inv.SenderID != requesterID {
		return ErrForbidden
	}

	res, err := s.db.Exec(`
		UPDATE invitations SET status = ?, responded_at = ?
		WHERE id = ? AND status = ?
	`, string(StatusCancelled), s.now().Unix(), invitationID, string(StatusPending))
	if err != nil {
		return fmt.Errorf("failed to cancel invitation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotPending
	}
	log.Info("Invitation cancelled", "invitationID", invitationID)
	return nil
}

// List returns the player's invitations on one side, newest first, joined
// with counterpart identity and venue name.
func (s *service) List(playerID string, direction Direction) ([]View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ownCol, counterpartCol := "receiver_id", "sender_id"
	if direction == DirectionSent {
		ownCol, counterpartCol = "sender_id", "receiver_id"
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.sender_id, i.receiver_id, i.venue_id, i.sport_id,
		       i.scheduled_at, i.message, i.status, i.created_at, i.responded_at,
		       p.id, p.name, v.name
		FROM invitations i
		JOIN players p ON p.id = i.%s
		JOIN venues v ON v.id = i.venue_id
		WHERE i.%s = ?
		ORDER BY i.created_at DESC
	`, counterpartCol, ownCol)

	rows, err := s.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var result []View
	for rows.Next() {
		var view View
		var scheduledAt, createdAt int64
		var respondedAt sql.NullInt64
		var message sql.NullString
		var status string
		err := rows.Scan(
			&view.ID, &view.SenderID, &view.ReceiverID, &view.VenueID, &view.SportID,
			&scheduledAt, &message, &status, &createdAt, &respondedAt,
			&view.CounterpartID, &view.CounterpartName, &view.VenueName,
		)
		if err != nil {
			log.Error("Failed to scan invitation row", "error", err)
			continue
		}
		view.ScheduledAt = time.Unix(scheduledAt, 0)
		view.Message = message.String
		view.Status = Status(status)
		view.CreatedAt = time.Unix(createdAt, 0)
		if respondedAt.Valid {
			t := time.Unix(respondedAt.Int64, 0)
			view.RespondedAt = &t
		}
		result = append(result, view)
	}
	return result, rows.Err()
}

// CountPending returns the number of pending invitations awaiting the
// player's response.
func (s *service) CountPending(playerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM invitations WHERE receiver_id = ? AND status = ?
	`, playerID, string(StatusPending)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending invitations: %w", err)
	}
	return count, nil
}

func (s *service) getLocked(invitationID string) (*Invitation, error) {
	var inv Invitation
	var scheduledAt, createdAt int64
	var respondedAt sql.NullInt64
	var message sql.NullString
	var status string
	err := s.db.QueryRow(`
		SELECT id, sender_id, receiver_id, venue_id, sport_id, scheduled_at, message, status, created_at, responded_at
		FROM invitations WHERE id = ?
	`, invitationID).Scan(
		&inv.ID, &inv.SenderID, &inv.ReceiverID, &inv.VenueID, &inv.SportID,
		&scheduledAt, &message, &status, &createdAt, &respondedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	inv.ScheduledAt = time.Unix(scheduledAt, 0)
	inv.Message = message.String
	inv.Status = Status(status)
	inv.CreatedAt = time.Unix(createdAt, 0)
	if respondedAt.Valid {
		t := time.Unix(respondedAt.Int64, 0)
		inv.RespondedAt = &t
	}
	return &inv, nil
}
