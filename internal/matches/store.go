package matches

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new match Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// CreateFromInvitationTx inserts the match spawned by an accepted
// invitation on the caller's transaction. The inviting party becomes
/// player1. The match starts out 'accepted': both players already agreed to
// play by resolving the invitation.
func (s *store) CreateFromInvitationTx(tx *sql.Tx, ref InvitationRef) (*Match, error) {
	match := &Match{
		ID:           uuid.New().String(),
		VenueID:      ref.VenueID,
		SportID:      ref.SportID,
		Player1ID:    ref.SenderID,
		Player2ID:    ref.ReceiverID,
		Status:       StatusAccepted,
		InvitationID: ref.InvitationID,
		CreatedAt:    time.Now(),
	}

	_, err := tx.Exec(`
		INSERT INTO matches (id, venue_id, sport_id, player1_id, player2_id, status, invitation_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.VenueID, match.SportID, match.Player1ID, match.Player2ID, string(match.Status), match.InvitationID, match.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("Created match from invitation", "matchID", match.ID, "invitationID", ref.InvitationID)
	return match, nil
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectMatch+" WHERE id = ?", matchID)
	match, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

func (s *store) ListByPlayer(playerID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectMatch+" WHERE player1_id = ? OR player2_id = ? ORDER BY created_at DESC", playerID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var result []*Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		result = append(result, match)
	}
	return result, rows.Err()
}

// Start transitions accepted -> in_progress and stamps started_at.
func (s *store) Start(matchID string) error {
	return s.transition(matchID, StatusAccepted, StatusInProgress,
		"started_at = ?", time.Now().Unix())
}

// MarkUploading transitions in_progress -> uploading and records the media
// reference the scoring oracle will analyze.
func (s *store) MarkUploading(matchID, mediaRef string) error {
	return s.transition(matchID, StatusInProgress, StatusUploading,
		"media_ref = ?", mediaRef)
}

// MarkAnalyzing transitions uploading -> analyzing.
func (s *store) MarkAnalyzing(matchID string) error {
	return s.transition(matchID, StatusUploading, StatusAnalyzing, "")
}

// DisputeFromAnalyzing moves a match the oracle could not score into
// disputed with a system-generated reason.
func (s *store) DisputeFromAnalyzing(matchID, reason string) error {
	return s.transition(matchID, StatusAnalyzing, StatusDisputed,
		"dispute_reason = ?, disputed_at = ?", reason, time.Now().Unix())
}

// transition performs a single conditional update keyed on the expected
// source state. Zero rows affected means the caller lost the race or the
// match is in another state; both surface as ErrInvalidState.
func (s *store) transition(matchID string, from, to Status, extraSet string, extraArgs ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "UPDATE matches SET status = ?"
	args := []any{string(to)}
	if extraSet != "" {
		query += ", " + extraSet
		args = append(args, extraArgs...)
	}
	query += " WHERE id = ? AND status = ?"
	args = append(args, matchID, string(from))

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		if exists, err := s.exists(matchID); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: match must be %s", ErrInvalidState, from)
	}
	log.Debug("Match transitioned", "matchID", matchID, "from", from, "to", to)
	return nil
}

// Complete transitions analyzing -> completed and credits both players'
// aggregate stats in the same transaction, so a rank query never observes
// a completed match without its reward effects.
func (s *store) Complete(matchID string, result Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin completion transaction: %w", err)
	}
	defer tx.Rollback()

	var sportID, player1ID, player2ID string
	err = tx.QueryRow("SELECT sport_id, player1_id, player2_id FROM matches WHERE id = ?", matchID).
		Scan(&sportID, &player1ID, &player2ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read match for completion: %w", err)
	}

	var winnerID any
	tie := result.WinnerID == ""
	if !tie {
		winnerID = result.WinnerID
	}

	res, err := tx.Exec(`
		UPDATE matches
		SET status = ?, player1_score = ?, player2_score = ?, winner_id = ?,
		    winner_xp = ?, winner_rp = ?, loser_xp = ?, tie_pending_review = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, string(StatusCompleted), result.Player1Score, result.Player2Score, winnerID,
		result.WinnerXP, result.WinnerRP, result.LoserXP, tie, time.Now().Unix(),
		matchID, string(StatusAnalyzing))
	if err != nil {
		return fmt.Errorf("failed to complete match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: match must be %s", ErrInvalidState, StatusAnalyzing)
	}

	for _, credit := range statCredits(sportID, player1ID, player2ID, result) {
		_, err = tx.Exec(`
			INSERT INTO player_stats (player_id, sport_id, total_xp, total_rp, available_rp, matches_played, matches_won, matches_lost, total_points_scored)
			VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)
			ON CONFLICT(player_id, sport_id) DO UPDATE SET
				total_xp = total_xp + excluded.total_xp,
				total_rp = total_rp + excluded.total_rp,
				available_rp = available_rp + excluded.available_rp,
				matches_played = matches_played + 1,
				matches_won = matches_won + excluded.matches_won,
				matches_lost = matches_lost + excluded.matches_lost,
				total_points_scored = total_points_scored + excluded.total_points_scored;
		`, credit.playerID, sportID, credit.xp, credit.rp, credit.rp, credit.won, credit.lost, credit.points)
		if err != nil {
			return fmt.Errorf("failed to credit player stats for %s: %w", credit.playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit completion: %w", err)
	}
	log.Info("Match completed", "matchID", matchID, "winner", result.WinnerID, "tie", tie)
	return nil
}

type statCredit struct {
	playerID string
	xp       int
	rp       int
	won      int
	lost     int
	points   int
}

// statCredits maps a completion onto per-player aggregate deltas. On a tie
// both players receive the participation XP only, and neither win/loss
// counter moves.
func statCredits(sportID, player1ID, player2ID string, result Completion) []statCredit {
	p1 := statCredit{playerID: player1ID, points: result.Player1Score}
	p2 := statCredit{playerID: player2ID, points: result.Player2Score}

	switch result.WinnerID {
	case player1ID:
		p1.xp, p1.rp, p1.won = result.WinnerXP, result.WinnerRP, 1
		p2.xp, p2.lost = result.LoserXP, 1
	case player2ID:
		p2.xp, p2.rp, p2.won = result.WinnerXP, result.WinnerRP, 1
		p1.xp, p1.lost = result.LoserXP, 1
	default:
		p1.xp = result.LoserXP
		p2.xp = result.LoserXP
	}
	return []statCredit{p1, p2}
}

// Dispute flags a completed match, allowed only while the other
// participant's agreement is still unrecorded.
func (s *store) Dispute(matchID, disputedBy, reason, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches
		SET status = ?, dispute_reason = ?, dispute_details = ?, disputed_by = ?, disputed_at = ?
		WHERE id = ? AND status = ?
		  AND ((player1_id = ? AND player2_agreed = 0) OR (player2_id = ? AND player1_agreed = 0))
	`, string(StatusDisputed), reason, details, disputedBy, time.Now().Unix(),
		matchID, string(StatusCompleted), disputedBy, disputedBy)
	if err != nil {
		return fmt.Errorf("failed to dispute match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		if exists, err := s.exists(matchID); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: match must be %s with the counterpart's agreement unrecorded", ErrInvalidState, StatusCompleted)
	}
	log.Info("Match disputed", "matchID", matchID, "by", disputedBy, "reason", reason)
	return nil
}

// SetAgreement records the caller's own agreement flag on a completed
// match. Setting it again is a no-op rather than an error.
func (s *store) SetAgreement(matchID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches
		SET player1_agreed = CASE WHEN player1_id = ? THEN 1 ELSE player1_agreed END,
		    player2_agreed = CASE WHEN player2_id = ? THEN 1 ELSE player2_agreed END
		WHERE id = ? AND status = ? AND (player1_id = ? OR player2_id = ?)
	`, playerID, playerID, matchID, string(StatusCompleted), playerID, playerID)
	if err != nil {
		return fmt.Errorf("failed to set agreement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		if exists, err := s.exists(matchID); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: match must be %s", ErrInvalidState, StatusCompleted)
	}
	return nil
}

// Cancel moves a match to cancelled from any of its non-terminal,
// pre-scoring states. No rewards are granted.
func (s *store) Cancel(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches SET status = ? WHERE id = ? AND status IN (?, ?, ?)
	`, string(StatusCancelled), matchID, string(StatusPending), string(StatusAccepted), string(StatusInProgress))
	if err != nil {
		return fmt.Errorf("failed to cancel match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		if exists, err := s.exists(matchID); err != nil {
			return err
		} else if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: match must be %s, %s or %s", ErrInvalidState, StatusPending, StatusAccepted, StatusInProgress)
	}
	log.Info("Match cancelled", "matchID", matchID)
	return nil
}

func (s *store) exists(matchID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE id = ?)", matchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	return exists, nil
}

const selectMatch = `
	SELECT id, venue_id, sport_id, player1_id, player2_id, player1_score, player2_score,
	       winner_id, status, player1_agreed, player2_agreed, tie_pending_review,
	       invitation_id, media_ref, winner_xp, winner_rp, loser_xp,
	       dispute_reason, dispute_details, disputed_by, disputed_at,
	       created_at, started_at, completed_at
	FROM matches`

// scanMatch scans a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	var p1Score, p2Score, winnerXP, winnerRP, loserXP sql.NullInt64
	var winnerID, invitationID, mediaRef, disputeReason, disputeDetails, disputedBy sql.NullString
	var disputedAt, startedAt, completedAt sql.NullInt64
	var createdAt int64
	var status string

	err := scanner.Scan(
		&m.ID, &m.VenueID, &m.SportID, &m.Player1ID, &m.Player2ID, &p1Score, &p2Score,
		&winnerID, &status, &m.Player1Agreed, &m.Player2Agreed, &m.TiePendingReview,
		&invitationID, &mediaRef, &winnerXP, &winnerRP, &loserXP,
		&disputeReason, &disputeDetails, &disputedBy, &disputedAt,
		&createdAt, &startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Status = Status(status)
	m.WinnerID = winnerID.String
	m.InvitationID = invitationID.String
	m.MediaRef = mediaRef.String
	m.DisputeReason = disputeReason.String
	m.DisputeDetails = disputeDetails.String
	m.DisputedBy = disputedBy.String
	m.CreatedAt = time.Unix(createdAt, 0)

	m.Player1Score = nullableInt(p1Score)
	m.Player2Score = nullableInt(p2Score)
	m.WinnerXP = nullableInt(winnerXP)
	m.WinnerRP = nullableInt(winnerRP)
	m.LoserXP = nullableInt(loserXP)
	m.DisputedAt = nullableTime(disputedAt)
	m.StartedAt = nullableTime(startedAt)
	m.CompletedAt = nullableTime(completedAt)

	return &m, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullableTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}
