package matches

import "database/sql"

// Creator is the narrow surface the invitation service uses to spawn a
// match inside the transaction that resolved the invitation. Matches are
// created exclusively through this interface.
type Creator interface {
	CreateFromInvitationTx(tx *sql.Tx, ref InvitationRef) (*Match, error)
}

// Store defines the persistence operations for the match lifecycle. Every
// transition is a conditional update keyed on the expected source state;
// implementations report a lost race as ErrInvalidState.
type Store interface {
	Creator
	GetMatch(matchID string) (*Match, error)
	ListByPlayer(playerID string) ([]*Match, error)
	Start(matchID string) error
	MarkUploading(matchID, mediaRef string) error
	MarkAnalyzing(matchID string) error
	Complete(matchID string, result Completion) error
	DisputeFromAnalyzing(matchID, reason string) error
	Dispute(matchID, disputedBy, reason, details string) error
	SetAgreement(matchID, playerID string) error
	Cancel(matchID string) error
}
