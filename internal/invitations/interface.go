package invitations

import "time"

// Service defines the invitation lifecycle operations.
type Service interface {
	Send(senderID, receiverID, venueID, sportID string, scheduledAt time.Time, message string) (*Invitation, error)
	Respond(invitationID, responderID string, accept bool) (*RespondResult, error)
	Cancel(invitationID, requesterID string) error
	List(playerID string, direction Direction) ([]View, error)
	CountPending(playerID string) (int, error)
}
