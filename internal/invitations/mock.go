package invitations

import (
	"sync"
	"time"
)

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	mu sync.Mutex

	SendFunc         func(senderID, receiverID, venueID, sportID string, scheduledAt time.Time, message string) (*Invitation, error)
	RespondFunc      func(invitationID, responderID string, accept bool) (*RespondResult, error)
	CancelFunc       func(invitationID, requesterID string) error
	ListFunc         func(playerID string, direction Direction) ([]View, error)
	CountPendingFunc func(playerID string) (int, error)

	SendCalls         []Invitation
	RespondCalls      [][2]string
	CancelCalls       [][2]string
	ListCalls         []string
	CountPendingCalls []string
}

// NewMockService creates a new mock invitation service.
func NewMockService() *MockService {
	return &MockService{}
}

func (m *MockService) Send(senderID, receiverID, venueID, sportID string, scheduledAt time.Time, message string) (*Invitation, error) {
	m.mu.Lock()
	m.SendCalls = append(m.SendCalls, Invitation{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		VenueID:     venueID,
		SportID:     sportID,
		ScheduledAt: scheduledAt,
		Message:     message,
	})
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(senderID, receiverID, venueID, sportID, scheduledAt, message)
	}
	return &Invitation{ID: "mock-invitation", Status: StatusPending}, nil
}

func (m *MockService) Respond(invitationID, responderID string, accept bool) (*RespondResult, error) {
	m.mu.Lock()
	m.RespondCalls = append(m.RespondCalls, [2]string{invitationID, responderID})
	m.mu.Unlock()
	if m.RespondFunc != nil {
		return m.RespondFunc(invitationID, responderID, accept)
	}
	if accept {
		return &RespondResult{Status: StatusAccepted, MatchID: "mock-match"}, nil
	}
	return &RespondResult{Status: StatusDeclined}, nil
}

func (m *MockService) Cancel(invitationID, requesterID string) error {
	m.mu.Lock()
	m.CancelCalls = append(m.CancelCalls, [2]string{invitationID, requesterID})
	m.mu.Unlock()
	if m.CancelFunc != nil {
		return m.CancelFunc(invitationID, requesterID)
	}
	return nil
}

func (m *MockService) List(playerID string, direction Direction) ([]View, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, playerID)
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(playerID, direction)
	}
	return nil, nil
}

func (m *MockService) CountPending(playerID string) (int, error) {
	m.mu.Lock()
	m.CountPendingCalls = append(m.CountPendingCalls, playerID)
	m.mu.Unlock()
	if m.CountPendingFunc != nil {
		return m.CountPendingFunc(playerID)
	}
	return 0, nil
}
