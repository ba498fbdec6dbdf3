package matches

import (
	"database/sql"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
type MockStore struct {
	mu sync.Mutex

	CreateFromInvitationTxFunc func(tx *sql.Tx, ref InvitationRef) (*Match, error)
	GetMatchFunc               func(matchID string) (*Match, error)
	ListByPlayerFunc           func(playerID string) ([]*Match, error)
	StartFunc                  func(matchID string) error
	MarkUploadingFunc          func(matchID, mediaRef string) error
	MarkAnalyzingFunc          func(matchID string) error
	CompleteFunc               func(matchID string, result Completion) error
	DisputeFromAnalyzingFunc   func(matchID, reason string) error
	DisputeFunc                func(matchID, disputedBy, reason, details string) error
	SetAgreementFunc           func(matchID, playerID string) error
	CancelFunc                 func(matchID string) error

	CreateFromInvitationTxCalls []InvitationRef
	GetMatchCalls               []string
	ListByPlayerCalls           []string
	StartCalls                  []string
	MarkUploadingCalls          [][2]string
	MarkAnalyzingCalls          []string
	CompleteCalls               []Completion
	DisputeFromAnalyzingCalls   [][2]string
	DisputeCalls                [][4]string
	SetAgreementCalls           [][2]string
	CancelCalls                 []string
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateFromInvitationTx(tx *sql.Tx, ref InvitationRef) (*Match, error) {
	m.mu.Lock()
	m.CreateFromInvitationTxCalls = append(m.CreateFromInvitationTxCalls, ref)
	m.mu.Unlock()
	if m.CreateFromInvitationTxFunc != nil {
		return m.CreateFromInvitationTxFunc(tx, ref)
	}
	return &Match{ID: "mock-match", Status: StatusAccepted, InvitationID: ref.InvitationID}, nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	m.GetMatchCalls = append(m.GetMatchCalls, matchID)
	m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListByPlayer(playerID string) ([]*Match, error) {
	m.mu.Lock()
	m.ListByPlayerCalls = append(m.ListByPlayerCalls, playerID)
	m.mu.Unlock()
	if m.ListByPlayerFunc != nil {
		return m.ListByPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) Start(matchID string) error {
	m.mu.Lock()
	m.StartCalls = append(m.StartCalls, matchID)
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(matchID)
	}
	return nil
}

func (m *MockStore) MarkUploading(matchID, mediaRef string) error {
	m.mu.Lock()
	m.MarkUploadingCalls = append(m.MarkUploadingCalls, [2]string{matchID, mediaRef})
	m.mu.Unlock()
	if m.MarkUploadingFunc != nil {
		return m.MarkUploadingFunc(matchID, mediaRef)
	}
	return nil
}

func (m *MockStore) MarkAnalyzing(matchID string) error {
	m.mu.Lock()
	m.MarkAnalyzingCalls = append(m.MarkAnalyzingCalls, matchID)
	m.mu.Unlock()
	if m.MarkAnalyzingFunc != nil {
		return m.MarkAnalyzingFunc(matchID)
	}
	return nil
}

func (m *MockStore) Complete(matchID string, result Completion) error {
	m.mu.Lock()
	m.CompleteCalls = append(m.CompleteCalls, result)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(matchID, result)
	}
	return nil
}

func (m *MockStore) DisputeFromAnalyzing(matchID, reason string) error {
	m.mu.Lock()
	m.DisputeFromAnalyzingCalls = append(m.DisputeFromAnalyzingCalls, [2]string{matchID, reason})
	m.mu.Unlock()
	if m.DisputeFromAnalyzingFunc != nil {
		return m.DisputeFromAnalyzingFunc(matchID, reason)
	}
	return nil
}

func (m *MockStore) Dispute(matchID, disputedBy, reason, details string) error {
	m.mu.Lock()
	m.DisputeCalls = append(m.DisputeCalls, [4]string{matchID, disputedBy, reason, details})
	m.mu.Unlock()
	if m.DisputeFunc != nil {
		return m.DisputeFunc(matchID, disputedBy, reason, details)
	}
	return nil
}

func (m *MockStore) SetAgreement(matchID, playerID string) error {
	m.mu.Lock()
	m.SetAgreementCalls = append(m.SetAgreementCalls, [2]string{matchID, playerID})
	m.mu.Unlock()
	if m.SetAgreementFunc != nil {
		return m.SetAgreementFunc(matchID, playerID)
	}
	return nil
}

func (m *MockStore) Cancel(matchID string) error {
	m.mu.Lock()
	m.CancelCalls = append(m.CancelCalls, matchID)
	m.mu.Unlock()
	if m.CancelFunc != nil {
		return m.CancelFunc(matchID)
	}
	return nil
}
