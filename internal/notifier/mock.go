package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc    func(result *MatchResult, dryRun bool) error
	SendDisputeNotificationFunc   func(matchID, reason string, dryRun bool) error
	FormatLeaderboardResponseFunc func(sportName string, rows []LeaderboardRow) (any, error)

	SendResultNotificationCalls  []SendResultNotificationCall
	SendDisputeNotificationCalls []SendDisputeNotificationCall
}

// SendResultNotificationCall holds the arguments for a call to SendResultNotification.
type SendResultNotificationCall struct {
	Result *MatchResult
	DryRun bool
}

// SendDisputeNotificationCall holds the arguments for a call to SendDisputeNotification.
type SendDisputeNotificationCall struct {
	MatchID string
	Reason  string
	DryRun  bool
}

// NewMock creates a new mock Notifier.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendResultNotification(result *MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, SendResultNotificationCall{Result: result, DryRun: dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendDisputeNotification(matchID, reason string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDisputeNotificationCalls = append(m.SendDisputeNotificationCalls, SendDisputeNotificationCall{MatchID: matchID, Reason: reason, DryRun: dryRun})
	if m.SendDisputeNotificationFunc != nil {
		return m.SendDisputeNotificationFunc(matchID, reason, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(sportName string, rows []LeaderboardRow) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(sportName, rows)
	}
	return nil, nil
}
