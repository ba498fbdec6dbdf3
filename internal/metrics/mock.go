package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	invitationsSent   int
	matchesCompleted  int
	matchesDisputed   int
	oracleFailures    int
	presenceCheckIns  int
	notifSent         int
	notifFailed       int
	analysisDurations []float64
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		analysisDurations: make([]float64, 0),
	}
}

func (m *Mock) IncInvitationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invitationsSent++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncMatchesDisputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesDisputed++
}

func (m *Mock) IncOracleFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracleFailures++
}

func (m *Mock) IncPresenceCheckIns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presenceCheckIns++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) ObserveAnalysisDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysisDurations = append(m.analysisDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// InvitationsSent returns the number of times IncInvitationsSent was called.
func (m *Mock) InvitationsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invitationsSent
}

// MatchesCompleted returns the number of times IncMatchesCompleted was called.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// MatchesDisputed returns the number of times IncMatchesDisputed was called.
func (m *Mock) MatchesDisputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesDisputed
}

// OracleFailures returns the number of times IncOracleFailures was called.
func (m *Mock) OracleFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.oracleFailures
}

// PresenceCheckIns returns the number of times IncPresenceCheckIns was called.
func (m *Mock) PresenceCheckIns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presenceCheckIns
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
