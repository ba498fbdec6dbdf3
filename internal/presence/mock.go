package presence

import "sync"

// MockTracker is a mock implementation of the Tracker interface for testing.
type MockTracker struct {
	mu sync.Mutex

	CheckInFunc           func(playerID, venueID string, lat, lng float64) (*Record, error)
	CheckOutFunc          func(playerID, venueID string) error
	HeartbeatFunc         func(playerID, venueID string, lat, lng float64) (*HeartbeatResult, error)
	GetStatusFunc         func(playerID, venueID string) (*Status, error)
	ListActiveAtVenueFunc func(venueID string) ([]Record, error)
	DeleteStaleFunc       func() (int, error)

	CheckInCalls           [][2]string
	CheckOutCalls          [][2]string
	HeartbeatCalls         [][2]string
	GetStatusCalls         [][2]string
	ListActiveAtVenueCalls []string
	DeleteStaleCalls       int
}

// NewMockTracker creates a new mock presence tracker.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

func (m *MockTracker) CheckIn(playerID, venueID string, lat, lng float64) (*Record, error) {
	m.mu.Lock()
	m.CheckInCalls = append(m.CheckInCalls, [2]string{playerID, venueID})
	m.mu.Unlock()
	if m.CheckInFunc != nil {
		return m.CheckInFunc(playerID, venueID, lat, lng)
	}
	return &Record{PlayerID: playerID, VenueID: venueID, Latitude: lat, Longitude: lng}, nil
}

func (m *MockTracker) CheckOut(playerID, venueID string) error {
	m.mu.Lock()
	m.CheckOutCalls = append(m.CheckOutCalls, [2]string{playerID, venueID})
	m.mu.Unlock()
	if m.CheckOutFunc != nil {
		return m.CheckOutFunc(playerID, venueID)
	}
	return nil
}

func (m *MockTracker) Heartbeat(playerID, venueID string, lat, lng float64) (*HeartbeatResult, error) {
	m.mu.Lock()
	m.HeartbeatCalls = append(m.HeartbeatCalls, [2]string{playerID, venueID})
	m.mu.Unlock()
	if m.HeartbeatFunc != nil {
		return m.HeartbeatFunc(playerID, venueID, lat, lng)
	}
	return &HeartbeatResult{}, nil
}

func (m *MockTracker) GetStatus(playerID, venueID string) (*Status, error) {
	m.mu.Lock()
	m.GetStatusCalls = append(m.GetStatusCalls, [2]string{playerID, venueID})
	m.mu.Unlock()
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(playerID, venueID)
	}
	return &Status{}, nil
}

func (m *MockTracker) ListActiveAtVenue(venueID string) ([]Record, error) {
	m.mu.Lock()
	m.ListActiveAtVenueCalls = append(m.ListActiveAtVenueCalls, venueID)
	m.mu.Unlock()
	if m.ListActiveAtVenueFunc != nil {
		return m.ListActiveAtVenueFunc(venueID)
	}
	return nil, nil
}

func (m *MockTracker) DeleteStale() (int, error) {
	m.mu.Lock()
	m.DeleteStaleCalls++
	m.mu.Unlock()
	if m.DeleteStaleFunc != nil {
		return m.DeleteStaleFunc()
	}
	return 0, nil
}
