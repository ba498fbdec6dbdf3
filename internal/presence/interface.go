package presence

// Tracker defines the venue presence operations. All reads treat rows
// older than StaleThreshold as absent regardless of when the cleanup
// sweep last ran.
type Tracker interface {
	CheckIn(playerID, venueID string, lat, lng float64) (*Record, error)
	CheckOut(playerID, venueID string) error
	Heartbeat(playerID, venueID string, lat, lng float64) (*HeartbeatResult, error)
	GetStatus(playerID, venueID string) (*Status, error)
	ListActiveAtVenue(venueID string) ([]Record, error)
	DeleteStale() (int, error)
}
