package refdata

import "sync"

// Mock is a mock implementation of the Lookup interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	GetPlayerFunc      func(playerID string) (*Player, error)
	GetVenueFunc       func(venueID string) (*Venue, error)
	GetSportFunc       func(sportID string) (*Sport, error)
	GetSportBySlugFunc func(slug string) (*Sport, error)
	GetCityFunc        func(cityID string) (*City, error)
	GetCountryFunc     func(countryID string) (*Country, error)
}

// NewMock creates a new mock Lookup.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetPlayer(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *Mock) GetVenue(venueID string) (*Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetVenueFunc != nil {
		return m.GetVenueFunc(venueID)
	}
	return nil, nil
}

func (m *Mock) GetSport(sportID string) (*Sport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSportFunc != nil {
		return m.GetSportFunc(sportID)
	}
	return nil, nil
}

func (m *Mock) GetSportBySlug(slug string) (*Sport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSportBySlugFunc != nil {
		return m.GetSportBySlugFunc(slug)
	}
	return nil, nil
}

func (m *Mock) GetCity(cityID string) (*City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCityFunc != nil {
		return m.GetCityFunc(cityID)
	}
	return nil, nil
}

func (m *Mock) GetCountry(countryID string) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCountryFunc != nil {
		return m.GetCountryFunc(countryID)
	}
	return nil, nil
}
