package refdata

import (
	"database/sql"
	"fmt"
)

// New creates a new reference data Lookup backed by the shared database.
func New(db *sql.DB) Lookup {
	return &store{
		db: db,
	}
}

func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	var cityID sql.NullString
	err := s.db.QueryRow("SELECT id, name, age_group, city_id FROM players WHERE id = ?", playerID).
		Scan(&p.ID, &p.Name, &p.AgeGroup, &cityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query player: %w", err)
	}
	p.CityID = cityID.String
	return &p, nil
}

func (s *store) GetVenue(venueID string) (*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v Venue
	err := s.db.QueryRow("SELECT id, name, city_id, latitude, longitude FROM venues WHERE id = ?", venueID).
		Scan(&v.ID, &v.Name, &v.CityID, &v.Latitude, &v.Longitude)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query venue: %w", err)
	}
	return &v, nil
}

func (s *store) GetSport(sportID string) (*Sport, error) {
	return s.sportBy("id", sportID)
}

func (s *store) GetSportBySlug(slug string) (*Sport, error) {
	return s.sportBy("slug", slug)
}

func (s *store) sportBy(column, value string) (*Sport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sp Sport
	err := s.db.QueryRow("SELECT id, slug, name FROM sports WHERE "+column+" = ?", value).
		Scan(&sp.ID, &sp.Slug, &sp.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query sport: %w", err)
	}
	return &sp, nil
}

func (s *store) GetCity(cityID string) (*City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c City
	err := s.db.QueryRow("SELECT id, name, country_id FROM cities WHERE id = ?", cityID).
		Scan(&c.ID, &c.Name, &c.CountryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query city: %w", err)
	}
	return &c, nil
}

func (s *store) GetCountry(countryID string) (*Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Country
	err := s.db.QueryRow("SELECT id, name FROM countries WHERE id = ?", countryID).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query country: %w", err)
	}
	return &c, nil
}
