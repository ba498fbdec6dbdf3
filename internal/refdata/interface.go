package refdata

// Lookup defines the read-only reference data interface consumed by the
// competition and presence components. Every method returns (nil, nil)
// when the entity does not exist; errors are reserved for database
// failures.
type Lookup interface {
	GetPlayer(playerID string) (*Player, error)
	GetVenue(venueID string) (*Venue, error)
	GetSport(sportID string) (*Sport, error)
	GetSportBySlug(slug string) (*Sport, error)
	GetCity(cityID string) (*City, error)
	GetCountry(countryID string) (*Country, error)
}
