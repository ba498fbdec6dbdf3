package refdata

import (
	"database/sql"
	"sync"
)

// store handles read-only reference data lookups.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is the identity profile consumed by the competition components.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AgeGroup string `json:"age_group"`
	CityID   string `json:"city_id,omitempty"`
}

// Venue is a physical location matches are anchored to.
type Venue struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CityID    string  `json:"city_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Sport struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type City struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
