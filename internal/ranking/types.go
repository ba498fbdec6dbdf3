package ranking

import (
	"database/sql"
	"sync"

	"github.com/courtreign/courtreign/internal/refdata"
)

// Scope selects the partition a crown is contested within.
type Scope string

const (
	ScopeVenue   Scope = "venue"
	ScopeCity    Scope = "city"
	ScopeCountry Scope = "country"
)

// CrownStatus reports the player's king flags across all three scopes.
// The city and country names are empty when the player's profile does not
// resolve to one.
type CrownStatus struct {
	KingOfVenue   bool   `json:"king_of_venue"`
	KingOfCity    bool   `json:"king_of_city"`
	CityName      string `json:"city_name,omitempty"`
	KingOfCountry bool   `json:"king_of_country"`
	CountryName   string `json:"country_name,omitempty"`
}

// CompetitionCard is the composite read a client renders for a player and
// sport. A card for an unknown sport or an unranked player is fully
// zeroed, never an error.
type CompetitionCard struct {
	PlayerID      string `json:"player_id"`
	SportSlug     string `json:"sport_slug"`
	Rank          int    `json:"rank"`
	Level         int    `json:"level"`
	XPProgress    int    `json:"xp_progress"`
	XPToNextLevel int    `json:"xp_to_next_level"`
	TotalXP       int    `json:"total_xp"`
	TotalRP       int    `json:"total_rp"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesWon    int    `json:"matches_won"`
	MatchesLost   int    `json:"matches_lost"`
	WinRate       int    `json:"win_rate"`
	Accuracy      int    `json:"accuracy"`
	CrownStatus
}

// LeaderboardEntry is one row of a sport's ranking table.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TotalXP    int    `json:"total_xp"`
	WinRate    int    `json:"win_rate"`
}

// engine answers ranking queries straight off the aggregate stats table.
// It never mutates anything; eventually-consistent snapshots are fine.
type engine struct {
	db  *sql.DB
	mu  sync.RWMutex
	ref refdata.Lookup
}
