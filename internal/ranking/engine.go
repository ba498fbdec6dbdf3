package ranking

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/courtreign/courtreign/internal/refdata"
)

// NewEngine creates a new ranking Engine.
func NewEngine(db *sql.DB, ref refdata.Lookup) Engine {
	return &engine{
		db:  db,
		ref: ref,
	}
}

// GetRank returns the player's 1-based position for a sport, ordering by
// total XP descending with player id as the tie breaker. Returns 0 when
// the player has no stats row for the sport.
func (e *engine) GetRank(playerID, sportID string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rankLocked(playerID, sportID)
}

func (e *engine) rankLocked(playerID, sportID string) (int, error) {
	totalXP, ok, err := e.playerXP(playerID, sportID)
	if err != nil || !ok {
		return 0, err
	}

	var ahead int
	err = e.db.QueryRow(`
		SELECT COUNT(*) FROM player_stats
		WHERE sport_id = ?
		  AND (total_xp > ? OR (total_xp = ? AND player_id < ?))
	`, sportID, totalXP, totalXP, playerID).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("failed to compute rank: %w", err)
	}
	return ahead + 1, nil
}

// IsKingOfScope reports whether the player holds rank 1 within the scope,
// along with the scope's display name. The venue scope is global for the
// sport; city and country scopes restrict candidates to the player's own
// geography and age group.
func (e *engine) IsKingOfScope(playerID, sportID string, scope Scope) (bool, string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.kingLocked(playerID, sportID, scope)
}

func (e *engine) kingLocked(playerID, sportID string, scope Scope) (bool, string, error) {
	if scope == ScopeVenue {
		rank, err := e.rankLocked(playerID, sportID)
		if err != nil {
			return false, "", err
		}
		return rank == 1, "", nil
	}

	player, err := e.ref.GetPlayer(playerID)
	if err != nil {
		return false, "", fmt.Errorf("failed to look up player: %w", err)
	}
	if player == nil || player.CityID == "" {
		return false, "", nil
	}
	city, err := e.ref.GetCity(player.CityID)
	if err != nil {
		return false, "", fmt.Errorf("failed to look up city: %w", err)
	}
	if city == nil {
		return false, "", nil
	}

	totalXP, ok, err := e.playerXP(playerID, sportID)
	if err != nil || !ok {
		return false, "", err
	}

	var ahead int
	var name string
	switch scope {
	case ScopeCity:
		name = city.Name
		err = e.db.QueryRow(`
			SELECT COUNT(*) FROM player_stats ps
			JOIN players p ON p.id = ps.player_id
			WHERE ps.sport_id = ? AND p.city_id = ? AND p.age_group = ?
			  AND (ps.total_xp > ? OR (ps.total_xp = ? AND ps.player_id < ?))
		`, sportID, player.CityID, player.AgeGroup, totalXP, totalXP, playerID).Scan(&ahead)
	case ScopeCountry:
		country, err := e.ref.GetCountry(city.CountryID)
		if err != nil {
			return false, "", fmt.Errorf("failed to look up country: %w", err)
		}
		if country == nil {
			return false, "", nil
		}
		name = country.Name
		err = e.db.QueryRow(`
			SELECT COUNT(*) FROM player_stats ps
			JOIN players p ON p.id = ps.player_id
			JOIN cities c ON c.id = p.city_id
			WHERE ps.sport_id = ? AND c.country_id = ? AND p.age_group = ?
			  AND (ps.total_xp > ? OR (ps.total_xp = ? AND ps.player_id < ?))
		`, sportID, city.CountryID, player.AgeGroup, totalXP, totalXP, playerID).Scan(&ahead)
		if err != nil {
			return false, "", fmt.Errorf("failed to compute country standing: %w", err)
		}
		return ahead == 0, name, nil
	default:
		return false, "", fmt.Errorf("unknown scope %q", scope)
	}
	if err != nil {
		return false, "", fmt.Errorf("failed to compute %s standing: %w", scope, err)
	}
	return ahead == 0, name, nil
}

// GetCrownStatus evaluates all three king scopes at once.
func (e *engine) GetCrownStatus(playerID, sportID string) (*CrownStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.crownStatusLocked(playerID, sportID)
}

func (e *engine) crownStatusLocked(playerID, sportID string) (*CrownStatus, error) {
	var status CrownStatus
	var err error

	status.KingOfVenue, _, err = e.kingLocked(playerID, sportID, ScopeVenue)
	if err != nil {
		return nil, err
	}
	status.KingOfCity, status.CityName, err = e.kingLocked(playerID, sportID, ScopeCity)
	if err != nil {
		return nil, err
	}
	status.KingOfCountry, status.CountryName, err = e.kingLocked(playerID, sportID, ScopeCountry)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// GetCompetitionCard assembles the full card for a player and sport slug.
// An unresolvable sport yields a fully zeroed card so new players always
// get a renderable result.
func (e *engine) GetCompetitionCard(playerID, sportSlug string) (*CompetitionCard, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	card := &CompetitionCard{
		PlayerID:      playerID,
		SportSlug:     sportSlug,
		XPToNextLevel: xpPerLevel,
	}

	sport, err := e.ref.GetSportBySlug(sportSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sport: %w", err)
	}
	if sport == nil {
		log.Debug("Competition card for unknown sport", "playerID", playerID, "sportSlug", sportSlug)
		return card, nil
	}

	var shotsMade, shotsAttempted int
	err = e.db.QueryRow(`
		SELECT total_xp, total_rp, matches_played, matches_won, matches_lost, shots_made, shots_attempted
		FROM player_stats WHERE player_id = ? AND sport_id = ?
	`, playerID, sport.ID).Scan(
		&card.TotalXP, &card.TotalRP, &card.MatchesPlayed, &card.MatchesWon, &card.MatchesLost,
		&shotsMade, &shotsAttempted,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read player stats: %w", err)
	}

	card.Rank, err = e.rankLocked(playerID, sport.ID)
	if err != nil {
		return nil, err
	}
	card.Level = CalculateLevel(card.TotalXP)
	card.XPProgress, card.XPToNextLevel = CalculateXPProgress(card.TotalXP)
	card.WinRate = CalculateWinRate(card.MatchesWon, card.MatchesPlayed)
	card.Accuracy = CalculateAccuracy(shotsMade, shotsAttempted)

	status, err := e.crownStatusLocked(playerID, sport.ID)
	if err != nil {
		return nil, err
	}
	card.CrownStatus = *status
	return card, nil
}

// Leaderboard returns the top entries of a sport's ranking table.
func (e *engine) Leaderboard(sportID string, limit int) ([]LeaderboardEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := e.db.Query(`
		SELECT ps.player_id, p.name, ps.total_xp, ps.matches_won, ps.matches_played
		FROM player_stats ps
		JOIN players p ON p.id = ps.player_id
		WHERE ps.sport_id = ?
		ORDER BY ps.total_xp DESC, ps.player_id ASC
		LIMIT ?
	`, sportID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var result []LeaderboardEntry
	for rows.Next() {
		var entry LeaderboardEntry
		var won, played int
		if err := rows.Scan(&entry.PlayerID, &entry.PlayerName, &entry.TotalXP, &won, &played); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			continue
		}
		entry.Rank = len(result) + 1
		entry.WinRate = CalculateWinRate(won, played)
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (e *engine) playerXP(playerID, sportID string) (int, bool, error) {
	var totalXP int
	err := e.db.QueryRow(`
		SELECT total_xp FROM player_stats WHERE player_id = ? AND sport_id = ?
	`, playerID, sportID).Scan(&totalXP)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read player stats: %w", err)
	}
	return totalXP, true, nil
}
