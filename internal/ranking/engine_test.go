package ranking_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtreign/courtreign/internal/database"
	"github.com/courtreign/courtreign/internal/ranking"
	"github.com/courtreign/courtreign/internal/refdata"
)

// setupTestDB seeds two cities in Denmark plus one in Sweden, and players
// across age groups so every crown scope has competition.
func setupTestDB(t *testing.T) (ranking.Engine, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	seed := []string{
		`INSERT INTO countries (id, name) VALUES ('country-dk', 'Denmark'), ('country-se', 'Sweden')`,
		`INSERT INTO cities (id, name, country_id) VALUES
			('city-cph', 'Copenhagen', 'country-dk'),
			('city-aarhus', 'Aarhus', 'country-dk'),
			('city-malmo', 'Malmo', 'country-se')`,
		`INSERT INTO sports (id, slug, name) VALUES ('sport1', 'basketball', 'Basketball')`,
		`INSERT INTO players (id, name, age_group, city_id) VALUES
			('alice', 'Alice', '18-30', 'city-cph'),
			('bob', 'Bob', '18-30', 'city-cph'),
			('carol', 'Carol', '31+', 'city-cph'),
			('dave', 'Dave', '18-30', 'city-aarhus'),
			('erin', 'Erin', '18-30', 'city-malmo')`,
	}
	for _, stmt := range seed {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}

	engine := ranking.NewEngine(db, refdata.New(db))
	return engine, db, dbTeardown
}

// insertStats seeds a player_stats row with the given XP and record.
func insertStats(t *testing.T, db *sql.DB, playerID string, totalXP, won, played int) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO player_stats (player_id, sport_id, total_xp, matches_won, matches_played)
		VALUES (?, 'sport1', ?, ?, ?)
	`, playerID, totalXP, won, played)
	require.NoError(t, err)
}

func TestGetRank(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	insertStats(t, db, "alice", 300, 2, 3)
	insertStats(t, db, "bob", 500, 4, 5)
	insertStats(t, db, "carol", 100, 1, 1)

	rank, err := engine.GetRank("bob", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = engine.GetRank("alice", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = engine.GetRank("carol", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	// No stats row reads as unranked.
	rank, err = engine.GetRank("dave", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
}

func TestGetRankTieBreaksByPlayerID(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	insertStats(t, db, "alice", 400, 0, 0)
	insertStats(t, db, "bob", 400, 0, 0)

	rank, err := engine.GetRank("alice", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = engine.GetRank("bob", "sport1")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
}

func TestIsKingOfVenueIsGlobal(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	// Carol is in a different age group, but the venue scope ignores
	// age groups entirely.
	insertStats(t, db, "alice", 300, 0, 0)
	insertStats(t, db, "carol", 900, 0, 0)

	king, _, err := engine.IsKingOfScope("carol", "sport1", ranking.ScopeVenue)
	require.NoError(t, err)
	assert.True(t, king)

	king, _, err = engine.IsKingOfScope("alice", "sport1", ranking.ScopeVenue)
	require.NoError(t, err)
	assert.False(t, king)
}

func TestIsKingOfCityScopedByAgeGroup(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	// Carol outranks Alice in the same city, but in another age group,
	// so Alice keeps the 18-30 city crown.
	insertStats(t, db, "alice", 300, 0, 0)
	insertStats(t, db, "bob", 200, 0, 0)
	insertStats(t, db, "carol", 900, 0, 0)

	king, name, err := engine.IsKingOfScope("alice", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.True(t, king)
	assert.Equal(t, "Copenhagen", name)

	king, _, err = engine.IsKingOfScope("bob", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.False(t, king)

	king, name, err = engine.IsKingOfScope("carol", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.True(t, king)
	assert.Equal(t, "Copenhagen", name)
}

func TestIsKingOfCountry(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	// Dave leads Denmark across cities; Erin's higher XP sits in Sweden
	// and never suppresses the Danish crown.
	insertStats(t, db, "alice", 300, 0, 0)
	insertStats(t, db, "dave", 500, 0, 0)
	insertStats(t, db, "erin", 900, 0, 0)

	king, name, err := engine.IsKingOfScope("dave", "sport1", ranking.ScopeCountry)
	require.NoError(t, err)
	assert.True(t, king)
	assert.Equal(t, "Denmark", name)

	king, _, err = engine.IsKingOfScope("alice", "sport1", ranking.ScopeCountry)
	require.NoError(t, err)
	assert.False(t, king)

	king, name, err = engine.IsKingOfScope("erin", "sport1", ranking.ScopeCountry)
	require.NoError(t, err)
	assert.True(t, king)
	assert.Equal(t, "Sweden", name)
}

func TestCrownTransfersOnNextRead(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	insertStats(t, db, "alice", 300, 0, 0)
	insertStats(t, db, "bob", 200, 0, 0)

	king, _, err := engine.IsKingOfScope("bob", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.False(t, king)

	_, err = db.Exec("UPDATE player_stats SET total_xp = 400 WHERE player_id = 'bob'")
	require.NoError(t, err)

	king, _, err = engine.IsKingOfScope("bob", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.True(t, king)

	king, _, err = engine.IsKingOfScope("alice", "sport1", ranking.ScopeCity)
	require.NoError(t, err)
	assert.False(t, king)
}

func TestGetCompetitionCard(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	insertStats(t, db, "alice", 550, 3, 10)
	_, err := db.Exec("UPDATE player_stats SET shots_made = 42, shots_attempted = 90 WHERE player_id = 'alice'")
	require.NoError(t, err)

	card, err := engine.GetCompetitionCard("alice", "basketball")
	require.NoError(t, err)
	assert.Equal(t, 1, card.Rank)
	assert.Equal(t, 5, card.Level)
	assert.Equal(t, 50, card.XPProgress)
	assert.Equal(t, 50, card.XPToNextLevel)
	assert.Equal(t, 550, card.TotalXP)
	assert.Equal(t, 30, card.WinRate)
	assert.Equal(t, 47, card.Accuracy)
	assert.True(t, card.KingOfVenue)
	assert.True(t, card.KingOfCity)
	assert.Equal(t, "Copenhagen", card.CityName)
	assert.True(t, card.KingOfCountry)
	assert.Equal(t, "Denmark", card.CountryName)
}

func TestGetCompetitionCardUnknownSport(t *testing.T) {
	engine, _, teardown := setupTestDB(t)
	defer teardown()

	card, err := engine.GetCompetitionCard("alice", "curling")
	require.NoError(t, err)
	assert.Equal(t, "alice", card.PlayerID)
	assert.Equal(t, 0, card.Rank)
	assert.Equal(t, 0, card.TotalXP)
	assert.Equal(t, 0, card.WinRate)
	assert.Equal(t, 100, card.XPToNextLevel)
	assert.False(t, card.KingOfVenue)
}

func TestGetCompetitionCardNewPlayer(t *testing.T) {
	engine, _, teardown := setupTestDB(t)
	defer teardown()

	card, err := engine.GetCompetitionCard("alice", "basketball")
	require.NoError(t, err)
	assert.Equal(t, 0, card.Rank)
	assert.Equal(t, 0, card.TotalXP)
	assert.Equal(t, 0, card.WinRate)
}

func TestLeaderboard(t *testing.T) {
	engine, db, teardown := setupTestDB(t)
	defer teardown()

	insertStats(t, db, "alice", 300, 3, 10)
	insertStats(t, db, "bob", 500, 4, 5)
	insertStats(t, db, "carol", 100, 0, 2)

	entries, err := engine.Leaderboard("sport1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Bob", entries[0].PlayerName)
	assert.Equal(t, 500, entries[0].TotalXP)
	assert.Equal(t, 80, entries[0].WinRate)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Alice", entries[1].PlayerName)
}
