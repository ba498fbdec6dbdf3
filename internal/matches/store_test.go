package matches_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtreign/courtreign/internal/database"
	"github.com/courtreign/courtreign/internal/matches"
)

// setupTestDB creates a temporary in-memory SQLite database with the
// reference rows a match needs.
func setupTestDB(t *testing.T) (matches.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	seed := []string{
		`INSERT INTO countries (id, name) VALUES ('country1', 'Denmark')`,
		`INSERT INTO cities (id, name, country_id) VALUES ('city1', 'Copenhagen', 'country1')`,
		`INSERT INTO venues (id, name, city_id, latitude, longitude) VALUES ('venue1', 'Park Court', 'city1', 55.7, 12.57)`,
		`INSERT INTO sports (id, slug, name) VALUES ('sport1', 'basketball', 'Basketball')`,
		`INSERT INTO players (id, name, age_group, city_id) VALUES
			('alice', 'Alice', '18-30', 'city1'),
			('bob', 'Bob', '18-30', 'city1')`,
	}
	for _, stmt := range seed {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}

	store := matches.NewStore(db)
	return store, db, dbTeardown
}

// insertMatch seeds a match row directly in the given state.
func insertMatch(t *testing.T, db *sql.DB, matchID string, status matches.Status) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO matches (id, venue_id, sport_id, player1_id, player2_id, status, created_at)
		VALUES (?, 'venue1', 'sport1', 'alice', 'bob', ?, ?)
	`, matchID, string(status), time.Now().Unix())
	require.NoError(t, err)
}

func TestCreateFromInvitationTx(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`
		INSERT INTO invitations (id, sender_id, receiver_id, venue_id, sport_id, scheduled_at, status, created_at)
		VALUES ('inv1', 'alice', 'bob', 'venue1', 'sport1', ?, 'accepted', ?)
	`, time.Now().Unix(), time.Now().Unix())
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	match, err := store.CreateFromInvitationTx(tx, matches.InvitationRef{
		InvitationID: "inv1",
		VenueID:      "venue1",
		SportID:      "sport1",
		SenderID:     "alice",
		ReceiverID:   "bob",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	stored, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Equal(t, matches.StatusAccepted, stored.Status)
	assert.Equal(t, "alice", stored.Player1ID)
	assert.Equal(t, "bob", stored.Player2ID)
	assert.Equal(t, "inv1", stored.InvitationID)
}

func TestGetMatchNotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetMatch("no-such-match")
	assert.ErrorIs(t, err, matches.ErrNotFound)
}

func TestStartTransition(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusAccepted)
	require.NoError(t, store.Start("m1"))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusInProgress, match.Status)
	assert.NotNil(t, match.StartedAt)

	// A second start loses the conditional update.
	err = store.Start("m1")
	assert.ErrorIs(t, err, matches.ErrInvalidState)

	err = store.Start("no-such-match")
	assert.ErrorIs(t, err, matches.ErrNotFound)
}

func TestUploadAndAnalyzeTransitions(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusInProgress)
	require.NoError(t, store.MarkUploading("m1", "gs://clips/m1.mp4"))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusUploading, match.Status)
	assert.Equal(t, "gs://clips/m1.mp4", match.MediaRef)

	require.NoError(t, store.MarkAnalyzing("m1"))
	err = store.MarkAnalyzing("m1")
	assert.ErrorIs(t, err, matches.ErrInvalidState)
}

func TestCompleteCreditsBothPlayers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusAnalyzing)
	err := store.Complete("m1", matches.Completion{
		Player1Score: 21,
		Player2Score: 15,
		WinnerID:     "alice",
		WinnerXP:     160,
		WinnerRP:     32,
		LoserXP:      50,
	})
	require.NoError(t, err)

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusCompleted, match.Status)
	assert.Equal(t, "alice", match.WinnerID)
	assert.False(t, match.TiePendingReview)
	assert.NotNil(t, match.CompletedAt)
	require.NotNil(t, match.Player1Score)
	assert.Equal(t, 21, *match.Player1Score)

	var xp, rp, won, lost, played, points int
	err = db.QueryRow(`
		SELECT total_xp, total_rp, matches_won, matches_lost, matches_played, total_points_scored
		FROM player_stats WHERE player_id = 'alice' AND sport_id = 'sport1'
	`).Scan(&xp, &rp, &won, &lost, &played, &points)
	require.NoError(t, err)
	assert.Equal(t, 160, xp)
	assert.Equal(t, 32, rp)
	assert.Equal(t, 1, won)
	assert.Equal(t, 0, lost)
	assert.Equal(t, 1, played)
	assert.Equal(t, 21, points)

	err = db.QueryRow(`
		SELECT total_xp, total_rp, matches_won, matches_lost, matches_played, total_points_scored
		FROM player_stats WHERE player_id = 'bob' AND sport_id = 'sport1'
	`).Scan(&xp, &rp, &won, &lost, &played, &points)
	require.NoError(t, err)
	assert.Equal(t, 50, xp)
	assert.Equal(t, 0, rp)
	assert.Equal(t, 0, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 1, played)
	assert.Equal(t, 15, points)
}

func TestCompleteTie(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusAnalyzing)
	err := store.Complete("m1", matches.Completion{
		Player1Score: 18,
		Player2Score: 18,
		LoserXP:      50,
	})
	require.NoError(t, err)

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusCompleted, match.Status)
	assert.Empty(t, match.WinnerID)
	assert.True(t, match.TiePendingReview)

	for _, playerID := range []string{"alice", "bob"} {
		var xp, won, lost, played int
		err = db.QueryRow(`
			SELECT total_xp, matches_won, matches_lost, matches_played
			FROM player_stats WHERE player_id = ? AND sport_id = 'sport1'
		`, playerID).Scan(&xp, &won, &lost, &played)
		require.NoError(t, err)
		assert.Equal(t, 50, xp)
		assert.Equal(t, 0, won)
		assert.Equal(t, 0, lost)
		assert.Equal(t, 1, played)
	}
}

func TestCompleteRequiresAnalyzing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusInProgress)
	err := store.Complete("m1", matches.Completion{Player1Score: 10, Player2Score: 5, WinnerID: "alice"})
	assert.ErrorIs(t, err, matches.ErrInvalidState)

	// No stats were credited on the failed completion.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM player_stats").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestDisputeFromAnalyzing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusAnalyzing)
	require.NoError(t, store.DisputeFromAnalyzing("m1", "automatic: scoring analysis failed"))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusDisputed, match.Status)
	assert.Equal(t, "automatic: scoring analysis failed", match.DisputeReason)
	assert.NotNil(t, match.DisputedAt)
}

func TestDisputeBlockedAfterCounterpartAgrees(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// Alice may dispute while Bob's agreement is unrecorded.
	insertMatch(t, db, "m1", matches.StatusCompleted)
	require.NoError(t, store.Dispute("m1", "alice", "wrong score", "we played to 25"))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, matches.StatusDisputed, match.Status)
	assert.Equal(t, "alice", match.DisputedBy)
	assert.Equal(t, "we played to 25", match.DisputeDetails)

	// Once Bob has agreed, Alice's window is closed.
	insertMatch(t, db, "m2", matches.StatusCompleted)
	require.NoError(t, store.SetAgreement("m2", "bob"))
	err = store.Dispute("m2", "alice", "wrong score", "")
	assert.ErrorIs(t, err, matches.ErrInvalidState)
}

func TestSetAgreement(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusCompleted)
	require.NoError(t, store.SetAgreement("m1", "alice"))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.True(t, match.Player1Agreed)
	assert.False(t, match.Player2Agreed)

	// Agreeing twice is a no-op.
	require.NoError(t, store.SetAgreement("m1", "alice"))

	insertMatch(t, db, "m2", matches.StatusInProgress)
	err = store.SetAgreement("m2", "alice")
	assert.ErrorIs(t, err, matches.ErrInvalidState)
}

func TestCancelMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	for i, status := range []matches.Status{matches.StatusPending, matches.StatusAccepted, matches.StatusInProgress} {
		matchID := string(rune('a' + i))
		insertMatch(t, db, matchID, status)
		require.NoError(t, store.Cancel(matchID))
	}

	insertMatch(t, db, "m-done", matches.StatusCompleted)
	err := store.Cancel("m-done")
	assert.ErrorIs(t, err, matches.ErrInvalidState)

	err = store.Cancel("no-such-match")
	assert.ErrorIs(t, err, matches.ErrNotFound)
}

func TestListByPlayer(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertMatch(t, db, "m1", matches.StatusAccepted)
	insertMatch(t, db, "m2", matches.StatusCompleted)

	result, err := store.ListByPlayer("alice")
	require.NoError(t, err)
	assert.Len(t, result, 2)

	result, err = store.ListByPlayer("nobody")
	require.NoError(t, err)
	assert.Empty(t, result)
}
