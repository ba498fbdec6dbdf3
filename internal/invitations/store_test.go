package invitations_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtreign/courtreign/internal/database"
	"github.com/courtreign/courtreign/internal/invitations"
	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/refdata"
)

// setupTestDB creates a temporary in-memory SQLite database with reference
// data for two players, a venue and a sport.
func setupTestDB(t *testing.T) (invitations.Service, *sql.DB, func()) {
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

	svc := invitations.NewService(db, refdata.New(db), matches.NewStore(db))
	teardown := func() {
		dbTeardown()
	}
	return svc, db, teardown
}

func futureTime() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func TestSendInvitation(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "rematch?")
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, invitations.StatusPending, inv.Status)
	assert.Equal(t, "rematch?", inv.Message)

	count, err := svc.CountPending("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSendInvitationValidation(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := svc.Send("alice", "alice", "venue1", "sport1", futureTime(), "")
	assert.ErrorIs(t, err, invitations.ErrSelfInvitation)

	_, err = svc.Send("alice", "bob", "venue1", "sport1", time.Now().Add(-time.Hour), "")
	assert.ErrorIs(t, err, invitations.ErrPastSchedule)

	_, err = svc.Send("alice", "bob", "no-such-venue", "sport1", futureTime(), "")
	assert.ErrorIs(t, err, invitations.ErrVenueNotFound)

	_, err = svc.Send("alice", "bob", "venue1", "no-such-sport", futureTime(), "")
	assert.ErrorIs(t, err, invitations.ErrSportNotFound)
}

func TestSendInvitationDuplicatePending(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	_, err = svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	assert.ErrorIs(t, err, invitations.ErrDuplicatePending)

	// The reverse direction counts as the same pair.
	_, err = svc.Send("bob", "alice", "venue1", "sport1", futureTime(), "")
	assert.ErrorIs(t, err, invitations.ErrDuplicatePending)
}

func TestSendInvitationCreditsInviteTally(t *testing.T) {
	svc, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	var invited int
	err = db.QueryRow("SELECT users_invited FROM player_stats WHERE player_id = 'alice' AND sport_id = 'sport1'").Scan(&invited)
	require.NoError(t, err)
	assert.Equal(t, 1, invited)
}

func TestRespondAcceptCreatesMatch(t *testing.T) {
	svc, db, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	result, err := svc.Respond(inv.ID, "bob", true)
	require.NoError(t, err)
	assert.Equal(t, invitations.StatusAccepted, result.Status)
	require.NotEmpty(t, result.MatchID)

	var status, player1, player2 string
	err = db.QueryRow("SELECT status, player1_id, player2_id FROM matches WHERE id = ?", result.MatchID).
		Scan(&status, &player1, &player2)
	require.NoError(t, err)
	assert.Equal(t, "accepted", status)
	assert.Equal(t, "alice", player1)
	assert.Equal(t, "bob", player2)
}

func TestRespondDecline(t *testing.T) {
	svc, db, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	result, err := svc.Respond(inv.ID, "bob", false)
	require.NoError(t, err)
	assert.Equal(t, invitations.StatusDeclined, result.Status)
	assert.Empty(t, result.MatchID)

	var matchCount int
	err = db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&matchCount)
	require.NoError(t, err)
	assert.Equal(t, 0, matchCount)
}

func TestRespondTwiceFails(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	_, err = svc.Respond(inv.ID, "bob", true)
	require.NoError(t, err)

	_, err = svc.Respond(inv.ID, "bob", false)
	assert.ErrorIs(t, err, invitations.ErrNotPending)
}

func TestRespondOnlyReceiver(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	_, err = svc.Respond(inv.ID, "alice", true)
	assert.ErrorIs(t, err, invitations.ErrForbidden)

	_, err = svc.Respond("no-such-invitation", "bob", true)
	assert.ErrorIs(t, err, invitations.ErrNotFound)
}

func TestCancelInvitation(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "")
	require.NoError(t, err)

	err = svc.Cancel(inv.ID, "bob")
	assert.ErrorIs(t, err, invitations.ErrForbidden)

	err = svc.Cancel(inv.ID, "alice")
	require.NoError(t, err)

	err = svc.Cancel(inv.ID, "alice")
	assert.ErrorIs(t, err, invitations.ErrNotPending)

	count, err := svc.CountPending("bob")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestListInvitations(t *testing.T) {
	svc, _, teardown := setupTestDB(t)
	defer teardown()

	inv, err := svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "first")
	require.NoError(t, err)
	_, err = svc.Respond(inv.ID, "bob", false)
	require.NoError(t, err)
	_, err = svc.Send("alice", "bob", "venue1", "sport1", futureTime(), "second")
	require.NoError(t, err)

	sent, err := svc.List("alice", invitations.DirectionSent)
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "Bob", sent[0].CounterpartName)
	assert.Equal(t, "Park Court", sent[0].VenueName)

	received, err := svc.List("bob", invitations.DirectionReceived)
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "Alice", received[0].CounterpartName)

	none, err := svc.List("bob", invitations.DirectionSent)
	require.NoError(t, err)
	assert.Empty(t, none)
}
