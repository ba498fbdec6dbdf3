package notifier

// MatchResult is the resolved view of a completed match, joined with
// display names by the caller.
type MatchResult struct {
	MatchID      string
	VenueName    string
	SportName    string
	Player1Name  string
	Player2Name  string
	Player1Score int
	Player2Score int
	WinnerName   string // empty on a tie
	WinnerXP     int
	WinnerRP     int
}

// LeaderboardRow is one line of a sport's standings.
type LeaderboardRow struct {
	Rank       int
	PlayerName string
	TotalXP    int
	WinRate    int
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendResultNotification(result *MatchResult, dryRun bool) error
	// For matches that entered the disputed state
	SendDisputeNotification(matchID, reason string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(sportName string, rows []LeaderboardRow) (any, error)
}
