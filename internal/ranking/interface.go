package ranking

// Engine defines the read-side ranking queries. None of the methods fail
// on missing players or sports; they degrade to zeroed results so a card
// is always renderable.
type Engine interface {
	GetRank(playerID, sportID string) (int, error)
	IsKingOfScope(playerID, sportID string, scope Scope) (bool, string, error)
	GetCrownStatus(playerID, sportID string) (*CrownStatus, error)
	GetCompetitionCard(playerID, sportSlug string) (*CompetitionCard, error)
	Leaderboard(sportID string, limit int) ([]LeaderboardEntry, error)
}
