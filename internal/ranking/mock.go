package ranking

import "sync"

// MockEngine is a mock implementation of the Engine interface for testing.
type MockEngine struct {
	mu sync.Mutex

	GetRankFunc            func(playerID, sportID string) (int, error)
	IsKingOfScopeFunc      func(playerID, sportID string, scope Scope) (bool, string, error)
	GetCrownStatusFunc     func(playerID, sportID string) (*CrownStatus, error)
	GetCompetitionCardFunc func(playerID, sportSlug string) (*CompetitionCard, error)
	LeaderboardFunc        func(sportID string, limit int) ([]LeaderboardEntry, error)

	GetRankCalls            [][2]string
	IsKingOfScopeCalls      [][3]string
	GetCrownStatusCalls     [][2]string
	GetCompetitionCardCalls [][2]string
	LeaderboardCalls        []string
}

// NewMockEngine creates a new mock ranking engine.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) GetRank(playerID, sportID string) (int, error) {
	m.mu.Lock()
	m.GetRankCalls = append(m.GetRankCalls, [2]string{playerID, sportID})
	m.mu.Unlock()
	if m.GetRankFunc != nil {
		return m.GetRankFunc(playerID, sportID)
	}
	return 0, nil
}

func (m *MockEngine) IsKingOfScope(playerID, sportID string, scope Scope) (bool, string, error) {
	m.mu.Lock()
	m.IsKingOfScopeCalls = append(m.IsKingOfScopeCalls, [3]string{playerID, sportID, string(scope)})
	m.mu.Unlock()
	if m.IsKingOfScopeFunc != nil {
		return m.IsKingOfScopeFunc(playerID, sportID, scope)
	}
	return false, "", nil
}

func (m *MockEngine) GetCrownStatus(playerID, sportID string) (*CrownStatus, error) {
	m.mu.Lock()
	m.GetCrownStatusCalls = append(m.GetCrownStatusCalls, [2]string{playerID, sportID})
	m.mu.Unlock()
	if m.GetCrownStatusFunc != nil {
		return m.GetCrownStatusFunc(playerID, sportID)
	}
	return &CrownStatus{}, nil
}

func (m *MockEngine) GetCompetitionCard(playerID, sportSlug string) (*CompetitionCard, error) {
	m.mu.Lock()
	m.GetCompetitionCardCalls = append(m.GetCompetitionCardCalls, [2]string{playerID, sportSlug})
	m.mu.Unlock()
	if m.GetCompetitionCardFunc != nil {
		return m.GetCompetitionCardFunc(playerID, sportSlug)
	}
	return &CompetitionCard{PlayerID: playerID, SportSlug: sportSlug, XPToNextLevel: xpPerLevel}, nil
}

func (m *MockEngine) Leaderboard(sportID string, limit int) ([]LeaderboardEntry, error) {
	m.mu.Lock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, sportID)
	m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(sportID, limit)
	}
	return nil, nil
}
