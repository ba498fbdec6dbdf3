package oracle

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Oracle interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	AnalyzeFunc func(ctx context.Context, mediaRef string) (*AnalysisResult, error)

	AnalyzeCalls []string
}

// NewMock creates a new mock Oracle.
func NewMock() *Mock {
	return &Mock{}
}

// Analyze records the call and executes the mock function if provided.
func (m *Mock) Analyze(ctx context.Context, mediaRef string) (*AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyzeCalls = append(m.AnalyzeCalls, mediaRef)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, mediaRef)
	}
	return &AnalysisResult{}, nil
}
