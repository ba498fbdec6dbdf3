package oracle

import "context"

// AnalysisResult is the score pair and confidence the scoring oracle
// produces for a match recording.
type AnalysisResult struct {
	Player1Score int     `json:"player1_score"`
	Player2Score int     `json:"player2_score"`
	Confidence   float64 `json:"confidence"`
}

// Oracle is the opaque scoring collaborator. Analyze has bounded latency;
// callers own the retry budget.
type Oracle interface {
	Analyze(ctx context.Context, mediaRef string) (*AnalysisResult, error)
}
