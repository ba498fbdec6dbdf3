package matches

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtreign/courtreign/internal/metrics"
	"github.com/courtreign/courtreign/internal/oracle"
	"github.com/courtreign/courtreign/internal/pubsub"
)

// disputeReasonOracle is the system-generated reason recorded when the
// scoring oracle exhausts its retry budget.
const disputeReasonOracle = "automatic: scoring analysis failed"

// Lifecycle drives a match through its state machine. Every transition is
// delegated to the store's conditional updates, so concurrent callers can
// never double-apply a step.
type Lifecycle struct {
	store       Store
	oracle      oracle.Oracle
	pubsub      pubsub.PubSubClient
	metrics     metrics.Metrics
	maxAttempts int
}

// NewLifecycle creates a new match Lifecycle.
func NewLifecycle(store Store, scorer oracle.Oracle, ps pubsub.PubSubClient, metrics metrics.Metrics, maxAttempts int) *Lifecycle {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Lifecycle{
		store:       store,
		oracle:      scorer,
		pubsub:      ps,
		metrics:     metrics,
		maxAttempts: maxAttempts,
	}
}

// Start begins an accepted match. Only a participant may start it.
func (l *Lifecycle) Start(matchID, actorID string) (*Match, error) {
	if err := l.requireParticipant(matchID, actorID); err != nil {
		return nil, err
	}
	if err := l.store.Start(matchID); err != nil {
		return nil, err
	}
	return l.store.GetMatch(matchID)
}

// SubmitResult records the uploaded recording and hands the match to the
// analysis worker via pubsub.
func (l *Lifecycle) SubmitResult(matchID, actorID, mediaRef string) (*Match, error) {
	if err := l.requireParticipant(matchID, actorID); err != nil {
		return nil, err
	}
	if err := l.store.MarkUploading(matchID, mediaRef); err != nil {
		return nil, err
	}

	event := pubsub.AnalyzeMatchEvent{MatchID: matchID, MediaRef: mediaRef}
	if err := l.pubsub.SendMessage(pubsub.EventAnalyzeMatch, event); err != nil {
		// The match stays in 'uploading'; the analysis can be re-triggered.
		log.Error("Failed to publish analyze-match event", "error", err, "matchID", matchID)
	}
	return l.store.GetMatch(matchID)
}

// ProcessAnalysis moves an uploaded match through analyzing and resolves
// it with the scoring oracle. Oracle failure is recovered locally: after
// the retry budget is spent the match lands in 'disputed' with a
// system-generated reason, never stuck in 'analyzing'.
func (l *Lifecycle) ProcessAnalysis(ctx context.Context, matchID string) (*Match, error) {
	match, err := l.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := l.store.MarkAnalyzing(matchID); err != nil {
		return nil, err
	}

	result, err := l.analyzeWithRetries(ctx, match.MediaRef)
	if err != nil {
		log.Error("Scoring oracle exhausted retry budget", "error", err, "matchID", matchID, "attempts", l.maxAttempts)
		l.metrics.IncOracleFailures()
		if err := l.store.DisputeFromAnalyzing(matchID, disputeReasonOracle); err != nil {
			return nil, err
		}
		l.metrics.IncMatchesDisputed()
		l.publishResult(pubsub.EventMatchDisputed, matchID)
		return l.store.GetMatch(matchID)
	}

	completion := Completion{
		Player1Score: result.Player1Score,
		Player2Score: result.Player2Score,
	}
	switch {
	case result.Player1Score > result.Player2Score:
		completion.WinnerID = match.Player1ID
		completion.WinnerXP, completion.WinnerRP, completion.LoserXP = ComputeRewards(result.Player1Score, result.Player2Score)
	case result.Player2Score > result.Player1Score:
		completion.WinnerID = match.Player2ID
		completion.WinnerXP, completion.WinnerRP, completion.LoserXP = ComputeRewards(result.Player2Score, result.Player1Score)
	default:
		// Equal scores: no winner, result is flagged for manual
		// resolution; both players get the participation reward.
		completion.LoserXP = participantXP
	}

	if err := l.store.Complete(matchID, completion); err != nil {
		return nil, err
	}
	l.metrics.IncMatchesCompleted()
	l.publishResult(pubsub.EventMatchCompleted, matchID)
	return l.store.GetMatch(matchID)
}

func (l *Lifecycle) analyzeWithRetries(ctx context.Context, mediaRef string) (*oracle.AnalysisResult, error) {
	var lastErr error
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		start := time.Now()
		result, err := l.oracle.Analyze(ctx, mediaRef)
		l.metrics.ObserveAnalysisDuration(time.Since(start).Seconds())
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Warn("Scoring oracle attempt failed", "attempt", attempt, "error", err)

		if attempt < l.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("analysis failed after %d attempts: %w", l.maxAttempts, lastErr)
}

// Agree records the caller's agreement flag on a completed match. Both
// flags set means the result is fully trusted downstream.
func (l *Lifecycle) Agree(matchID, actorID string) (*Match, error) {
	if err := l.requireParticipant(matchID, actorID); err != nil {
		return nil, err
	}
	if err := l.store.SetAgreement(matchID, actorID); err != nil {
		return nil, err
	}
	return l.store.GetMatch(matchID)
}

// Dispute flags a completed match before the counterpart has agreed.
// Rewards already credited are not reversed here.
func (l *Lifecycle) Dispute(matchID, actorID, reason, details string) (*Match, error) {
	if err := l.requireParticipant(matchID, actorID); err != nil {
		return nil, err
	}
	if err := l.store.Dispute(matchID, actorID, reason, details); err != nil {
		return nil, err
	}
	l.metrics.IncMatchesDisputed()
	l.publishResult(pubsub.EventMatchDisputed, matchID)
	return l.store.GetMatch(matchID)
}

// Cancel aborts a match that has not been scored yet. No rewards are
// granted.
func (l *Lifecycle) Cancel(matchID, actorID string) (*Match, error) {
	if err := l.requireParticipant(matchID, actorID); err != nil {
		return nil, err
	}
	if err := l.store.Cancel(matchID); err != nil {
		return nil, err
	}
	return l.store.GetMatch(matchID)
}

// Get returns a match by id.
func (l *Lifecycle) Get(matchID string) (*Match, error) {
	return l.store.GetMatch(matchID)
}

// ListByPlayer returns a player's matches, newest first.
func (l *Lifecycle) ListByPlayer(playerID string) ([]*Match, error) {
	return l.store.ListByPlayer(playerID)
}

func (l *Lifecycle) requireParticipant(matchID, actorID string) error {
	match, err := l.store.GetMatch(matchID)
	if err != nil {
		return err
	}
	if !match.IsParticipant(actorID) {
		return ErrForbidden
	}
	return nil
}

func (l *Lifecycle) publishResult(topic pubsub.EventType, matchID string) {
	if err := l.pubsub.SendMessage(topic, pubsub.MatchResultEvent{MatchID: matchID}); err != nil {
		log.Error("Failed to publish match event", "error", err, "topic", topic, "matchID", matchID)
	}
}
