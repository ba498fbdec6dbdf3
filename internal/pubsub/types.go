package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventAnalyzeMatch   EventType = "analyze-match"
	EventMatchCompleted EventType = "match-completed"
	EventMatchDisputed  EventType = "match-disputed"
)

// AnalyzeMatchEvent asks the analysis worker to run the scoring oracle
// over an uploaded match recording.
type AnalyzeMatchEvent struct {
	MatchID  string `msgpack:"match_id"`
	MediaRef string `msgpack:"media_ref"`
}

// MatchResultEvent announces a resolved match to downstream consumers.
type MatchResultEvent struct {
	MatchID string `msgpack:"match_id"`
}
