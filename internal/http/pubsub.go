package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/courtreign/courtreign/internal/notifier"
	"github.com/courtreign/courtreign/internal/pubsub"
)

// pushEnvelope is the JSON wrapper a pubsub push subscription delivers;
// the payload itself is base64-encoded MessagePack.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// decodePush unwraps a push delivery into the raw MessagePack bytes.
func decodePush(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}
	return rawData, true
}

// AnalyzeMatchHandler consumes analyze-match events and runs the scoring
// pipeline for the referenced match.
func (s *Server) AnalyzeMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePush(w, r)
		if !ok {
			return
		}
		event := pubsub.AnalyzeMatchEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode analyze-match event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if _, err := s.Matches.ProcessAnalysis(r.Context(), event.MatchID); err != nil {
			log.Error("Failed to process analysis", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to process analysis", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyResultHandler consumes match-completed events and posts the
// result notification.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePush(w, r)
		if !ok {
			return
		}
		event := pubsub.MatchResultEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode match-completed event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		result, err := s.buildMatchResult(event.MatchID)
		if err != nil {
			log.Error("Failed to build result notification", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to build result notification", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendResultNotification(result, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyDisputeHandler consumes match-disputed events and posts the
// dispute notification.
func (s *Server) NotifyDisputeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, ok := decodePush(w, r)
		if !ok {
			return
		}
		event := pubsub.MatchResultEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode match-disputed event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		match, err := s.Matches.Get(event.MatchID)
		if err != nil {
			log.Error("Failed to load disputed match", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to load disputed match", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendDisputeNotification(match.ID, match.DisputeReason, isDryRun); err != nil {
			log.Error("Failed to notify dispute", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to notify dispute", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// buildMatchResult resolves the display names a result notification needs.
func (s *Server) buildMatchResult(matchID string) (*notifier.MatchResult, error) {
	match, err := s.Matches.Get(matchID)
	if err != nil {
		return nil, err
	}

	result := &notifier.MatchResult{MatchID: match.ID}
	if match.Player1Score != nil {
		result.Player1Score = *match.Player1Score
	}
	if match.Player2Score != nil {
		result.Player2Score = *match.Player2Score
	}
	if match.WinnerXP != nil {
		result.WinnerXP = *match.WinnerXP
	}
	if match.WinnerRP != nil {
		result.WinnerRP = *match.WinnerRP
	}

	if venue, err := s.Ref.GetVenue(match.VenueID); err == nil && venue != nil {
		result.VenueName = venue.Name
	}
	if sport, err := s.Ref.GetSport(match.SportID); err == nil && sport != nil {
		result.SportName = sport.Name
	}
	if p1, err := s.Ref.GetPlayer(match.Player1ID); err == nil && p1 != nil {
		result.Player1Name = p1.Name
	}
	if p2, err := s.Ref.GetPlayer(match.Player2ID); err == nil && p2 != nil {
		result.Player2Name = p2.Name
	}
	switch match.WinnerID {
	case match.Player1ID:
		result.WinnerName = result.Player1Name
	case match.Player2ID:
		result.WinnerName = result.Player2Name
	}
	return result, nil
}
